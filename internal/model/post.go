// File: internal/model/post.go
package model

import "time"

type Post struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	AuthorID  int       `db:"author_id" json:"author_id"`

	// Author 只填入 ID、Username、Photo，由 JOIN users 取得
	Author User `db:"-" json:"author"`
}

// IsAuthor reports whether user owns the post.
func (p *Post) IsAuthor(user *User) bool {
	return user != nil && p.AuthorID == user.ID
}
