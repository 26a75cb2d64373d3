package store

import (
	"context"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/model"

	"github.com/jackc/pgx/v5"
)

const postSelect = `SELECT p.id, p.title, p.body, p.created_at, p.author_id, u.username, u.photo
	 FROM posts p JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Body,
		&p.CreatedAt,
		&p.AuthorID,
		&p.Author.Username,
		&p.Author.Photo,
	); err != nil {
		return nil, err
	}
	p.Author.ID = p.AuthorID
	return p, nil
}

func CreatePost(ctx context.Context, db database.DB, p *model.Post) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO posts (title, body, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.Title,
		p.Body,
		p.AuthorID,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, wrap("CreatePost", err)
	}
	return p, nil
}

func GetPost(ctx context.Context, db database.DB, id int) (*model.Post, error) {
	p, err := scanPost(db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, wrap("GetPost", err)
	}
	return p, nil
}

// ListPostsNewestFirst 依 id 由新到舊列出所有貼文
func ListPostsNewestFirst(ctx context.Context, db database.DB) ([]model.Post, error) {
	rows, err := db.Query(ctx, postSelect+` ORDER BY p.id DESC`)
	if err != nil {
		return nil, wrap("ListPostsNewestFirst", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, wrap("ListPostsNewestFirst", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListPostsNewestFirst", err)
	}
	return posts, nil
}

// UpdatePost 呼叫前必須已確認作者身分；author_id 條件保證不會改到別人的貼文
func UpdatePost(ctx context.Context, db database.DB, p *model.Post) error {
	tag, err := db.Exec(ctx,
		`UPDATE posts SET title = $1, body = $2
		 WHERE id = $3 AND author_id = $4`,
		p.Title,
		p.Body,
		p.ID,
		p.AuthorID,
	)
	if err != nil {
		return wrap("UpdatePost", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdatePost", pgx.ErrNoRows)
	}
	return nil
}

// DeletePost 呼叫前必須已確認作者身分
func DeletePost(ctx context.Context, db database.DB, p *model.Post) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM posts WHERE id = $1 AND author_id = $2`,
		p.ID,
		p.AuthorID,
	)
	if err != nil {
		return wrap("DeletePost", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeletePost", pgx.ErrNoRows)
	}
	return nil
}
