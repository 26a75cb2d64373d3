// File: internal/model/user.go
package model

// DefaultPhoto 新帳號使用的預設大頭貼檔名
const DefaultPhoto = "default.jpg"

type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Photo        string    `db:"photo" json:"photo"`
	CEP          string    `db:"cep" json:"cep"`
	Address      string    `db:"address" json:"address"`
	Courses      CourseSet `db:"courses" json:"courses"`
}
