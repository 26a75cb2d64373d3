package store

import (
	"context"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, photo, cep, address, courses`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var courses string
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Photo,
		&u.CEP,
		&u.Address,
		&courses,
	); err != nil {
		return nil, err
	}
	u.Courses = decodeCourses(courses)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		return nil, wrap("GetUserByUsername", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// CreateUser 新增使用者；email 或 username 重複時回傳 ErrDuplicateKey
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.Photo == "" {
		u.Photo = model.DefaultPhoto
	}
	if u.Courses == nil {
		u.Courses = model.CourseSet{}
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, photo, cep, address, courses)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Photo,
		u.CEP,
		u.Address,
		encodeCourses(u.Courses),
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// UpdateProfile 更新個人資料可編輯的欄位
func UpdateProfile(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, photo = $3, courses = $4
		 WHERE id = $5`,
		u.Username,
		u.Email,
		u.Photo,
		encodeCourses(u.Courses),
		u.ID,
	)
	if err != nil {
		return wrap("UpdateProfile", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdateProfile", pgx.ErrNoRows)
	}
	return nil
}
