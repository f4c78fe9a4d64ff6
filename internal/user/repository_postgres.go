package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getUserByIDQuery = `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery, u.Username, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		// unique constraint on email surfaces as a duplicate-key error
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
