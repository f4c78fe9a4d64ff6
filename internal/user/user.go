package user

import "time"

// User represents an account row in the `users` table.
// JSON tags follow the snake_case wire convention used by the public API.
type User struct {
	ID           int       `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
