package entities

import "time"

type User struct {
	ID        uint64    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	FullName  string    `json:"fullName" db:"full_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
