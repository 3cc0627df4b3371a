package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID           string
	Email        string
	EmployeeCode string
	FullName     string
	PasswordHash *string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
