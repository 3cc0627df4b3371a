package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)
}
