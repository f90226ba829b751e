package auth

import (
	"campus-api/internal/audit"
	"campus-api/internal/listing"
)

type AuthServiceAPI interface {
	CreateUser(user User) (*User, error)
	GetUser(email string) (*User, error)
	GetUserByID(id string) (*User, error)
	ListUsers(schoolID string, f ListFilters, p listing.Params) (listing.Result[User], error)
	UpdateUser(schoolID, id string, in UpdateUserInput) (*User, error)
	DeleteUser(schoolID, id string) error
	SendOTP(email string) (*User, string, error)
	ResetPassword(email, code, newPassword string) (*User, error)
}

type LogServiceAPI interface {
	Log(entry audit.Entry, payload any) error
}

var _ AuthServiceAPI = (*AuthService)(nil)
var _ LogServiceAPI = (*audit.Service)(nil)
