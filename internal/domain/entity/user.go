package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string `json:"id" firestore:"uid"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Location    string `json:"location,omitempty" firestore:"location,omitempty"`
	Role        string `json:"role" firestore:"role"` // "user" or "admin"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
