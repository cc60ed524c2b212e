package models

import (
	"time"

	"github.com/dmitrijs2005/fuel/internal/common"
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Initials is derived from Name and never stored.
func (u *User) Initials() string {
	return common.Initials(u.Name)
}
