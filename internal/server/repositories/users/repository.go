// Package users stores account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/fuel/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills ID and timestamps. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id string, name string) error
}
