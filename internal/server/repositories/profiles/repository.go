// Package profiles stores the per-user nutrition profile. Preference sets are
// kept as comma separated text columns.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/fuel/internal/server/models"
)

type Repository interface {
	// Create inserts p for p.UserID and fills ID and timestamps.
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	// GetByUserID returns common.ErrorNotFound when the user has no profile.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// Update overwrites every mutable column of the profile owned by p.UserID.
	Update(ctx context.Context, p *models.Profile) error
}
