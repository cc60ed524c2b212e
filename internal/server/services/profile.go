package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fuel/internal/common"
	"github.com/dmitrijs2005/fuel/internal/dbx"
	"github.com/dmitrijs2005/fuel/internal/server/models"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/repomanager"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the account of userID. A user without a profile row gets a
// default one created on the spot.
func (s *ProfileService) Get(ctx context.Context, userID string) (*Account, error) {
	var acc *Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		acc, err = s.load(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Update validates and applies patch, recomputes the targets and stores the
// result. The returned account reflects the stored state.
func (s *ProfileService) Update(ctx context.Context, userID string, patch *models.ProfilePatch) (*Account, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var acc *Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		acc, err = s.load(ctx, tx, userID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := common.NormalizeHumanName(*patch.Name)
			if name != acc.User.Name {
				if err := s.repomanager.Users(tx).UpdateName(ctx, userID, name); err != nil {
					return fmt.Errorf("error updating name: %w", err)
				}
				acc.User.Name = name
			}
		}

		patch.Apply(acc.Profile)
		acc.Profile.Recompute()
		if err := s.repomanager.Profiles(tx).Update(ctx, acc.Profile); err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *ProfileService) load(ctx context.Context, tx dbx.DBTX, userID string) (*Account, error) {
	user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	profile, err := s.repomanager.Profiles(tx).GetByUserID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		profile = models.DefaultProfile()
		profile.UserID = userID
		profile, err = s.repomanager.Profiles(tx).Create(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return &Account{User: user, Profile: profile}, nil
}
