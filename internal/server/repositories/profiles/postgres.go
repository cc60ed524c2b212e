package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fuel/internal/common"
	"github.com/dmitrijs2005/fuel/internal/dbx"
	"github.com/dmitrijs2005/fuel/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (
			user_id, age_years, height_text, weight_lbs, goal_weight_lbs, is_male,
			activity_level_index, goal_type_index,
			calories_target, protein_target, carbs_target, fat_target,
			selected_vitamins, dietary_restrictions, disliked_foods, selected_dining_halls,
			delivery_method_index, appearance_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.AgeYears, p.HeightText, p.WeightLbs, p.GoalWeightLbs, p.IsMale,
		p.ActivityLevelIndex, p.GoalTypeIndex,
		p.CaloriesTarget, p.ProteinTarget, p.CarbsTarget, p.FatTarget,
		common.JoinList(p.SelectedVitamins), common.JoinList(p.DietaryRestrictions),
		common.JoinList(p.DislikedFoods), common.JoinList(p.SelectedDiningHalls),
		p.DeliveryMethodIndex, p.AppearanceIndex,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, age_years, height_text, weight_lbs, goal_weight_lbs, is_male,
			activity_level_index, goal_type_index,
			calories_target, protein_target, carbs_target, fat_target,
			selected_vitamins, dietary_restrictions, disliked_foods, selected_dining_halls,
			delivery_method_index, appearance_index, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &models.Profile{}
	var vitamins, restrictions, disliked, halls string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.AgeYears, &p.HeightText, &p.WeightLbs, &p.GoalWeightLbs, &p.IsMale,
		&p.ActivityLevelIndex, &p.GoalTypeIndex,
		&p.CaloriesTarget, &p.ProteinTarget, &p.CarbsTarget, &p.FatTarget,
		&vitamins, &restrictions, &disliked, &halls,
		&p.DeliveryMethodIndex, &p.AppearanceIndex, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.SelectedVitamins = common.SplitList(vitamins)
	p.DietaryRestrictions = common.SplitList(restrictions)
	p.DislikedFoods = common.SplitList(disliked)
	p.SelectedDiningHalls = common.SplitList(halls)
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles SET
			age_years = $2, height_text = $3, weight_lbs = $4, goal_weight_lbs = $5, is_male = $6,
			activity_level_index = $7, goal_type_index = $8,
			calories_target = $9, protein_target = $10, carbs_target = $11, fat_target = $12,
			selected_vitamins = $13, dietary_restrictions = $14, disliked_foods = $15, selected_dining_halls = $16,
			delivery_method_index = $17, appearance_index = $18,
			updated_at = now()
		WHERE user_id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.AgeYears, p.HeightText, p.WeightLbs, p.GoalWeightLbs, p.IsMale,
		p.ActivityLevelIndex, p.GoalTypeIndex,
		p.CaloriesTarget, p.ProteinTarget, p.CarbsTarget, p.FatTarget,
		common.JoinList(p.SelectedVitamins), common.JoinList(p.DietaryRestrictions),
		common.JoinList(p.DislikedFoods), common.JoinList(p.SelectedDiningHalls),
		p.DeliveryMethodIndex, p.AppearanceIndex,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
