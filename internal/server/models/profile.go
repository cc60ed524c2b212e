package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/fuel/internal/common"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

// Profile is the stored biometric, goal and preference record of one user.
// The four targets are always recomputed by the server from the other
// fields before being written.
type Profile struct {
	ID     string
	UserID string

	AgeYears      int
	HeightText    string
	WeightLbs     int
	GoalWeightLbs int
	IsMale        bool

	ActivityLevelIndex int
	GoalTypeIndex      int

	CaloriesTarget int
	ProteinTarget  int
	CarbsTarget    int
	FatTarget      int

	SelectedVitamins    []string
	DietaryRestrictions []string
	DislikedFoods       []string
	SelectedDiningHalls []string

	DeliveryMethodIndex int
	AppearanceIndex     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultProfile is what a new account starts with when signup carries no
// profile.
func DefaultProfile() *Profile {
	p := &Profile{
		AgeYears:            21,
		HeightText:          `5'10"`,
		WeightLbs:           165,
		GoalWeightLbs:       175,
		IsMale:              true,
		ActivityLevelIndex:  int(nutrition.Moderate),
		GoalTypeIndex:       int(nutrition.LeanMuscleGrowth),
		SelectedVitamins:    []string{"Vit D", "B12", "Iron", "Calcium"},
		DietaryRestrictions: []string{},
		DislikedFoods:       []string{},
		SelectedDiningHalls: []string{"BPlate", "De Neve", "Rendezvous"},
		DeliveryMethodIndex: 0,
		AppearanceIndex:     1,
	}
	p.Recompute()
	return p
}

// Recompute refreshes the stored targets from the biometric and goal fields.
// Inputs that cannot produce targets store nutrition.DefaultTargets.
func (p *Profile) Recompute() {
	t, _ := nutrition.Calculate(nutrition.Inputs{
		WeightLbs:  p.WeightLbs,
		HeightText: p.HeightText,
		AgeYears:   p.AgeYears,
		IsMale:     p.IsMale,
		Activity:   nutrition.ActivityLevel(p.ActivityLevelIndex),
		Goal:       nutrition.GoalType(p.GoalTypeIndex),
	})
	p.CaloriesTarget = t.Calories
	p.ProteinTarget = t.Protein
	p.CarbsTarget = t.Carbs
	p.FatTarget = t.Fat
}

// ProfilePatch is a partial profile update; nil fields are left unchanged.
type ProfilePatch struct {
	Name *string

	AgeYears      *int
	HeightText    *string
	WeightLbs     *int
	GoalWeightLbs *int
	IsMale        *bool

	ActivityLevelIndex *int
	GoalTypeIndex      *int

	SelectedVitamins    []string
	DietaryRestrictions []string
	DislikedFoods       []string
	SelectedDiningHalls []string

	DeliveryMethodIndex *int
	AppearanceIndex     *int
}

// Validate checks ranges of the present fields. Errors wrap
// common.ErrorValidation.
func (p *ProfilePatch) Validate() error {
	if p.Name != nil && common.NormalizeHumanName(*p.Name) == "" {
		return invalid("name must not be blank")
	}
	if err := intRange("age_years", p.AgeYears, 1, 149); err != nil {
		return err
	}
	if p.HeightText != nil {
		if utf8.RuneCountInString(*p.HeightText) > common.MaxHeightTextLen {
			return invalid("height_text is too long")
		}
		if nutrition.HeightToCm(*p.HeightText) <= 0 {
			return invalid("height_text is not a height")
		}
	}
	if err := intRange("weight_lbs", p.WeightLbs, 1, 999); err != nil {
		return err
	}
	if err := intRange("goal_weight_lbs", p.GoalWeightLbs, 1, 999); err != nil {
		return err
	}
	if err := intRange("activity_level_index", p.ActivityLevelIndex, 0, 4); err != nil {
		return err
	}
	if err := intRange("goal_type_index", p.GoalTypeIndex, 0, 3); err != nil {
		return err
	}
	if err := intRange("delivery_method_index", p.DeliveryMethodIndex, 0, 2); err != nil {
		return err
	}
	return intRange("appearance_index", p.AppearanceIndex, 0, 2)
}

// Apply writes the present fields into prof. Name is handled by the caller
// since it lives on the user record. Targets are left to Recompute.
func (p *ProfilePatch) Apply(prof *Profile) {
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&prof.AgeYears, p.AgeYears)
	setInt(&prof.WeightLbs, p.WeightLbs)
	setInt(&prof.ActivityLevelIndex, p.ActivityLevelIndex)
	setInt(&prof.GoalTypeIndex, p.GoalTypeIndex)
	setInt(&prof.GoalWeightLbs, p.GoalWeightLbs)
	setInt(&prof.DeliveryMethodIndex, p.DeliveryMethodIndex)
	setInt(&prof.AppearanceIndex, p.AppearanceIndex)
	if p.HeightText != nil {
		prof.HeightText = *p.HeightText
	}
	if p.IsMale != nil {
		prof.IsMale = *p.IsMale
	}
	if p.SelectedVitamins != nil {
		prof.SelectedVitamins = common.NormalizeList(p.SelectedVitamins)
	}
	if p.DietaryRestrictions != nil {
		prof.DietaryRestrictions = common.NormalizeList(p.DietaryRestrictions)
	}
	if p.DislikedFoods != nil {
		prof.DislikedFoods = common.NormalizeList(p.DislikedFoods)
	}
	if p.SelectedDiningHalls != nil {
		prof.SelectedDiningHalls = common.NormalizeList(p.SelectedDiningHalls)
	}
}

func intRange(field string, v *int, lo, hi int) error {
	if v != nil && (*v < lo || *v > hi) {
		return invalid(fmt.Sprintf("%s must be between %d and %d", field, lo, hi))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}
