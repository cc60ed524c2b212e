// Package models holds the client-side profile types shared by the sync
// coordinator, the identity service and the terminal UI.
package models

import (
	"slices"

	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

// Biometrics are the body measurements the targets are computed from.
type Biometrics struct {
	AgeYears      int
	HeightText    string
	WeightLbs     int
	GoalWeightLbs int
	IsMale        bool
}

// Inputs returns the calculator inputs for b under the given selections.
func (b Biometrics) Inputs(s Selections) nutrition.Inputs {
	return nutrition.Inputs{
		WeightLbs:  b.WeightLbs,
		HeightText: b.HeightText,
		AgeYears:   b.AgeYears,
		IsMale:     b.IsMale,
		Activity:   nutrition.ActivityLevel(s.ActivityIndex),
		Goal:       nutrition.GoalType(s.GoalIndex),
	}
}

// Selections are the picker indices and preference sets of a profile.
type Selections struct {
	ActivityIndex   int
	GoalIndex       int
	DeliveryIndex   int
	AppearanceIndex int

	Vitamins            []string
	DietaryRestrictions []string
	DislikedFoods       []string
	DiningLocations     []string
}

// Clone returns a copy that shares no slices with s.
func (s Selections) Clone() Selections {
	s.Vitamins = cloneList(s.Vitamins)
	s.DietaryRestrictions = cloneList(s.DietaryRestrictions)
	s.DislikedFoods = cloneList(s.DislikedFoods)
	s.DiningLocations = cloneList(s.DiningLocations)
	return s
}

// Equal compares indices and sets element-wise.
func (s Selections) Equal(o Selections) bool {
	return s.ActivityIndex == o.ActivityIndex &&
		s.GoalIndex == o.GoalIndex &&
		s.DeliveryIndex == o.DeliveryIndex &&
		s.AppearanceIndex == o.AppearanceIndex &&
		slices.Equal(s.Vitamins, o.Vitamins) &&
		slices.Equal(s.DietaryRestrictions, o.DietaryRestrictions) &&
		slices.Equal(s.DislikedFoods, o.DislikedFoods) &&
		slices.Equal(s.DiningLocations, o.DiningLocations)
}

func cloneList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

// Profile is the local, optimistic view of the signed-in user. Targets are
// always computed on this side.
type Profile struct {
	Name     string
	Email    string
	Initials string

	Biometrics
	Targets nutrition.Targets
}

// RemoteProfile is a snapshot as reported by the backend. Its Targets are
// informational only.
type RemoteProfile struct {
	ID       string
	Name     string
	Email    string
	Initials string

	Biometrics
	Selections
	Targets nutrition.Targets
}

// ProfileUpdate is the full editable surface sent on every save.
type ProfileUpdate struct {
	Biometrics
	Selections
}

// DefaultBiometrics is the starting point of a signed-out session.
func DefaultBiometrics() Biometrics {
	return Biometrics{
		AgeYears:      21,
		HeightText:    `5'10"`,
		WeightLbs:     165,
		GoalWeightLbs: 175,
		IsMale:        true,
	}
}

func DefaultSelections() Selections {
	return Selections{
		ActivityIndex:       int(nutrition.Moderate),
		GoalIndex:           int(nutrition.LeanMuscleGrowth),
		DeliveryIndex:       0,
		AppearanceIndex:     1,
		Vitamins:            []string{"Vit D", "B12", "Iron", "Calcium"},
		DietaryRestrictions: []string{},
		DislikedFoods:       []string{},
		DiningLocations:     []string{"BPlate", "De Neve", "Rendezvous"},
	}
}
