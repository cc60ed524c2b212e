package services

import (
	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
)

func toRemoteProfile(u *pb.UserData) *models.RemoteProfile {
	p := u.Profile
	return &models.RemoteProfile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Initials: u.Initials,
		Biometrics: models.Biometrics{
			AgeYears:      p.AgeYears,
			HeightText:    p.HeightText,
			WeightLbs:     p.WeightLbs,
			GoalWeightLbs: p.GoalWeightLbs,
			IsMale:        p.IsMale,
		},
		Selections: models.Selections{
			ActivityIndex:       p.ActivityLevelIndex,
			GoalIndex:           p.GoalTypeIndex,
			DeliveryIndex:       p.DeliveryMethodIndex,
			AppearanceIndex:     p.AppearanceIndex,
			Vitamins:            p.SelectedVitamins,
			DietaryRestrictions: p.DietaryRestrictions,
			DislikedFoods:       p.DislikedFoods,
			DiningLocations:     p.SelectedDiningHalls,
		}.Clone(),
		Targets: nutrition.Targets{
			Calories: p.CaloriesTarget,
			Macros:   nutrition.Macros{Protein: p.ProteinTarget, Carbs: p.CarbsTarget, Fat: p.FatTarget},
		},
	}
}

// toWire sends every field so the server ends up with exactly the local
// surface.
func toWire(u models.ProfileUpdate) *pb.ProfileUpdate {
	b, s := u.Biometrics, u.Selections.Clone()
	return &pb.ProfileUpdate{
		AgeYears:            &b.AgeYears,
		HeightText:          &b.HeightText,
		WeightLbs:           &b.WeightLbs,
		GoalWeightLbs:       &b.GoalWeightLbs,
		IsMale:              &b.IsMale,
		ActivityLevelIndex:  &s.ActivityIndex,
		GoalTypeIndex:       &s.GoalIndex,
		DeliveryMethodIndex: &s.DeliveryIndex,
		AppearanceIndex:     &s.AppearanceIndex,
		SelectedVitamins:    s.Vitamins,
		DietaryRestrictions: s.DietaryRestrictions,
		DislikedFoods:       s.DislikedFoods,
		SelectedDiningHalls: s.DiningLocations,
	}
}
