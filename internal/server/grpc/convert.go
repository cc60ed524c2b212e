package grpc

import (
	pb "github.com/dmitrijs2005/fuel/internal/proto"
	"github.com/dmitrijs2005/fuel/internal/server/models"
	"github.com/dmitrijs2005/fuel/internal/server/services"
)

func toUserData(acc *services.Account) pb.UserData {
	p := acc.Profile
	return pb.UserData{
		ID:       acc.User.ID,
		Email:    acc.User.Email,
		Name:     acc.User.Name,
		Initials: acc.User.Initials(),
		Profile: pb.ProfileData{
			AgeYears:            p.AgeYears,
			HeightText:          p.HeightText,
			WeightLbs:           p.WeightLbs,
			GoalWeightLbs:       p.GoalWeightLbs,
			IsMale:              p.IsMale,
			ActivityLevelIndex:  p.ActivityLevelIndex,
			GoalTypeIndex:       p.GoalTypeIndex,
			CaloriesTarget:      p.CaloriesTarget,
			ProteinTarget:       p.ProteinTarget,
			CarbsTarget:         p.CarbsTarget,
			FatTarget:           p.FatTarget,
			SelectedVitamins:    p.SelectedVitamins,
			DietaryRestrictions: p.DietaryRestrictions,
			DislikedFoods:       p.DislikedFoods,
			SelectedDiningHalls: p.SelectedDiningHalls,
			DeliveryMethodIndex: p.DeliveryMethodIndex,
			AppearanceIndex:     p.AppearanceIndex,
		},
	}
}

func toPatch(u *pb.ProfileUpdate) *models.ProfilePatch {
	return &models.ProfilePatch{
		Name:                u.Name,
		AgeYears:            u.AgeYears,
		HeightText:          u.HeightText,
		WeightLbs:           u.WeightLbs,
		GoalWeightLbs:       u.GoalWeightLbs,
		IsMale:              u.IsMale,
		ActivityLevelIndex:  u.ActivityLevelIndex,
		GoalTypeIndex:       u.GoalTypeIndex,
		SelectedVitamins:    u.SelectedVitamins,
		DietaryRestrictions: u.DietaryRestrictions,
		DislikedFoods:       u.DislikedFoods,
		SelectedDiningHalls: u.SelectedDiningHalls,
		DeliveryMethodIndex: u.DeliveryMethodIndex,
		AppearanceIndex:     u.AppearanceIndex,
	}
}
