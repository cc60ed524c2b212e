// Package nutrition converts body metrics, activity level and goal into daily
// calorie and macronutrient targets.
//
// The pipeline is BMR (Mifflin–St Jeor) → TDEE → target calories → macro
// grams. Every function here is pure: identical inputs always produce
// identical outputs, and nothing reads the clock or performs I/O.
package nutrition

import "math"

const (
	kgPerLb = 0.453592

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Targets is the full set of daily targets derived from a profile.
type Targets struct {
	Calories int `json:"calories"`
	Macros
}

// DefaultTargets are reported when the inputs cannot produce a meaningful
// result (non-positive weight, height or age).
var DefaultTargets = Targets{Calories: 2400, Macros: Macros{Protein: 180, Carbs: 240, Fat: 70}}

// Inputs are the profile fields the targets depend on.
type Inputs struct {
	WeightLbs  int
	HeightText string
	AgeYears   int
	IsMale     bool
	Activity   ActivityLevel
	Goal       GoalType
}

// ComputeBMR returns the basal metabolic rate in kcal/day. Inputs are not
// range-checked.
func ComputeBMR(weightKg, heightCm float64, ageYears int, isMale bool) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if isMale {
		return base + 5
	}
	return base - 161
}

// ComputeTDEE scales bmr by the activity multiplier.
func ComputeTDEE(bmr float64, activity ActivityLevel) float64 {
	return bmr * activity.Multiplier()
}

// ComputeTargetCalories applies the goal adjustment and rounds to the
// nearest kcal.
func ComputeTargetCalories(tdee float64, goal GoalType) int {
	return round(tdee * goal.Adjustment())
}

// ComputeMacros splits targetCalories into grams. Protein is anchored to
// body weight, fat to a share of calories, and carbs take the remainder,
// never going below zero.
func ComputeMacros(targetCalories int, goal GoalType, weightLbs int) Macros {
	protein := round(float64(weightLbs) * goal.ProteinPerLb())
	fatKcal := float64(targetCalories) * goal.FatPercent()
	carbsKcal := float64(targetCalories) - float64(protein*kcalPerGramProtein) - fatKcal

	return Macros{
		Protein: protein,
		Fat:     round(fatKcal / kcalPerGramFat),
		Carbs:   max(0, round(carbsKcal/kcalPerGramCarbs)),
	}
}

// Calculate runs the whole pipeline. ok is false when weight, height or age
// is not positive; the returned Targets are then DefaultTargets.
func Calculate(in Inputs) (t Targets, ok bool) {
	weightKg := LbsToKg(in.WeightLbs)
	heightCm := HeightToCm(in.HeightText)
	if weightKg <= 0 || heightCm <= 0 || in.AgeYears <= 0 {
		return DefaultTargets, false
	}

	bmr := ComputeBMR(weightKg, heightCm, in.AgeYears, in.IsMale)
	calories := ComputeTargetCalories(ComputeTDEE(bmr, in.Activity), in.Goal)

	return Targets{
		Calories: calories,
		Macros:   ComputeMacros(calories, in.Goal, in.WeightLbs),
	}, true
}

// LbsToKg converts pounds to kilograms without rounding.
func LbsToKg(lbs int) float64 {
	return float64(lbs) * kgPerLb
}

// KgToLbs converts kilograms to whole pounds.
func KgToLbs(kg float64) int {
	return round(kg / kgPerLb)
}

// round rounds half away from zero after snapping away binary noise, so that
// 165*0.7 (115.49999999999999) rounds like the decimal 115.5 it represents.
func round(x float64) int {
	return int(math.Round(math.Round(x*1e6) / 1e6))
}
