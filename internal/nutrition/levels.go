package nutrition

// ActivityLevel is the self-reported weekly activity bucket used to scale BMR.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	Light
	Moderate
	Active
	VeryActive
)

var activityMultipliers = [...]float64{1.2, 1.375, 1.55, 1.725, 1.9}

var activityNames = [...]string{"Sedentary", "Light", "Moderate", "Active", "Very Active"}

// Valid reports whether a is one of the five known levels.
func (a ActivityLevel) Valid() bool {
	return a >= Sedentary && a <= VeryActive
}

// Multiplier returns the TDEE multiplier. Unknown levels fall back to the
// sedentary multiplier.
func (a ActivityLevel) Multiplier() float64 {
	if !a.Valid() {
		return activityMultipliers[Sedentary]
	}
	return activityMultipliers[a]
}

func (a ActivityLevel) String() string {
	if !a.Valid() {
		return "Unknown"
	}
	return activityNames[a]
}

// GoalType selects the calorie adjustment and macro split.
type GoalType int

const (
	LeanMuscleGrowth GoalType = iota
	Bulking
	FatLoss
	Maintenance
)

type goalParams struct {
	name         string
	adjustment   float64
	proteinPerLb float64
	fatPercent   float64
}

var goals = [...]goalParams{
	LeanMuscleGrowth: {"Lean Muscle Growth", 1.10, 0.9, 0.28},
	Bulking:          {"Bulking", 1.20, 0.8, 0.28},
	FatLoss:          {"Fat Loss", 0.85, 1.0, 0.25},
	Maintenance:      {"Maintenance", 1.00, 0.7, 0.28},
}

// fallback used for goal indices outside the known range
var unknownGoal = goalParams{"Unknown", 1.0, 0.8, 0.28}

func (g GoalType) Valid() bool {
	return g >= LeanMuscleGrowth && g <= Maintenance
}

func (g GoalType) params() goalParams {
	if !g.Valid() {
		return unknownGoal
	}
	return goals[g]
}

// Adjustment is the factor applied to TDEE to obtain target calories.
func (g GoalType) Adjustment() float64 { return g.params().adjustment }

// ProteinPerLb is grams of protein per pound of body weight.
func (g GoalType) ProteinPerLb() float64 { return g.params().proteinPerLb }

// FatPercent is the fraction of target calories that comes from fat.
func (g GoalType) FatPercent() float64 { return g.params().fatPercent }

func (g GoalType) String() string { return g.params().name }

// ActivityLevels lists every level in index order.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{Sedentary, Light, Moderate, Active, VeryActive}
}

// GoalTypes lists every goal in index order.
func GoalTypes() []GoalType {
	return []GoalType{LeanMuscleGrowth, Bulking, FatLoss, Maintenance}
}
