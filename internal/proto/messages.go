// Package proto defines the fuel.v1.FuelService wire contract: the request
// and response messages, their encoding as google.protobuf.Struct, and the
// gRPC service descriptor with its client and server bindings.
package proto

// Empty is the request of methods that take no arguments.
type Empty struct{}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Name     string         `json:"name"`
	Profile  *ProfileUpdate `json:"profile,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PingResponse struct {
	Status string `json:"status"`
}

// ProfileData is the full stored profile, targets included.
type ProfileData struct {
	AgeYears      int    `json:"age_years"`
	HeightText    string `json:"height_text"`
	WeightLbs     int    `json:"weight_lbs"`
	GoalWeightLbs int    `json:"goal_weight_lbs"`
	IsMale        bool   `json:"is_male"`

	ActivityLevelIndex int `json:"activity_level_index"`
	GoalTypeIndex      int `json:"goal_type_index"`

	CaloriesTarget int `json:"calories_target"`
	ProteinTarget  int `json:"protein_target"`
	CarbsTarget    int `json:"carbs_target"`
	FatTarget      int `json:"fat_target"`

	SelectedVitamins    []string `json:"selected_vitamins"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	DislikedFoods       []string `json:"disliked_foods"`
	SelectedDiningHalls []string `json:"selected_dining_halls"`

	DeliveryMethodIndex int `json:"delivery_method_index"`
	AppearanceIndex     int `json:"appearance_index"`
}

type UserData struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Initials string      `json:"initials"`
	Profile  ProfileData `json:"profile"`
}

// ProfileUpdate is a partial update. Absent scalars are nil. A list sent as
// null is left unchanged while an empty list clears it, so list fields carry
// no omitempty.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty"`

	AgeYears      *int    `json:"age_years,omitempty"`
	HeightText    *string `json:"height_text,omitempty"`
	WeightLbs     *int    `json:"weight_lbs,omitempty"`
	GoalWeightLbs *int    `json:"goal_weight_lbs,omitempty"`
	IsMale        *bool   `json:"is_male,omitempty"`

	ActivityLevelIndex *int `json:"activity_level_index,omitempty"`
	GoalTypeIndex      *int `json:"goal_type_index,omitempty"`

	SelectedVitamins    []string `json:"selected_vitamins"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	DislikedFoods       []string `json:"disliked_foods"`
	SelectedDiningHalls []string `json:"selected_dining_halls"`

	DeliveryMethodIndex *int `json:"delivery_method_index,omitempty"`
	AppearanceIndex     *int `json:"appearance_index,omitempty"`
}
