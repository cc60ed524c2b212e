package profilesync

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/common"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

// Field names an editable biometric text field.
type Field int

const (
	FieldAge Field = iota
	FieldHeight
	FieldWeight
	FieldGoalWeight
)

var fieldNames = [...]string{"age", "height", "weight", "goal weight"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields lists every editable biometric field.
func Fields() []Field {
	return []Field{FieldAge, FieldHeight, FieldWeight, FieldGoalWeight}
}

// PreferenceKind names one of the four preference sets.
type PreferenceKind int

const (
	Vitamins PreferenceKind = iota
	DietaryRestrictions
	DislikedFoods
	DiningLocations
)

var preferenceNames = [...]string{"vitamins", "dietary restrictions", "disliked foods", "dining locations"}

func (k PreferenceKind) String() string {
	if k < 0 || int(k) >= len(preferenceNames) {
		return "unknown"
	}
	return preferenceNames[k]
}

const (
	maxAge    = 150
	maxWeight = 1000

	activityCount   = 5
	goalCount       = 4
	deliveryCount   = 3
	appearanceCount = 3
)

// applyField parses raw for f and stores it into b. It reports false and
// leaves b untouched when raw is not acceptable.
func applyField(b *models.Biometrics, f Field, raw string) bool {
	s := strings.TrimSpace(raw)
	switch f {
	case FieldAge:
		v, ok := parseInt(s, maxAge)
		if ok {
			b.AgeYears = v
		}
		return ok
	case FieldWeight:
		v, ok := parseInt(s, maxWeight)
		if ok {
			b.WeightLbs = v
		}
		return ok
	case FieldGoalWeight:
		v, ok := parseInt(s, maxWeight)
		if ok {
			b.GoalWeightLbs = v
		}
		return ok
	case FieldHeight:
		if utf8.RuneCountInString(s) > common.MaxHeightTextLen || nutrition.HeightToCm(s) <= 0 {
			return false
		}
		b.HeightText = s
		return true
	}
	return false
}

// parseInt accepts integers in (0, upper).
func parseInt(s string, upper int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v >= upper {
		return 0, false
	}
	return v, true
}

func fieldText(b models.Biometrics, f Field) string {
	switch f {
	case FieldAge:
		return strconv.Itoa(b.AgeYears)
	case FieldHeight:
		return b.HeightText
	case FieldWeight:
		return strconv.Itoa(b.WeightLbs)
	case FieldGoalWeight:
		return strconv.Itoa(b.GoalWeightLbs)
	}
	return ""
}

func preferenceSet(s *models.Selections, k PreferenceKind) *[]string {
	switch k {
	case Vitamins:
		return &s.Vitamins
	case DietaryRestrictions:
		return &s.DietaryRestrictions
	case DislikedFoods:
		return &s.DislikedFoods
	case DiningLocations:
		return &s.DiningLocations
	}
	return nil
}

// normalizeSet applies normalizeItem, drops blanks and duplicates, and keeps
// first-seen order.
func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = normalizeItem(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// normalizeItem matches the server's rule so saved sets echo back unchanged.
func normalizeItem(s string) string {
	return common.NormalizeItem(s)
}

func toggle(set []string, item string) []string {
	if i := slices.Index(set, item); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), item)
}
