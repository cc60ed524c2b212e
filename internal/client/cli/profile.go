package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fuel/internal/client/profilesync"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

var (
	deliveryNames   = []string{"Push", "iMessage", "Widget"}
	appearanceNames = []string{"Light", "Dark", "Auto"}
)

var fieldAliases = map[string]profilesync.Field{
	"age":         profilesync.FieldAge,
	"height":      profilesync.FieldHeight,
	"weight":      profilesync.FieldWeight,
	"goal":        profilesync.FieldGoalWeight,
	"goalweight":  profilesync.FieldGoalWeight,
	"goal-weight": profilesync.FieldGoalWeight,
}

var prefAliases = map[string]profilesync.PreferenceKind{
	"vitamins":     profilesync.Vitamins,
	"diet":         profilesync.DietaryRestrictions,
	"restrictions": profilesync.DietaryRestrictions,
	"disliked":     profilesync.DislikedFoods,
	"dislikes":     profilesync.DislikedFoods,
	"dining":       profilesync.DiningLocations,
}

func (a *App) printStatusLine() {
	if a.isLoggedIn() {
		a.printf("Signed in as %s\n", a.auth.Email())
	} else {
		a.printf("Not signed in; edits stay on this device\n")
	}
	if err := a.sync.LastError(); err != nil {
		a.printf("Last sync error: %v\n", err)
	}
}

// Show prints the profile, the locally computed targets and sync status.
func (a *App) Show(ctx context.Context) error {
	s := a.sync.State()
	p := s.Profile

	if p.Name != "" {
		a.printf("%s <%s> (%s)\n", p.Name, p.Email, p.Initials)
	}
	sex := "female"
	if p.IsMale {
		sex = "male"
	}
	a.printf("  age %d  height %s (%.1f cm)  weight %d lbs  goal weight %d lbs  %s\n",
		p.AgeYears, p.HeightText, nutrition.HeightToCm(p.HeightText), p.WeightLbs, p.GoalWeightLbs, sex)
	a.printf("  activity: %s  goal: %s\n",
		nutrition.ActivityLevel(s.Selections.ActivityIndex), nutrition.GoalType(s.Selections.GoalIndex))
	a.printf("  targets: %d kcal  protein %d g  carbs %d g  fat %d g\n",
		p.Targets.Calories, p.Targets.Protein, p.Targets.Carbs, p.Targets.Fat)
	a.printf("  delivery: %s  appearance: %s\n",
		optionName(deliveryNames, s.Selections.DeliveryIndex), optionName(appearanceNames, s.Selections.AppearanceIndex))
	a.printPrefs(s.Selections.Vitamins, s.Selections.DietaryRestrictions, s.Selections.DislikedFoods, s.Selections.DiningLocations)

	for _, f := range profilesync.Fields() {
		if d := a.sync.Draft(f); d != fieldValue(s, f) {
			a.printf("  %s draft %q not applied\n", f, d)
		}
	}

	switch {
	case a.sync.Busy():
		a.printf("  sync: saving\n")
	case a.sync.HasPendingSave():
		a.printf("  sync: pending\n")
	case a.isLoggedIn():
		a.printf("  sync: up to date\n")
	default:
		a.printf("  sync: local only\n")
	}
	if err := a.sync.LastError(); err != nil {
		a.printf("  last error: %v\n", err)
		a.sync.ClearError()
	}
	return nil
}

func fieldValue(s profilesync.State, f profilesync.Field) string {
	b := s.Profile.Biometrics
	switch f {
	case profilesync.FieldAge:
		return strconv.Itoa(b.AgeYears)
	case profilesync.FieldHeight:
		return b.HeightText
	case profilesync.FieldWeight:
		return strconv.Itoa(b.WeightLbs)
	case profilesync.FieldGoalWeight:
		return strconv.Itoa(b.GoalWeightLbs)
	}
	return ""
}

func (a *App) printPrefs(vitamins, diet, disliked, dining []string) {
	a.printf("  vitamins: %s\n", listOrNone(vitamins))
	a.printf("  dietary restrictions: %s\n", listOrNone(diet))
	a.printf("  disliked foods: %s\n", listOrNone(disliked))
	a.printf("  dining locations: %s\n", listOrNone(dining))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func optionName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "Unknown"
	}
	return names[i]
}

// Set edits a biometric field. Input that does not validate is kept as a
// draft and reported.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set age|height|weight|goal <value>")
	}
	f, ok := fieldAliases[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	raw := strings.Join(args[1:], " ")
	if err := a.sync.EditBiometric(f, raw); errors.Is(err, profilesync.ErrValidationRejected) {
		a.printf("%s not changed, %q kept as draft\n", f, raw)
		return nil
	}
	a.printTargets()
	return nil
}

func (a *App) printTargets() {
	t := a.sync.State().Profile.Targets
	a.printf("Targets: %d kcal  P %d g  C %d g  F %d g\n", t.Calories, t.Protein, t.Carbs, t.Fat)
}

func (a *App) Sex(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sex male|female")
	}
	switch strings.ToLower(args[0]) {
	case "male", "m":
		a.sync.SetMale(true)
	case "female", "f":
		a.sync.SetMale(false)
	default:
		return fmt.Errorf("unknown sex %q", args[0])
	}
	a.printTargets()
	return nil
}

// pickIndex lists the options when args is empty, otherwise resolves a
// number or a case-insensitive name and applies it with set.
func (a *App) pickIndex(args []string, names []string, current int, set func(int) error) (bool, error) {
	if len(args) == 0 {
		for i, n := range names {
			mark := " "
			if i == current {
				mark = "*"
			}
			a.printf("%s %d %s\n", mark, i, n)
		}
		return false, nil
	}
	arg := strings.Join(args, " ")
	i, err := strconv.Atoi(arg)
	if err != nil {
		i = -1
		for j, n := range names {
			if strings.EqualFold(n, arg) {
				i = j
			}
		}
	}
	if err := set(i); err != nil {
		return false, fmt.Errorf("invalid choice %q", arg)
	}
	return true, nil
}

func activityNames() []string {
	var out []string
	for _, l := range nutrition.ActivityLevels() {
		out = append(out, l.String())
	}
	return out
}

func goalNames() []string {
	var out []string
	for _, g := range nutrition.GoalTypes() {
		out = append(out, g.String())
	}
	return out
}

func (a *App) Activity(ctx context.Context, args []string) error {
	changed, err := a.pickIndex(args, activityNames(), a.sync.State().Selections.ActivityIndex, a.sync.SetActivity)
	if changed {
		a.printTargets()
	}
	return err
}

func (a *App) Goal(ctx context.Context, args []string) error {
	changed, err := a.pickIndex(args, goalNames(), a.sync.State().Selections.GoalIndex, a.sync.SetGoal)
	if changed {
		a.printTargets()
	}
	return err
}

func (a *App) Delivery(ctx context.Context, args []string) error {
	_, err := a.pickIndex(args, deliveryNames, a.sync.State().Selections.DeliveryIndex, a.sync.SetDelivery)
	return err
}

func (a *App) Appearance(ctx context.Context, args []string) error {
	_, err := a.pickIndex(args, appearanceNames, a.sync.State().Selections.AppearanceIndex, a.sync.SetAppearance)
	return err
}

// Prefs shows the preference sets, toggles an item in one of them, or
// clears a set with "-".
func (a *App) Prefs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		s := a.sync.State().Selections
		a.printPrefs(s.Vitamins, s.DietaryRestrictions, s.DislikedFoods, s.DiningLocations)
		return nil
	}
	kind, ok := prefAliases[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown preference %q (vitamins, diet, disliked, dining)", args[0])
	}
	if len(args) == 1 {
		return errors.New("usage: prefs <kind> <item>|-")
	}
	item := strings.Join(args[1:], " ")
	if item == "-" {
		return a.sync.SetPreference(kind, nil)
	}
	return a.sync.TogglePreference(kind, item)
}

func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not signed in\n")
		return nil
	}
	if err := a.reload(ctx); err != nil {
		return err
	}
	a.printf("Profile reloaded\n")
	return nil
}

func (a *App) Flush(ctx context.Context) error {
	if !a.sync.HasPendingSave() {
		a.printf("Nothing to save\n")
		return nil
	}
	if err := a.sync.Flush(ctx); err != nil {
		return friendlyError(err)
	}
	a.printf("Saved\n")
	return nil
}
