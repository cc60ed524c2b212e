package profilesync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/clock/clocktest"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

type fakeIdentity struct {
	mu       sync.Mutex
	authed   bool
	remote   *models.RemoteProfile
	fetchErr error
	saveErr  error

	fetches  int
	saves    []models.ProfileUpdate
	saveCtxs []error

	// echo builds the save response; nil echoes the payload back.
	echo func(models.ProfileUpdate) *models.RemoteProfile
	// during runs inside UpdateProfile, while the save is in flight.
	during func()
}

func (f *fakeIdentity) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeIdentity) CurrentProfile(context.Context) (*models.RemoteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.remote == nil {
		return nil, nil
	}
	rp := *f.remote
	rp.Selections = rp.Selections.Clone()
	return &rp, nil
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.RemoteProfile, error) {
	f.mu.Lock()
	f.saves = append(f.saves, p)
	f.saveCtxs = append(f.saveCtxs, ctx.Err())
	during, echo, err := f.during, f.echo, f.saveErr
	f.mu.Unlock()

	if during != nil {
		during()
	}
	if err != nil {
		return nil, err
	}
	if echo != nil {
		return echo(p), nil
	}
	return &models.RemoteProfile{
		ID: "u1", Name: "Joe Bruin", Email: "joe@ucla.edu", Initials: "JB",
		Biometrics: p.Biometrics, Selections: p.Selections,
		Targets: nutrition.Targets{Calories: 1},
	}, nil
}

func (f *fakeIdentity) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeIdentity) lastSave() models.ProfileUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func remoteProfile() *models.RemoteProfile {
	return &models.RemoteProfile{
		ID: "u1", Name: "Joe Bruin", Email: "joe@ucla.edu", Initials: "JB",
		Biometrics: models.Biometrics{
			AgeYears: 34, HeightText: `6'1"`, WeightLbs: 182, GoalWeightLbs: 175, IsMale: false,
		},
		Selections: models.Selections{
			ActivityIndex: 3, GoalIndex: 1, DeliveryIndex: 2, AppearanceIndex: 0,
			Vitamins: []string{"Iron"}, DietaryRestrictions: []string{"Vegan"},
			DislikedFoods: []string{}, DiningLocations: []string{"Epicuria"},
		},
		Targets: nutrition.Targets{Calories: 9999, Macros: nutrition.Macros{Protein: 1, Carbs: 2, Fat: 3}},
	}
}

func newCoordinator(t *testing.T, id *fakeIdentity) (*Coordinator, *clocktest.Fake) {
	t.Helper()
	clk := clocktest.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(context.Background(), id, WithClock(clk)), clk
}

func expectedTargets(t *testing.T, b models.Biometrics, s models.Selections) nutrition.Targets {
	t.Helper()
	tg, ok := nutrition.Calculate(b.Inputs(s))
	if !ok {
		t.Fatalf("inputs %+v do not compute", b)
	}
	return tg
}
