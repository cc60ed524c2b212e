package profilesync

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/clock/clocktest"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SignedOutStartsFromDefaults(t *testing.T) {
	id := &fakeIdentity{}
	c, _ := newCoordinator(t, id)

	s := c.State()
	assert.Equal(t, models.DefaultBiometrics(), s.Profile.Biometrics)
	assert.Equal(t, models.DefaultSelections(), s.Selections)
	assert.Equal(t, nutrition.Targets{Calories: 3000, Macros: nutrition.Macros{Protein: 149, Carbs: 391, Fat: 93}}, s.Profile.Targets)
	assert.Equal(t, 0, id.fetches)
	assert.NoError(t, c.LastError())
	assert.Equal(t, "165", c.Draft(FieldWeight))
}

func TestNew_SeedsFromRemoteButRecomputesTargets(t *testing.T) {
	rp := remoteProfile()
	c, _ := newCoordinator(t, &fakeIdentity{authed: true, remote: rp})

	s := c.State()
	assert.Equal(t, "Joe Bruin", s.Profile.Name)
	assert.Equal(t, "JB", s.Profile.Initials)
	assert.Equal(t, rp.Biometrics, s.Profile.Biometrics)
	assert.Equal(t, rp.Selections, s.Selections)
	assert.Equal(t, expectedTargets(t, rp.Biometrics, rp.Selections), s.Profile.Targets)
	assert.NotEqual(t, 9999, s.Profile.Targets.Calories)
	assert.Equal(t, `6'1"`, c.Draft(FieldHeight))
	assert.False(t, c.HasPendingSave(), "loading is not an edit")
}

func TestNew_NoRemoteProfileKeepsDefaults(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{authed: true})
	assert.Equal(t, models.DefaultBiometrics(), c.State().Profile.Biometrics)
	assert.NoError(t, c.LastError())
}

func TestNew_FetchFailureKeepsDefaults(t *testing.T) {
	cause := errors.New("offline")
	c, _ := newCoordinator(t, &fakeIdentity{authed: true, fetchErr: cause})

	assert.Equal(t, models.DefaultBiometrics(), c.State().Profile.Biometrics)
	err := c.LastError()
	assert.ErrorIs(t, err, ErrRemoteFetchFailed)
	assert.ErrorIs(t, err, cause)
}

func TestEditBiometric_RecomputesImmediately(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})

	require.NoError(t, c.EditBiometric(FieldWeight, "200"))
	require.NoError(t, c.EditBiometric(FieldHeight, `6'2"`))
	require.NoError(t, c.EditBiometric(FieldAge, " 40 "))
	require.NoError(t, c.EditBiometric(FieldGoalWeight, "190"))
	c.SetMale(false)

	s := c.State()
	want := models.Biometrics{AgeYears: 40, HeightText: `6'2"`, WeightLbs: 200, GoalWeightLbs: 190, IsMale: false}
	assert.Equal(t, want, s.Profile.Biometrics)
	assert.Equal(t, expectedTargets(t, want, s.Selections), s.Profile.Targets)
}

func TestEditBiometric_InvalidIsIgnoredAndDraftKept(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{authed: true})
	before := c.State()

	cases := []struct {
		f   Field
		raw string
	}{
		{FieldAge, ""},
		{FieldAge, "abc"},
		{FieldAge, "0"},
		{FieldAge, "-3"},
		{FieldAge, "150"},
		{FieldWeight, "1000"},
		{FieldWeight, "12.5"},
		{FieldGoalWeight, "0"},
		{FieldHeight, "tall"},
		{FieldHeight, `5'13"`},
		{FieldHeight, "170.00000000000000000001"},
		{Field(9), "1"},
	}
	for _, tc := range cases {
		err := c.EditBiometric(tc.f, tc.raw)
		assert.ErrorIs(t, err, ErrValidationRejected, "%v %q", tc.f, tc.raw)
	}

	assert.Equal(t, before, c.State())
	assert.Equal(t, "150", c.Draft(FieldAge))
	assert.Equal(t, `5'13"`, c.Draft(FieldHeight))
	assert.NoError(t, c.LastError(), "validation never touches the error slot")
	assert.False(t, c.HasPendingSave())
}

func TestEditBiometric_PartialTypingDoesNotReset(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})

	require.NoError(t, c.EditBiometric(FieldAge, "3"))
	require.NoError(t, c.EditBiometric(FieldAge, "34"))
	assert.ErrorIs(t, c.EditBiometric(FieldAge, "340"), ErrValidationRejected)

	assert.Equal(t, 34, c.State().Profile.AgeYears)
	assert.Equal(t, "340", c.Draft(FieldAge))
}

func TestDebounce_ThreeEditsOneSave(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldWeight, "170"))
	clk.Advance(300 * time.Millisecond)
	require.NoError(t, c.EditBiometric(FieldWeight, "171"))
	clk.Advance(300 * time.Millisecond)
	require.NoError(t, c.EditBiometric(FieldWeight, "172"))

	assert.Equal(t, 1, clk.Pending())
	clk.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, id.saveCount())
	assert.True(t, c.HasPendingSave())

	clk.Advance(time.Millisecond)
	require.Equal(t, 1, id.saveCount())
	assert.Equal(t, 172, id.lastSave().WeightLbs)
	assert.False(t, c.HasPendingSave())

	clk.Advance(time.Minute)
	assert.Equal(t, 1, id.saveCount())
}

func TestEditBiometric_Idempotent(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldAge, "30"))
	first := c.State()
	require.NoError(t, c.EditBiometric(FieldAge, "30"))

	assert.Equal(t, first, c.State())
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(time.Second)
	require.Equal(t, 1, id.saveCount())
	assert.Equal(t, 30, id.lastSave().AgeYears)
}

func TestSignedOut_NeverSaves(t *testing.T) {
	id := &fakeIdentity{}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldWeight, "210"))
	require.NoError(t, c.SetGoal(int(nutrition.FatLoss)))
	require.NoError(t, c.TogglePreference(Vitamins, "Zinc"))

	assert.False(t, c.HasPendingSave())
	assert.Equal(t, 0, clk.Pending())
	clk.Advance(time.Hour)
	assert.Equal(t, 0, id.saveCount())

	s := c.State()
	assert.Equal(t, expectedTargets(t, s.Profile.Biometrics, s.Selections), s.Profile.Targets)
}

func TestSave_SendsFullEditableSurface(t *testing.T) {
	id := &fakeIdentity{authed: true, remote: remoteProfile()}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.SetAppearance(2))
	clk.Advance(time.Second)

	require.Equal(t, 1, id.saveCount())
	got := id.lastSave()
	want := remoteProfile()
	want.AppearanceIndex = 2
	assert.Equal(t, want.Biometrics, got.Biometrics)
	assert.Equal(t, want.Selections, got.Selections)
}

func TestSave_MergeNeverTakesServerTargets(t *testing.T) {
	id := &fakeIdentity{authed: true}
	id.echo = func(p models.ProfileUpdate) *models.RemoteProfile {
		return &models.RemoteProfile{
			Name: "Joe Bruin", Email: "joe@ucla.edu", Initials: "JB",
			Biometrics: p.Biometrics, Selections: p.Selections,
			Targets: nutrition.Targets{Calories: 1234, Macros: nutrition.Macros{Protein: 1, Carbs: 1, Fat: 1}},
		}
	}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldWeight, "190"))
	clk.Advance(time.Second)

	s := c.State()
	assert.Equal(t, "Joe Bruin", s.Profile.Name)
	assert.Equal(t, "JB", s.Profile.Initials)
	assert.Equal(t, expectedTargets(t, s.Profile.Biometrics, s.Selections), s.Profile.Targets)
	assert.NotEqual(t, 1234, s.Profile.Targets.Calories)
}

func TestSave_EchoAppliesCanonicalFields(t *testing.T) {
	id := &fakeIdentity{authed: true}
	id.echo = func(p models.ProfileUpdate) *models.RemoteProfile {
		rp := &models.RemoteProfile{Name: "Joe", Biometrics: p.Biometrics, Selections: p.Selections.Clone()}
		rp.HeightText = `6'0"`
		rp.Vitamins = []string{"Iron"}
		return rp
	}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldHeight, "6"))
	clk.Advance(time.Second)

	s := c.State()
	assert.Equal(t, `6'0"`, s.Profile.HeightText)
	assert.Equal(t, `6'0"`, c.Draft(FieldHeight))
	assert.Equal(t, []string{"Iron"}, s.Selections.Vitamins)
	assert.Equal(t, expectedTargets(t, s.Profile.Biometrics, s.Selections), s.Profile.Targets)
}

func TestSave_EditDuringFlightWins(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)
	id.echo = func(p models.ProfileUpdate) *models.RemoteProfile {
		return &models.RemoteProfile{Name: "Joe", Biometrics: p.Biometrics, Selections: p.Selections}
	}
	id.during = func() {
		id.during = nil
		require.NoError(t, c.EditBiometric(FieldWeight, "181"))
	}

	require.NoError(t, c.EditBiometric(FieldWeight, "180"))
	clk.Advance(time.Second)

	s := c.State()
	assert.Equal(t, "Joe", s.Profile.Name, "identity is merged regardless")
	assert.Equal(t, 181, s.Profile.WeightLbs, "stale echo must not undo the newer edit")
	assert.Equal(t, expectedTargets(t, s.Profile.Biometrics, s.Selections), s.Profile.Targets)
	assert.True(t, c.HasPendingSave())

	clk.Advance(time.Second)
	require.Equal(t, 2, id.saveCount())
	assert.Equal(t, 181, id.lastSave().WeightLbs)
}

func TestSave_FailureSurfacesErrorWithoutRetry(t *testing.T) {
	cause := errors.New("unavailable")
	id := &fakeIdentity{authed: true, saveErr: cause}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldWeight, "175"))
	before := c.State()
	clk.Advance(time.Second)

	err := c.LastError()
	assert.ErrorIs(t, err, ErrRemoteSaveFailed)
	assert.ErrorIs(t, err, cause)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, before, c.State())

	clk.Advance(time.Hour)
	assert.Equal(t, 1, id.saveCount())

	c.ClearError()
	assert.NoError(t, c.LastError())

	// the next edit re-attempts
	id.saveErr = nil
	require.NoError(t, c.EditBiometric(FieldWeight, "176"))
	clk.Advance(time.Second)
	assert.Equal(t, 2, id.saveCount())
}

func TestBusy_DuringSave(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)
	var busy bool
	id.during = func() { busy = c.Busy() }

	require.NoError(t, c.SetDelivery(1))
	assert.False(t, c.Busy())
	clk.Advance(time.Second)

	assert.True(t, busy)
	assert.False(t, c.Busy())
}

func TestDebouncedSave_OutlivesCanceledParent(t *testing.T) {
	id := &fakeIdentity{authed: true, remote: remoteProfile()}
	clk := clocktest.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	c := New(ctx, id, WithClock(clk))
	cancel()

	require.NoError(t, c.EditBiometric(FieldWeight, "170"))
	clk.Advance(DefaultDebounce)

	require.Equal(t, 1, id.saveCount())
	assert.NoError(t, id.saveCtxs[0])
	assert.NoError(t, c.LastError())
}

func TestFlush(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, 0, id.saveCount())

	require.NoError(t, c.EditBiometric(FieldAge, "44"))
	require.NoError(t, c.Flush(context.Background()))
	require.Equal(t, 1, id.saveCount())
	assert.False(t, c.HasPendingSave())

	clk.Advance(time.Hour)
	assert.Equal(t, 1, id.saveCount())

	id.saveErr = errors.New("boom")
	require.NoError(t, c.EditBiometric(FieldAge, "45"))
	assert.ErrorIs(t, c.Flush(context.Background()), ErrRemoteSaveFailed)
}

func TestStaleTimerCallbackIsNoop(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)

	require.NoError(t, c.EditBiometric(FieldAge, "22"))
	c.mu.Lock()
	stale := c.gen
	c.mu.Unlock()
	require.NoError(t, c.EditBiometric(FieldAge, "23"))

	c.fire(stale)
	assert.Equal(t, 0, id.saveCount())
	assert.True(t, c.HasPendingSave())

	clk.Advance(time.Second)
	require.Equal(t, 1, id.saveCount())
	assert.Equal(t, 23, id.lastSave().AgeYears)

	c.fire(stale)
	c.mu.Lock()
	c.cancelLocked()
	c.cancelLocked()
	c.mu.Unlock()
	assert.Equal(t, 1, id.saveCount())
}

func TestSelections(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})

	require.NoError(t, c.SetActivity(int(nutrition.VeryActive)))
	require.NoError(t, c.SetGoal(int(nutrition.Maintenance)))
	s := c.State()
	assert.Equal(t, 4, s.Selections.ActivityIndex)
	assert.Equal(t, 3, s.Selections.GoalIndex)
	assert.Equal(t, expectedTargets(t, s.Profile.Biometrics, s.Selections), s.Profile.Targets)

	targets := s.Profile.Targets
	require.NoError(t, c.SetDelivery(2))
	require.NoError(t, c.SetAppearance(0))
	assert.Equal(t, targets, c.State().Profile.Targets)

	for _, err := range []error{
		c.SetActivity(5), c.SetActivity(-1), c.SetGoal(4),
		c.SetDelivery(3), c.SetAppearance(-1),
	} {
		assert.ErrorIs(t, err, ErrValidationRejected)
	}
	s = c.State()
	assert.Equal(t, 4, s.Selections.ActivityIndex)
	assert.Equal(t, 2, s.Selections.DeliveryIndex)
}

func TestPreferences(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})

	require.NoError(t, c.SetPreference(DietaryRestrictions, []string{" Vegan ", "", "Halal", "Vegan"}))
	assert.Equal(t, []string{"Vegan", "Halal"}, c.State().Selections.DietaryRestrictions)

	require.NoError(t, c.SetPreference(DislikedFoods, nil))
	assert.Equal(t, []string{}, c.State().Selections.DislikedFoods)

	require.NoError(t, c.TogglePreference(Vitamins, "Iron"))
	assert.Equal(t, []string{"Vit D", "B12", "Calcium"}, c.State().Selections.Vitamins)
	require.NoError(t, c.TogglePreference(Vitamins, "Zinc"))
	assert.Equal(t, []string{"Vit D", "B12", "Calcium", "Zinc"}, c.State().Selections.Vitamins)

	require.NoError(t, c.SetPreference(DislikedFoods, []string{"Mac, cheese", "Macaroni", "a,b", "ab"}))
	assert.Equal(t, []string{"Mac cheese", "Macaroni", "ab"}, c.State().Selections.DislikedFoods)
	require.NoError(t, c.TogglePreference(DislikedFoods, "Mac,cheese"))
	assert.Equal(t, []string{"Mac cheese", "Macaroni", "ab", "Maccheese"}, c.State().Selections.DislikedFoods)

	assert.ErrorIs(t, c.TogglePreference(Vitamins, "  "), ErrValidationRejected)
	assert.ErrorIs(t, c.TogglePreference(Vitamins, " , "), ErrValidationRejected)
	assert.ErrorIs(t, c.TogglePreference(PreferenceKind(7), "x"), ErrValidationRejected)
	assert.ErrorIs(t, c.SetPreference(PreferenceKind(-1), nil), ErrValidationRejected)
}

func TestState_IsACopy(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})
	s := c.State()
	s.Selections.Vitamins[0] = "changed"
	assert.Equal(t, "Vit D", c.State().Selections.Vitamins[0])
}

func TestRefresh_RecomputesFromRemote(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, _ := newCoordinator(t, id)
	require.NoError(t, c.EditBiometric(FieldWeight, "150"))

	id.remote = remoteProfile()
	require.NoError(t, c.Refresh(context.Background()))

	s := c.State()
	rp := remoteProfile()
	assert.Equal(t, rp.Biometrics, s.Profile.Biometrics)
	assert.Equal(t, rp.Selections, s.Selections)

	bmr := nutrition.ComputeBMR(nutrition.LbsToKg(rp.WeightLbs), nutrition.HeightToCm(rp.HeightText), rp.AgeYears, rp.IsMale)
	want := nutrition.ComputeTargetCalories(nutrition.ComputeTDEE(bmr, nutrition.ActivityLevel(rp.ActivityIndex)), nutrition.GoalType(rp.GoalIndex))
	assert.Equal(t, want, s.Profile.Targets.Calories)
	assert.NotEqual(t, rp.Targets.Calories, s.Profile.Targets.Calories)
	assert.Equal(t, "182", c.Draft(FieldWeight))
}

func TestRefresh_FailurePreservesState(t *testing.T) {
	id := &fakeIdentity{authed: true, remote: remoteProfile()}
	c, _ := newCoordinator(t, id)
	before := c.State()

	id.fetchErr = errors.New("timeout")
	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRemoteFetchFailed)
	assert.ErrorIs(t, c.LastError(), ErrRemoteFetchFailed)
	assert.Equal(t, before, c.State())
	assert.False(t, c.Busy())
}

func TestEditBiometric_HeightLengthCap(t *testing.T) {
	c, _ := newCoordinator(t, &fakeIdentity{})

	long := `5'` + strings.Repeat(" ", 18) + `10"`
	assert.ErrorIs(t, c.EditBiometric(FieldHeight, long), ErrValidationRejected)
	require.NoError(t, c.EditBiometric(FieldHeight, `    5' 10"    `), "surrounding blanks are trimmed first")
	assert.Equal(t, `5' 10"`, c.State().Profile.HeightText)
}

func TestRefresh_ConcurrentWithFailingFlush(t *testing.T) {
	id := &fakeIdentity{authed: true, fetchErr: errors.New("fetch down"), saveErr: errors.New("save down")}
	c, _ := newCoordinator(t, id)

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range rounds {
			err := c.Refresh(context.Background())
			assert.ErrorIs(t, err, ErrRemoteFetchFailed)
			assert.NotErrorIs(t, err, ErrRemoteSaveFailed)
		}
	}()
	go func() {
		defer wg.Done()
		for i := range rounds {
			_ = c.EditBiometric(FieldWeight, strconv.Itoa(150+i%2))
			if err := c.Flush(context.Background()); err != nil {
				assert.ErrorIs(t, err, ErrRemoteSaveFailed)
				assert.NotErrorIs(t, err, ErrRemoteFetchFailed)
			}
		}
	}()
	wg.Wait()

	assert.Error(t, c.LastError())
	assert.False(t, c.Busy())
}

func TestRefresh_SignedOutIsNoop(t *testing.T) {
	id := &fakeIdentity{remote: remoteProfile()}
	c, _ := newCoordinator(t, id)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 0, id.fetches)
	assert.Equal(t, models.DefaultBiometrics(), c.State().Profile.Biometrics)
}

func TestLogout_CancelsPendingSaveAndDiscardsProfile(t *testing.T) {
	id := &fakeIdentity{authed: true, remote: remoteProfile(), saveErr: errors.New("x")}
	c, clk := newCoordinator(t, id)
	require.NoError(t, c.EditBiometric(FieldWeight, "200"))
	require.NoError(t, c.Flush(context.Background()))
	require.Error(t, c.LastError())
	require.NoError(t, c.EditBiometric(FieldWeight, "201"))

	c.Logout()
	id.authed = false

	assert.False(t, c.HasPendingSave())
	assert.Equal(t, 0, clk.Pending())
	clk.Advance(time.Hour)
	assert.Equal(t, 1, id.saveCount())

	s := c.State()
	assert.Empty(t, s.Profile.Name)
	assert.Equal(t, models.DefaultBiometrics(), s.Profile.Biometrics)
	assert.Equal(t, models.DefaultSelections(), s.Selections)
	assert.NoError(t, c.LastError())
}

func TestLogout_DropsInFlightResult(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)
	id.echo = func(p models.ProfileUpdate) *models.RemoteProfile {
		return &models.RemoteProfile{Name: "Ghost", Biometrics: p.Biometrics, Selections: p.Selections}
	}
	id.during = func() { c.Logout() }

	require.NoError(t, c.EditBiometric(FieldWeight, "222"))
	clk.Advance(time.Second)

	s := c.State()
	assert.Empty(t, s.Profile.Name)
	assert.Equal(t, 165, s.Profile.WeightLbs)
	assert.False(t, c.Busy())
}

func TestOnChange(t *testing.T) {
	id := &fakeIdentity{authed: true}
	c, clk := newCoordinator(t, id)

	var seen []State
	c.OnChange(func(s State) { seen = append(seen, s) })

	require.NoError(t, c.EditBiometric(FieldWeight, "170"))
	require.Len(t, seen, 1)
	assert.Equal(t, 170, seen[0].Profile.WeightLbs)

	assert.ErrorIs(t, c.EditBiometric(FieldWeight, "x"), ErrValidationRejected)
	assert.Len(t, seen, 1)

	clk.Advance(time.Second)
	assert.Len(t, seen, 3, "save start and save completion")
}
