// Package profilesync keeps the signed-in user's profile consistent between
// the terminal UI and the backend.
//
// Edits are applied to local state at once and the nutrition targets are
// recomputed synchronously. A single debounced save then sends the whole
// editable surface to the backend. Every newer edit cancels and replaces
// the pending save. Targets are never taken from the backend: after any
// load or save they are recomputed from the local biometrics.
package profilesync

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/clock"
	"github.com/dmitrijs2005/fuel/internal/logging"
	"github.com/dmitrijs2005/fuel/internal/nutrition"
)

// Identity is the remote side the coordinator syncs against.
type Identity interface {
	IsAuthenticated() bool
	// CurrentProfile returns nil, nil when there is no remote profile.
	CurrentProfile(ctx context.Context) (*models.RemoteProfile, error)
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.RemoteProfile, error)
}

// State is an observable copy of the local profile and selections.
type State struct {
	Profile    models.Profile
	Selections models.Selections
}

type Coordinator struct {
	identity    Identity
	clock       clock.Clock
	debounce    time.Duration
	saveTimeout time.Duration
	logger      logging.Logger
	ctx         context.Context

	mu         sync.Mutex
	profile    models.Profile
	selections models.Selections
	drafts     map[Field]string

	timer    clock.Timer
	gen      uint64 // bumped whenever the pending save is armed or dropped
	version  uint64 // bumped on every change to local state
	epoch    uint64 // bumped on logout
	inFlight int

	lastErr   error
	observers []func(State)
}

// New builds a coordinator. When identity is authenticated the profile is
// seeded from the remote snapshot; otherwise it starts from the defaults.
// ctx bounds only that initial fetch. Saves fired by the debounce timer keep
// its values but not its cancellation, so a canceled caller context does not
// fail every later save.
func New(ctx context.Context, identity Identity, opts ...Option) *Coordinator {
	c := &Coordinator{
		identity:    identity,
		clock:       clock.NewSystemClock(),
		debounce:    DefaultDebounce,
		saveTimeout: DefaultSaveTimeout,
		logger:      logging.NewNop(),
		ctx:         context.WithoutCancel(ctx),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "profilesync")
	c.resetLocked()

	if !identity.IsAuthenticated() {
		return c
	}
	rp, err := identity.CurrentProfile(ctx)
	if err != nil {
		c.lastErr = &RemoteError{Kind: ErrRemoteFetchFailed, Err: err}
		c.logger.Warn(ctx, "initial profile load failed", "error", err)
		return c
	}
	if rp != nil {
		c.seedLocked(rp)
	}
	return c
}

func (c *Coordinator) resetLocked() {
	c.profile = models.Profile{Biometrics: models.DefaultBiometrics(), Targets: nutrition.DefaultTargets}
	c.selections = models.DefaultSelections()
	c.resetDraftsLocked()
	c.recomputeLocked()
}

func (c *Coordinator) resetDraftsLocked() {
	c.drafts = make(map[Field]string, len(fieldNames))
	for _, f := range Fields() {
		c.drafts[f] = fieldText(c.profile.Biometrics, f)
	}
}

// seedLocked overwrites identity, biometrics and selections from rp and
// recomputes the targets. rp.Targets is ignored.
func (c *Coordinator) seedLocked(rp *models.RemoteProfile) {
	c.applyIdentityLocked(rp)
	c.profile.Biometrics = rp.Biometrics
	c.selections = rp.Selections.Clone()
	c.resetDraftsLocked()
	c.recomputeLocked()
}

func (c *Coordinator) applyIdentityLocked(rp *models.RemoteProfile) {
	c.profile.Name = rp.Name
	c.profile.Email = rp.Email
	c.profile.Initials = rp.Initials
}

// recomputeLocked keeps the previous targets when the inputs are unusable.
func (c *Coordinator) recomputeLocked() {
	if t, ok := nutrition.Calculate(c.profile.Biometrics.Inputs(c.selections)); ok {
		c.profile.Targets = t
	}
}

func (c *Coordinator) stateLocked() State {
	return State{Profile: c.profile, Selections: c.selections.Clone()}
}

// OnChange registers fn to be called with the new state after every change.
// fn runs without the coordinator lock held.
func (c *Coordinator) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Coordinator) notify(s State, observers []func(State)) {
	for _, fn := range observers {
		fn(s)
	}
}

// commit is the common tail of every accepted edit.
func (c *Coordinator) commit(recompute bool) {
	if recompute {
		c.recomputeLocked()
	}
	c.version++
	c.scheduleSaveLocked()
	s, obs := c.stateLocked(), c.observers
	c.mu.Unlock()
	c.notify(s, obs)
}

// EditBiometric applies raw to field f. Invalid input is kept as the
// field's draft text and ErrValidationRejected is returned.
func (c *Coordinator) EditBiometric(f Field, raw string) error {
	c.mu.Lock()
	if _, ok := c.drafts[f]; !ok {
		c.mu.Unlock()
		return ErrValidationRejected
	}
	c.drafts[f] = raw
	if !applyField(&c.profile.Biometrics, f, raw) {
		c.mu.Unlock()
		return ErrValidationRejected
	}
	c.commit(true)
	return nil
}

func (c *Coordinator) SetMale(isMale bool) {
	c.mu.Lock()
	c.profile.IsMale = isMale
	c.commit(true)
}

func (c *Coordinator) setIndex(dst *int, i, count int, recompute bool) error {
	if i < 0 || i >= count {
		return ErrValidationRejected
	}
	c.mu.Lock()
	*dst = i
	c.commit(recompute)
	return nil
}

// SetActivity selects an activity level and recomputes the targets.
func (c *Coordinator) SetActivity(i int) error {
	return c.setIndex(&c.selections.ActivityIndex, i, activityCount, true)
}

// SetGoal selects a goal type and recomputes the targets.
func (c *Coordinator) SetGoal(i int) error {
	return c.setIndex(&c.selections.GoalIndex, i, goalCount, true)
}

func (c *Coordinator) SetDelivery(i int) error {
	return c.setIndex(&c.selections.DeliveryIndex, i, deliveryCount, false)
}

func (c *Coordinator) SetAppearance(i int) error {
	return c.setIndex(&c.selections.AppearanceIndex, i, appearanceCount, false)
}

// SetPreference replaces a preference set. Blank and repeated values are
// dropped.
func (c *Coordinator) SetPreference(k PreferenceKind, values []string) error {
	c.mu.Lock()
	dst := preferenceSet(&c.selections, k)
	if dst == nil {
		c.mu.Unlock()
		return ErrValidationRejected
	}
	*dst = normalizeSet(values)
	c.commit(false)
	return nil
}

// TogglePreference adds item to the set, or removes it if present.
func (c *Coordinator) TogglePreference(k PreferenceKind, item string) error {
	c.mu.Lock()
	dst := preferenceSet(&c.selections, k)
	item = normalizeItem(item)
	if dst == nil || item == "" {
		c.mu.Unlock()
		return ErrValidationRejected
	}
	*dst = toggle(*dst, item)
	c.commit(false)
	return nil
}

// State returns a copy of the local profile and selections.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Draft returns the text buffer of f, which may hold input that did not
// validate.
func (c *Coordinator) Draft(f Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drafts[f]
}

// LastError returns the most recent remote failure, or nil.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Coordinator) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// Busy reports whether a remote save or fetch is in flight.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// HasPendingSave reports whether a debounced save is armed.
func (c *Coordinator) HasPendingSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Refresh pulls the remote profile and overwrites biometrics and selections
// with it. On failure local state is kept and the error slot is set.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.identity.IsAuthenticated() {
		return nil
	}

	c.mu.Lock()
	epoch := c.epoch
	c.inFlight++
	c.mu.Unlock()

	rp, err := c.identity.CurrentProfile(ctx)

	c.mu.Lock()
	c.inFlight--
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		rerr := &RemoteError{Kind: ErrRemoteFetchFailed, Err: err}
		c.lastErr = rerr
		c.mu.Unlock()
		c.logger.Warn(ctx, "profile refresh failed", "error", err)
		return rerr
	}
	if rp != nil {
		c.seedLocked(rp)
		c.version++
	}
	s, obs := c.stateLocked(), c.observers
	c.mu.Unlock()
	c.notify(s, obs)
	return nil
}

// Logout cancels the pending save and discards the local profile. Saves
// still in flight complete but their results are dropped.
func (c *Coordinator) Logout() {
	c.mu.Lock()
	c.cancelLocked()
	c.epoch++
	c.version++
	c.lastErr = nil
	c.resetLocked()
	s, obs := c.stateLocked(), c.observers
	c.mu.Unlock()
	c.notify(s, obs)
}
