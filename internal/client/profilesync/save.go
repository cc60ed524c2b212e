package profilesync

import (
	"context"

	"github.com/dmitrijs2005/fuel/internal/client/models"
)

// scheduleSaveLocked arms the debounced save, replacing any pending one.
// Signed-out sessions never save.
func (c *Coordinator) scheduleSaveLocked() {
	if !c.identity.IsAuthenticated() {
		return
	}
	c.cancelLocked()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.debounce, func() { c.fire(gen) })
}

// cancelLocked drops the pending save. Calling it with nothing armed is a
// no-op.
func (c *Coordinator) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// fire runs when the debounce timer elapses. A callback from a timer that
// has since been replaced or canceled does nothing.
func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.timer == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.gen++
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, c.saveTimeout)
	defer cancel()
	_ = c.save(ctx)
}

// Flush sends the pending save now instead of waiting for the debounce.
// It returns nil when nothing is pending.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.timer == nil {
		c.mu.Unlock()
		return nil
	}
	c.cancelLocked()
	c.mu.Unlock()
	return c.save(ctx)
}

func (c *Coordinator) save(ctx context.Context) error {
	c.mu.Lock()
	payload := models.ProfileUpdate{Biometrics: c.profile.Biometrics, Selections: c.selections.Clone()}
	version, epoch := c.version, c.epoch
	c.inFlight++
	s, obs := c.stateLocked(), c.observers
	c.mu.Unlock()
	c.notify(s, obs)

	c.logger.Debug(ctx, "saving profile")
	rp, err := c.identity.UpdateProfile(ctx, payload)

	c.mu.Lock()
	c.inFlight--
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.lastErr = &RemoteError{Kind: ErrRemoteSaveFailed, Err: err}
		err = c.lastErr
		c.logger.Warn(ctx, "profile save failed", "error", err)
	} else if rp != nil {
		c.mergeLocked(rp, version)
	}
	s, obs = c.stateLocked(), c.observers
	c.mu.Unlock()
	c.notify(s, obs)
	return err
}

// mergeLocked applies a save echo. Identity fields always come from the
// server. Biometrics and selections are taken only when nothing changed
// locally since the payload was captured. Targets stay local.
func (c *Coordinator) mergeLocked(rp *models.RemoteProfile, version uint64) {
	c.applyIdentityLocked(rp)
	if version != c.version {
		return
	}
	c.profile.Biometrics = rp.Biometrics
	c.selections = rp.Selections.Clone()
	c.resetDraftsLocked()
	c.recomputeLocked()
}
