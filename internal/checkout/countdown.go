package checkout

import (
	"fmt"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Tick advances the countdown by elapsed seconds, clamped at zero. It has
// no effect outside the payment stage.
func (c *Controller) Tick(elapsedSeconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != domain.StagePayment || elapsedSeconds <= 0 {
		return
	}

	c.remaining -= elapsedSeconds
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// SecondsRemaining reports the countdown value, zero outside payment.
func (c *Controller) SecondsRemaining() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// FormatRemaining renders the countdown as M:SS with zero-padded seconds.
// Pure query.
func (c *Controller) FormatRemaining() string {
	c.mu.Lock()
	remaining := c.remaining
	c.mu.Unlock()
	return formatSeconds(remaining)
}

func formatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// startCountdownLocked launches the once-per-second tick loop. The loop is
// stopped whenever the session leaves the payment stage so no ticker is
// leaked.
func (c *Controller) startCountdownLocked() {
	c.stopCountdownLocked()

	stop := make(chan struct{})
	c.stopTicker = stop

	c.tickerWG.Add(1)
	go func() {
		defer c.tickerWG.Done()

		ticker := time.NewTicker(c.deps.TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Tick(1)
			case <-stop:
				return
			}
		}
	}()
}

func (c *Controller) stopCountdownLocked() {
	if c.stopTicker != nil {
		close(c.stopTicker)
		c.stopTicker = nil
	}
}
