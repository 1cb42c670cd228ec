package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RunHeadless drives newApp's step function from a ticker without opening a
// window. It returns when ctx is done, after cfg.Ticks steps (if set), or
// when a step fails. A step returning ErrQuit ends the run with nil.
func RunHeadless(ctx context.Context, cfg Config, newApp func(HAL) (func() error, error)) error {
	cfg.setDefaults()
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	hh, err := New(cfg)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()

	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.advance()
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
