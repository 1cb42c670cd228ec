package hal

import "time"

const tickDuration = time.Millisecond

// hostTime turns wall-clock progress into the Time tick stream. Ticks that
// do not fit the channel are counted and dropped.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last    time.Time
	carry   time.Duration
	dropped uint64
}

func newHostTime(now func() time.Time) *hostTime {
	if now == nil {
		now = time.Now
	}
	return &hostTime{ch: make(chan uint64, 1024), now: now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per millisecond elapsed since the previous call.
// The first call only starts the clock.
func (t *hostTime) advance() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.carry += now.Sub(t.last)
	t.last = now

	n := uint64(t.carry / tickDuration)
	t.carry %= tickDuration
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
			t.dropped++
		}
	}
}
