package app

import "math"

// frameStats samples the instantaneous frame rate once per second of
// accumulated frame time.
type frameStats struct {
	accum float64

	seconds  int
	sumFPS   float64
	minFPS   float64
	maxFPS   float64
	sumFrame float64
	minFrame float64
	maxFrame float64
}

type sample struct {
	n     int
	fps   float64
	frame float64
}

type summary struct {
	seconds  int
	avgFPS   float64
	minFPS   float64
	maxFPS   float64
	avgFrame float64
	minFrame float64
	maxFrame float64
	score    float64
}

// observe records a frame that took dt seconds. ok is true when the frame
// closes a one-second window; s then holds that frame's numbers.
func (st *frameStats) observe(dt float64) (s sample, ok bool) {
	if dt <= 0 {
		return sample{}, false
	}
	fps := 1 / dt
	st.accum += dt
	if st.accum < 1 {
		return sample{}, false
	}
	st.accum = 0

	if st.seconds == 0 {
		st.minFPS, st.maxFPS = math.Inf(1), 0
		st.minFrame, st.maxFrame = math.Inf(1), 0
	}
	s = sample{n: st.seconds, fps: fps, frame: dt}
	st.seconds++
	st.sumFPS += fps
	st.minFPS = math.Min(st.minFPS, fps)
	st.maxFPS = math.Max(st.maxFPS, fps)
	st.sumFrame += dt
	st.minFrame = math.Min(st.minFrame, dt)
	st.maxFrame = math.Max(st.maxFrame, dt)
	return s, true
}

// summary reports the sampled statistics. score is the sum of the sampled
// frame rates. Everything is zero before the first sample.
func (st *frameStats) summary() summary {
	if st.seconds == 0 {
		return summary{}
	}
	n := float64(st.seconds)
	return summary{
		seconds:  st.seconds,
		avgFPS:   st.sumFPS / n,
		minFPS:   st.minFPS,
		maxFPS:   st.maxFPS,
		avgFrame: st.sumFrame / n,
		minFrame: st.minFrame,
		maxFrame: st.maxFrame,
		score:    st.sumFPS,
	}
}
