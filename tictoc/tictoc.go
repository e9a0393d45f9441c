package tictoc

import (
	"time"

	"github.com/rs/zerolog"
)

// TicToc is a progress timer. It tracks the time of the last [TicToc.Tic], a
// counter of processed items and an optional expected total, and derives
// speed and completion estimates from them.
//
// The zero value is not usable, create instances with [New]. TicToc is not
// safe for concurrent use.
type TicToc struct {
	origin time.Time
	start  time.Time

	counter int
	total   int

	named  map[string]*TicToc
	logger zerolog.Logger
}

type Option = func(t *TicToc)

// WithTotal sets the expected number of items. Estimates are zero until a
// total is known.
func WithTotal(total int) Option {
	if total < 0 {
		panic("total can't be < 0")
	}
	return func(t *TicToc) {
		t.total = total
	}
}

// WithStart overrides the start instant, which normally is the creation time.
func WithStart(start time.Time) Option {
	return func(t *TicToc) {
		t.start = start
		t.origin = start
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *TicToc) {
		t.logger = logger
	}
}

func New(options ...Option) *TicToc {
	now := time.Now()

	t := TicToc{
		origin: now,
		start:  now,
		named:  make(map[string]*TicToc),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(&t)
	}

	return &t
}

// Tic restarts the timer and resets the counter. The origin instant is kept.
func (t *TicToc) Tic() {
	t.start = time.Now()
	t.counter = 0
}

// Named returns the sub-timer with the given name, creating and starting it
// on first use. Sub-timers inherit the logger and the expected total.
func (t *TicToc) Named(name string) *TicToc {
	if sub, ok := t.named[name]; ok {
		return sub
	}

	sub := New(WithTotal(t.total), WithLogger(t.logger))
	t.named[name] = sub

	return sub
}

// Step advances the counter by n processed items.
func (t *TicToc) Step(n int) {
	t.counter += n
}

func (t *TicToc) SetTotal(total int) {
	if total < 0 {
		panic("total can't be < 0")
	}
	t.total = total
}

func (t *TicToc) Counter() int {
	return t.counter
}

func (t *TicToc) Total() int {
	return t.total
}

// Elapsed returns the time passed since the last [TicToc.Tic].
func (t *TicToc) Elapsed() Interval {
	return Interval(time.Since(t.start))
}

// SinceOrigin returns the time passed since the timer was created.
func (t *TicToc) SinceOrigin() Interval {
	return Interval(time.Since(t.origin))
}

// Speed returns the average processing rate since the last [TicToc.Tic].
func (t *TicToc) Speed() Speed {
	sec := t.Elapsed().Seconds()
	if sec == 0 {
		return 0
	}
	return Speed(float64(t.counter) / sec)
}

// Remaining estimates the time left until all items are processed, assuming
// the average speed so far. Returns zero while the counter or the total is
// unknown.
func (t *TicToc) Remaining() Interval {
	if t.counter == 0 || t.total == 0 {
		return 0
	}

	ratio := float64(t.total)/float64(t.counter) - 1
	return Interval(float64(t.Elapsed()) * ratio)
}

// TotalTime estimates the time needed to process all items. Returns zero
// while the counter or the total is unknown.
func (t *TicToc) TotalTime() Interval {
	if t.counter == 0 || t.total == 0 {
		return 0
	}

	ratio := float64(t.total) / float64(t.counter)
	return Interval(float64(t.Elapsed()) * ratio)
}

// EndTime estimates the completion instant. Returns the zero time while the
// counter or the total is unknown.
func (t *TicToc) EndTime() time.Time {
	total := t.TotalTime()
	if total == 0 {
		return time.Time{}
	}
	return t.start.Add(total.Duration())
}

func (t *TicToc) StartTime() time.Time {
	return t.start
}

func (t *TicToc) OriginTime() time.Time {
	return t.origin
}

// Info logs the current progress at info level.
func (t *TicToc) Info() *TicToc {
	event := t.logger.Info().
		Int("counter", t.counter).
		Stringer("elapsed", t.Elapsed()).
		Float64("per_hour", t.Speed().PerHour())

	if t.total != 0 {
		event = event.
			Int("total", t.total).
			Stringer("remaining", t.Remaining()).
			Time("end", t.EndTime())
	}

	event.Msg("progress")
	return t
}

// InfoEvery logs the current progress only when the counter is a multiple of
// each. Useful inside tight loops.
func (t *TicToc) InfoEvery(each int) *TicToc {
	if each <= 0 {
		panic("each must be > 0")
	}
	if t.counter%each == 0 {
		t.Info()
	}
	return t
}

func (t *TicToc) String() string {
	return t.Elapsed().String()
}
