package model

import (
	"sync"
	"time"
)

// TimeControl is the per-side budget of a game. A zero Initial disables the clocks.
type TimeControl struct {
	Initial   time.Duration
	Increment time.Duration
}

type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	increment   time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	now         func() time.Time
}

func NewClock(tc TimeControl) *Clock {
	return &Clock{
		timeLeft:  tc.Initial,
		increment: tc.Increment,
		isRunning: false,
		now:       time.Now,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

// AddIncrement credits the per-turn increment. Called once a turn is submitted.
func (c *Clock) AddIncrement() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeLeft += c.increment
}

func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.timeLeft
	if c.isRunning {
		left -= c.now().Sub(c.lastStarted)
	}
	if left < 0 {
		return 0
	}
	return left
}

func (c *Clock) Expired() bool {
	return c.GetTimeLeft() <= 0
}
