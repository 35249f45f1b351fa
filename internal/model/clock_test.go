package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClock(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(TimeControl{Initial: time.Minute, Increment: 2 * time.Second})
	c.now = ft.now

	ft.advance(10 * time.Second)
	assert.Equal(t, time.Minute, c.GetTimeLeft(), "stopped clock does not run")

	c.Start()
	ft.advance(15 * time.Second)
	assert.Equal(t, 45*time.Second, c.GetTimeLeft())

	c.Stop()
	ft.advance(time.Hour)
	assert.Equal(t, 45*time.Second, c.GetTimeLeft())

	c.AddIncrement()
	assert.Equal(t, 47*time.Second, c.GetTimeLeft())
	assert.False(t, c.Expired())

	c.Start()
	ft.advance(2 * time.Minute)
	assert.Equal(t, time.Duration(0), c.GetTimeLeft())
	assert.True(t, c.Expired())
}
