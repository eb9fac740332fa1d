package eventloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtual_RunsInDueOrder(t *testing.T) {
	v := NewVirtual()
	var got []string

	v.AfterFunc(30, func() { got = append(got, "c") })
	v.AfterFunc(10, func() { got = append(got, "a") })
	v.AfterFunc(10, func() { got = append(got, "b") })

	assert.Equal(t, 0, v.Advance(9))
	assert.Empty(t, got)

	assert.Equal(t, 2, v.Advance(1))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, int64(10), v.Now())

	v.Advance(100)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, int64(110), v.Now())
}

func TestVirtual_Stop(t *testing.T) {
	v := NewVirtual()
	fired := false

	timer := v.AfterFunc(5, func() { fired = true })
	assert.True(t, timer.Active())
	assert.True(t, timer.Stop())
	assert.False(t, timer.Active())
	assert.False(t, timer.Stop(), "second stop reports inactive")

	v.Advance(10)
	assert.False(t, fired)
	assert.Zero(t, v.Pending())
}

func TestVirtual_TimerInactiveOnceFired(t *testing.T) {
	v := NewVirtual()
	var timer Timer
	var activeInside bool

	timer = v.AfterFunc(1, func() { activeInside = timer.Active() })
	v.Advance(1)

	assert.False(t, activeInside)
	assert.False(t, timer.Active())
}

func TestVirtual_CallbackSchedulesWithinAdvance(t *testing.T) {
	v := NewVirtual()
	var at []int64

	var tick func()
	tick = func() {
		at = append(at, v.Now())
		if len(at) < 3 {
			v.AfterFunc(2, tick)
		}
	}
	v.AfterFunc(2, tick)

	v.Advance(10)
	assert.Equal(t, []int64{2, 4, 6}, at)
}

func TestVirtual_Drain(t *testing.T) {
	v := NewVirtual()
	count := 0
	v.AfterFunc(100, func() { count++ })
	v.AfterFunc(50, func() {
		count++
		v.AfterFunc(500, func() { count++ })
	})

	ran, err := v.Drain(10)
	require.NoError(t, err)
	assert.Equal(t, 3, ran)
	assert.Equal(t, 3, count)
	assert.Equal(t, int64(550), v.Now())
}

func TestVirtual_DrainLimit(t *testing.T) {
	v := NewVirtual()
	var forever func()
	forever = func() { v.AfterFunc(1, forever) }
	v.AfterFunc(1, forever)

	ran, err := v.Drain(25)
	assert.Error(t, err)
	assert.Equal(t, 25, ran)
}

func TestVirtual_NegativeDelay(t *testing.T) {
	v := NewVirtual()
	fired := false
	v.AfterFunc(-10, func() { fired = true })
	v.Advance(0)
	assert.True(t, fired)
}
