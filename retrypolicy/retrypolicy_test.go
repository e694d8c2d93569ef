package retrypolicy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 0, o.MaxAttempts)
	assert.Equal(t, time.Second, o.BaseDelay)
	assert.Equal(t, 30*time.Second, o.MaxDelay)
	assert.False(t, o.ExponentialBackoff)
	assert.False(t, o.Idempotent)
}

func TestDelayFixed(t *testing.T) {
	o := Options{BaseDelay: 200 * time.Millisecond}
	assert.Equal(t, 200*time.Millisecond, o.Delay(0))
	assert.Equal(t, 200*time.Millisecond, o.Delay(3))
}

func TestDelayExponentialDoubles(t *testing.T) {
	o := Options{BaseDelay: 100 * time.Millisecond, ExponentialBackoff: true, MaxDelay: 10 * time.Second}
	assert.Equal(t, 100*time.Millisecond, o.Delay(0))
	assert.Equal(t, 200*time.Millisecond, o.Delay(1))
	assert.Equal(t, 400*time.Millisecond, o.Delay(2))
	assert.Equal(t, 800*time.Millisecond, o.Delay(3))
}

func TestDelayClampsToMax(t *testing.T) {
	o := Options{BaseDelay: time.Second, ExponentialBackoff: true, MaxDelay: 3 * time.Second}
	assert.Equal(t, 3*time.Second, o.Delay(10))
}

func TestDelayJitterNeverExceedsUnjittered(t *testing.T) {
	o := Options{BaseDelay: time.Second, ExponentialBackoff: true, MaxDelay: 5 * time.Second, Jitter: true}
	for i := 0; i < 50; i++ {
		d := o.Delay(2)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 4*time.Second)
	}
}

func TestPacerNilIsAlwaysAllowed(t *testing.T) {
	var p *Pacer
	assert.True(t, p.Allow())
}

func TestPacerRespectsBurst(t *testing.T) {
	p := NewPacer(1, 2)
	require.True(t, p.Allow())
	require.True(t, p.Allow())
	assert.False(t, p.Allow())
}

func TestPacerNilWaitNeverBlocks(t *testing.T) {
	var p *Pacer
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.NoError(t, p.Wait(ctx))
}

func TestPacerWaitAdmitsWithinBurst(t *testing.T) {
	p := NewPacer(1000, 2)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, p.Wait(ctx))
	assert.NoError(t, p.Wait(ctx))
}

func TestPacerWaitRespectsCanceledContext(t *testing.T) {
	p := NewPacer(0.001, 1)
	require.True(t, p.Allow()) // drain the single burst token
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}
