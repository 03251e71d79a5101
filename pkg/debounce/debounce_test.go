package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDelay(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidDelay)

	_, err = New(-time.Second)
	assert.ErrorIs(t, err, ErrInvalidDelay)
}

func TestDebouncer_RunsOnce(t *testing.T) {
	d, err := New(20 * time.Millisecond)
	require.NoError(t, err)

	var count atomic.Int32
	d.Trigger(func() { count.Add(1) })

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestDebouncer_BurstCollapsesToLast(t *testing.T) {
	d, err := New(30 * time.Millisecond)
	require.NoError(t, err)

	var count atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			count.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_SeparateBurstsBothRun(t *testing.T) {
	d, err := New(10 * time.Millisecond)
	require.NoError(t, err)

	var count atomic.Int32
	d.Trigger(func() { count.Add(1) })
	time.Sleep(30 * time.Millisecond)
	d.Trigger(func() { count.Add(1) })
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, int32(2), count.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d, err := New(20 * time.Millisecond)
	require.NoError(t, err)

	var count atomic.Int32
	d.Trigger(func() { count.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())
}
