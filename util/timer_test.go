package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStopwatch(t *testing.T) {
	require := require.New(t)

	sw := NewStopwatch()
	require.Equal(time.Duration(0), sw.Elapsed())
	require.Equal(time.Duration(0), sw.Stop())

	sw.Start()
	time.Sleep(5 * time.Millisecond)
	require.GreaterOrEqual(int64(sw.Elapsed()), int64(5*time.Millisecond))
	elapsed := sw.Stop()
	require.GreaterOrEqual(int64(elapsed), int64(5*time.Millisecond))
	time.Sleep(time.Millisecond)
	require.Equal(elapsed, sw.Elapsed())
	require.Equal(elapsed, sw.Stop())

	sw.Start()
	require.Less(int64(sw.Elapsed()), int64(elapsed))
}
