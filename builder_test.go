package stoplight

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalBuilder(t *testing.T) {
	t.Run("Build with defaults", func(t *testing.T) {
		signal, err := NewSignalBuilder().Build()

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), signal.Config())
		assert.Equal(t, Red, signal.CurrentPhase())
		assert.Equal(t, SignalNotStarted, signal.State())
	})

	t.Run("Build with custom timing", func(t *testing.T) {
		signal, err := NewSignalBuilder().
			WithCycleBounds(time.Second, 3*time.Second).
			WithPollInterval(10 * time.Millisecond).
			WithPushDelay(5 * time.Millisecond).
			WithRedrawEachCycle().
			WithSeed(42).
			Build()

		require.NoError(t, err)
		cfg := signal.Config()
		assert.Equal(t, time.Second, cfg.MinCycle)
		assert.Equal(t, 3*time.Second, cfg.MaxCycle)
		assert.Equal(t, 10*time.Millisecond, cfg.PollInterval)
		assert.Equal(t, 5*time.Millisecond, cfg.PushDelay)
		assert.True(t, cfg.RedrawEachCycle)
		assert.Equal(t, int64(42), cfg.Seed)
	})

	t.Run("Inverted cycle bounds rejected", func(t *testing.T) {
		_, err := NewSignalBuilder().
			WithCycleBounds(2*time.Second, time.Second).
			Build()

		require.Error(t, err)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("Non-positive poll interval rejected", func(t *testing.T) {
		_, err := NewSignalBuilder().
			WithPollInterval(0).
			Build()

		require.Error(t, err)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("Negative push delay rejected", func(t *testing.T) {
		_, err := NewSignalBuilder().
			WithPushDelay(-time.Millisecond).
			Build()

		require.Error(t, err)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("Observers registered on built signal", func(t *testing.T) {
		observer := NewTestObserver()
		signal, err := NewSignalBuilder().
			WithCycleBounds(20*time.Millisecond, 40*time.Millisecond).
			WithPollInterval(time.Millisecond).
			WithObserver(observer).
			Build()
		require.NoError(t, err)

		require.NoError(t, signal.Start(context.Background()))
		require.NoError(t, signal.Stop())

		assert.Equal(t, 1, observer.StartedCount())
		assert.Equal(t, 1, observer.StoppedCount())
	})
}
