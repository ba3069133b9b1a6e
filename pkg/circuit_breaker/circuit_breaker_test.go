package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hondana-app/library-service/pkg/circuit_breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error {
		return nil
	}
	failingService := func() error {
		return errors.New("service error")
	}

	cb := circuit_breaker.New(10, 200*time.Millisecond, 0.30, 3)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// enough failures to cross the percentile and open the breaker
	for i := 0; i < 4; i++ {
		require.Error(t, cb.Call(failingService))
	}
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)

	// after the timeout the breaker half-opens and probes go through
	time.Sleep(250 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// closed again: a single failure must not reject calls outright
	require.Error(t, cb.Call(failingService))
	require.NoError(t, cb.Call(successfulService))
}

func Test_circuitBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	failingService := func() error {
		return errors.New("service error")
	}

	cb := circuit_breaker.New(4, 100*time.Millisecond, 0.5, 2)

	for i := 0; i < 2; i++ {
		require.Error(t, cb.Call(failingService))
	}
	require.ErrorIs(t, cb.Call(failingService), circuit_breaker.ErrOpenCB)

	time.Sleep(150 * time.Millisecond)

	// the half-open probe fails, so the breaker opens immediately again
	require.Error(t, cb.Call(failingService))
	require.ErrorIs(t, cb.Call(failingService), circuit_breaker.ErrOpenCB)
}
