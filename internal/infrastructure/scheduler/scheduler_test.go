package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s := New("test", 5*time.Millisecond, func(context.Context) { calls.Add(1) }, zerolog.Nop())
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

func TestScheduler_NoCorreAlArrancar(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New("test", time.Hour, func(context.Context) { calls.Add(1) }, zerolog.Nop())
	go s.Run(ctx)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load(), "un reinicio no debe repetir la corrida")
}

func TestScheduler_DailyEsperaLaHora(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// el reloj queda fijo 10ms antes de las 08:00
	fixed := time.Date(2025, 1, 1, 7, 59, 59, 990_000_000, time.UTC)
	s := New("test", time.Hour, func(context.Context) { calls.Add(1) }, zerolog.Nop()).Daily(8, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
}

func TestNextDaily(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	c := clock{hour: 8, minute: 0, loc: sp}

	cases := map[string]struct {
		now  time.Time
		want time.Time
	}{
		"antes de la hora": {
			now:  time.Date(2025, 3, 10, 6, 0, 0, 0, sp),
			want: time.Date(2025, 3, 10, 8, 0, 0, 0, sp),
		},
		"justo a la hora pasa al día siguiente": {
			now:  time.Date(2025, 3, 10, 8, 0, 0, 0, sp),
			want: time.Date(2025, 3, 11, 8, 0, 0, 0, sp),
		},
		"después de la hora": {
			now:  time.Date(2025, 3, 10, 21, 30, 0, 0, sp),
			want: time.Date(2025, 3, 11, 8, 0, 0, 0, sp),
		},
		"now en otra zona": {
			// 10:00 UTC = 07:00 en São Paulo
			now:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 8, 0, 0, 0, sp),
		},
		"fin de mes": {
			now:  time.Date(2025, 1, 31, 9, 0, 0, 0, sp),
			want: time.Date(2025, 2, 1, 8, 0, 0, 0, sp),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(nextDaily(tc.now, c)), "got %s", nextDaily(tc.now, c))
		})
	}
}

func TestNext_IntervalEsRetardoFijo(t *testing.T) {
	s := New("test", 90*time.Minute, func(context.Context) {}, zerolog.Nop())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(90*time.Minute), s.next(now))
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New("test", 5*time.Millisecond, func(context.Context) {
		calls.Add(1)
		panic("boom")
	}, zerolog.Nop())
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
}
