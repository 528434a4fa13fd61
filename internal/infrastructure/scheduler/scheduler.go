// Package scheduler ejecuta trabajos periódicos dentro del proceso.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Job trabajo periódico; recibe el contexto del scheduler.
type Job func(ctx context.Context)

// clock hora del día para las corridas diarias.
type clock struct {
	hour, minute int
	loc          *time.Location
}

// Scheduler corre un Job hasta que se cancela el contexto: todos los días a una hora fija (Daily)
// o, si no, con un retardo fijo de Interval entre corridas. Las ejecuciones nunca se solapan.
// No corre al arrancar, así un reinicio no repite los avisos del día.
type Scheduler struct {
	name     string
	interval time.Duration
	daily    *clock
	job      Job
	now      func() time.Time
	log      zerolog.Logger
}

// New construye el scheduler. interval debe ser > 0.
func New(name string, interval time.Duration, job Job, log zerolog.Logger) *Scheduler {
	return &Scheduler{name: name, interval: interval, job: job, now: time.Now, log: log}
}

// Daily fija la corrida a hour:minute en loc; Interval deja de usarse.
func (s *Scheduler) Daily(hour, minute int, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s.daily = &clock{hour: hour, minute: minute, loc: loc}
	return s
}

// Run bloquea hasta que ctx se cancela.
func (s *Scheduler) Run(ctx context.Context) {
	first := s.next(s.now())
	s.log.Info().Str("job", s.name).Time("next_run", first).Msg("scheduler iniciado")

	for {
		now := s.now()
		timer := time.NewTimer(s.next(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info().Str("job", s.name).Msg("scheduler detenido")
			return
		case <-timer.C:
			s.execute(ctx)
		}
	}
}

// next momento de la próxima corrida, estrictamente posterior a now.
func (s *Scheduler) next(now time.Time) time.Time {
	if s.daily == nil {
		return now.Add(s.interval)
	}
	return nextDaily(now, *s.daily)
}

func nextDaily(now time.Time, c clock) time.Time {
	local := now.In(c.loc)
	y, m, d := local.Date()
	at := time.Date(y, m, d, c.hour, c.minute, 0, 0, c.loc)
	if !at.After(local) {
		at = time.Date(y, m, d+1, c.hour, c.minute, 0, 0, c.loc)
	}
	return at
}

func (s *Scheduler) execute(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("job", s.name).Interface("panic", r).Msg("job abortado por panic")
		}
	}()
	s.job(ctx)
	s.log.Debug().Str("job", s.name).Dur("took", time.Since(start)).Msg("job ejecutado")
}
