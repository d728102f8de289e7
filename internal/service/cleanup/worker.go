package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Pruner drops state that has been idle for longer than the given age.
type Pruner interface {
	Prune(idle time.Duration) int
}

type Worker struct {
	Name     string
	Target   Pruner
	Interval time.Duration
	MaxIdle  time.Duration
}

func NewWorker(name string, target Pruner, interval, maxIdle time.Duration) *Worker {
	return &Worker{Name: name, Target: target, Interval: interval, MaxIdle: maxIdle}
}

// Run prunes on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	log.Debug().Str("component", "cleanup").Str("target", w.Name).Dur("interval", w.Interval).Msg("background worker started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	if removed := w.Target.Prune(w.MaxIdle); removed > 0 {
		log.Debug().Str("component", "cleanup").Str("target", w.Name).Int("removed", removed).Msg("pruned idle entries")
	}
}
