package workers

import (
	"conference-lab/domain/conference"
	"conference-lab/repositories"
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// ReporterWorker periodically logs a headcount of live sessions so an
// operator can follow activity from the daemon logs without opening the
// inspector.
type ReporterWorker struct {
	log        *slog.Logger
	repository repositories.IConferenceRepository
	interval   time.Duration
}

func NewReporterWorker(log *slog.Logger, repository repositories.IConferenceRepository, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{
		log:        log,
		repository: repository,
		interval:   interval,
	}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.report()
		case <-ctx.Done():
			w.log.Debug("Context done, stopping reporter loop")
			return nil
		}
	}
}

func (w *ReporterWorker) report() {
	sessions, err := w.repository.ListSessions()
	if err != nil {
		w.log.Warn("Failed to list sessions for report", "error", err)
		return
	}
	onGoing := lo.CountBy(sessions, func(s conference.Session) bool {
		return s.OnGoing()
	})
	w.log.Info("Session report", "total", len(sessions), "onGoing", onGoing)
}
