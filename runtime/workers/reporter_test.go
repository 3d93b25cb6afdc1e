package workers

import (
	"conference-lab/domain/conference"
	"conference-lab/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReporter_Logs_Session_Counts_On_Tick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := require.New(t)

	repository := mocks.NewMockIConferenceRepository(ctrl)
	ticked := make(chan struct{}, 1)
	repository.EXPECT().ListSessions().DoAndReturn(func() ([]conference.Session, error) {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return []conference.Session{
			{ID: "s1", Status: conference.StatusOnGoing},
			{ID: "s2", Status: conference.StatusClosed},
		}, nil
	}).MinTimes(1)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	worker := NewReporterWorker(log, repository, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("reporter never queried the store")
	}

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop on context cancellation")
	}
}
