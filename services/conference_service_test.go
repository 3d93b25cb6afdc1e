package services

import (
	"conference-lab/domain/conference"
	"conference-lab/domain/event"
	"conference-lab/errors"
	"conference-lab/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *mocks.MockIConferenceRepository
	generator *mocks.MockIRoomIDGenerator
	notifier  *mocks.MockINotifier
	names     *mocks.MockINameResolver
	service   *ConferenceService
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIConferenceRepository(ctrl)
	generator := mocks.NewMockIRoomIDGenerator(ctrl)
	notifier := mocks.NewMockINotifier(ctrl)
	names := mocks.NewMockINameResolver(ctrl)
	return fixture{
		repo:      repo,
		generator: generator,
		notifier:  notifier,
		names:     names,
		service:   NewConferenceService(repo, generator, notifier, names, slog.Default()),
	}
}

func TestConferenceService_CreateConference(t *testing.T) {
	ctx := context.Background()

	t.Run("should create and notify the participant", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.generator.EXPECT().Generate().Return("Room-abc").Times(1)
		f.repo.EXPECT().
			CreateSession(gomock.Any()).
			Do(func(s conference.Session) {
				req.Equal("Room-abc", s.RoomID)
				req.Equal(conference.StatusOnGoing, s.Status)
				req.NotEmpty(s.ID)
			}).
			Return(nil).
			Times(1)
		f.notifier.EXPECT().
			Publish(gomock.Any()).
			Do(func(e event.DomainEvent) {
				created, ok := e.(event.SessionCreated)
				req.True(ok)
				req.Equal("participant-1", created.TargetID())
				req.Equal("Room-abc", created.RoomID)
			}).
			Times(1)

		session, err := f.service.CreateConference(ctx, conference.CreateConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
			BatchID:       7,
		})

		req.NoError(err)
		req.Equal("host-1", session.HostID)
		req.Equal(conference.StatusOnGoing, session.Status)
	})

	t.Run("should fail when the host already has an on-going conference", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.generator.EXPECT().Generate().Return("Room-abc").Times(1)
		f.repo.EXPECT().CreateSession(gomock.Any()).Return(errors.ErrHostAlreadyInSession).Times(1)
		// No event may leak for a mutation that did not apply
		f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

		_, err := f.service.CreateConference(ctx, conference.CreateConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
		})

		req.ErrorIs(err, errors.ErrHostAlreadyInSession)
	})

	t.Run("should retry with a fresh room identifier on collision", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		gomock.InOrder(
			f.generator.EXPECT().Generate().Return("Room-taken"),
			f.generator.EXPECT().Generate().Return("Room-fresh"),
		)
		gomock.InOrder(
			f.repo.EXPECT().CreateSession(gomock.Any()).Return(errors.ErrDuplicateRoom),
			f.repo.EXPECT().CreateSession(gomock.Any()).DoAndReturn(func(s conference.Session) error {
				req.Equal("Room-fresh", s.RoomID)
				return nil
			}),
		)
		f.notifier.EXPECT().Publish(gomock.Any()).Times(1)

		session, err := f.service.CreateConference(ctx, conference.CreateConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
		})

		req.NoError(err)
		req.Equal("Room-fresh", session.RoomID)
	})

	t.Run("should surface the conflict after the retry budget is spent", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.generator.EXPECT().Generate().Return("Room-any").Times(createRetryLimit)
		f.repo.EXPECT().CreateSession(gomock.Any()).Return(errors.ErrStoreConflict).Times(createRetryLimit)
		f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

		_, err := f.service.CreateConference(ctx, conference.CreateConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
		})

		req.ErrorIs(err, errors.ErrStoreConflict)
	})

	t.Run("should reject a host pairing with itself", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().CreateSession(gomock.Any()).Times(0)

		_, err := f.service.CreateConference(ctx, conference.CreateConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "host-1",
		})

		req.ErrorIs(err, errors.ErrInvalidRequest)
	})
}

func TestConferenceService_JoinConference(t *testing.T) {
	ctx := context.Background()
	session := conference.Session{
		ID:            "session-1",
		RoomID:        "Room-abc",
		HostID:        "host-1",
		ParticipantID: "participant-1",
		Status:        conference.StatusOnGoing,
		CreatedAt:     time.Now().UTC(),
	}

	t.Run("host join opens an occupancy and targets the participant", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().FindOnGoing("host-1", "participant-1", "Room-abc").Return(session, nil).Times(1)
		f.repo.EXPECT().
			AppendOccupancy(gomock.Any()).
			Do(func(entry conference.HistoryEntry) {
				req.Equal("session-1", entry.SessionID)
				req.Equal(conference.SideHost, entry.Side())
				req.Equal("conn-42", entry.ConnectionID)
				req.Nil(entry.LeftAt)
			}).
			Return(nil).
			Times(1)
		f.notifier.EXPECT().
			Publish(gomock.Any()).
			Do(func(e event.DomainEvent) {
				req.Equal("Joined", e.Name())
				req.Equal("participant-1", e.TargetID())
			}).
			Times(1)

		err := f.service.JoinConferenceByHost(ctx, conference.JoinConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
			RoomID:        "Room-abc",
			ConnectionID:  "conn-42",
		})
		req.NoError(err)
	})

	t.Run("participant join targets the host", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().FindOnGoing("host-1", "participant-1", "Room-abc").Return(session, nil).Times(1)
		f.repo.EXPECT().
			AppendOccupancy(gomock.Any()).
			Do(func(entry conference.HistoryEntry) {
				req.Equal(conference.SideParticipant, entry.Side())
			}).
			Return(nil).
			Times(1)
		f.notifier.EXPECT().
			Publish(gomock.Any()).
			Do(func(e event.DomainEvent) {
				req.Equal("host-1", e.TargetID())
			}).
			Times(1)

		err := f.service.JoinConferenceByParticipant(ctx, conference.JoinConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
			RoomID:        "Room-abc",
			ConnectionID:  "conn-43",
		})
		req.NoError(err)
	})

	t.Run("join on an unknown pairing fails and writes nothing", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().
			FindOnGoing("host-1", "participant-1", "Room-unknown").
			Return(conference.Session{}, errors.ErrSessionNotFound).
			Times(1)
		f.repo.EXPECT().AppendOccupancy(gomock.Any()).Times(0)
		f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

		err := f.service.JoinConferenceByHost(ctx, conference.JoinConferenceCommand{
			HostID:        "host-1",
			ParticipantID: "participant-1",
			RoomID:        "Room-unknown",
			ConnectionID:  "conn-42",
		})
		req.ErrorIs(err, errors.ErrSessionNotFound)
	})
}

func TestConferenceService_EndConference(t *testing.T) {
	ctx := context.Background()
	session := conference.Session{
		ID:            "session-1",
		RoomID:        "Room-abc",
		HostID:        "host-1",
		ParticipantID: "participant-1",
		Status:        conference.StatusOnGoing,
	}
	cmd := conference.EndConferenceCommand{
		HostID:        "host-1",
		ParticipantID: "participant-1",
		RoomID:        "Room-abc",
	}

	t.Run("host end closes the session and returns the participant id", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().FindOnGoing("host-1", "participant-1", "Room-abc").Return(session, nil).Times(1)
		f.repo.EXPECT().CloseSession("session-1", gomock.Any()).Return(nil).Times(1)
		f.notifier.EXPECT().
			Publish(gomock.Any()).
			Do(func(e event.DomainEvent) {
				req.Equal("Ended", e.Name())
				req.Equal("participant-1", e.TargetID())
			}).
			Times(1)

		participantID, err := f.service.EndConference(ctx, cmd)
		req.NoError(err)
		req.Equal("participant-1", participantID)
	})

	t.Run("participant leave stamps only its occupancy and targets the host", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().FindOnGoing("host-1", "participant-1", "Room-abc").Return(session, nil).Times(1)
		f.repo.EXPECT().
			CloseOccupancy("session-1", conference.SideParticipant, gomock.Any()).
			Return(nil).
			Times(1)
		// The session itself must stay untouched on a participant leave
		f.repo.EXPECT().CloseSession(gomock.Any(), gomock.Any()).Times(0)
		f.notifier.EXPECT().
			Publish(gomock.Any()).
			Do(func(e event.DomainEvent) {
				req.Equal("EndedByParticipant", e.Name())
				req.Equal("host-1", e.TargetID())
			}).
			Times(1)

		req.NoError(f.service.EndConferenceByParticipant(ctx, cmd))
	})

	t.Run("participant leave without an open occupancy is a recoverable error", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().FindOnGoing("host-1", "participant-1", "Room-abc").Return(session, nil).Times(1)
		f.repo.EXPECT().
			CloseOccupancy("session-1", conference.SideParticipant, gomock.Any()).
			Return(errors.ErrNoOpenOccupancy).
			Times(1)
		f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

		err := f.service.EndConferenceByParticipant(ctx, cmd)
		req.ErrorIs(err, errors.ErrNoOpenOccupancy)
	})

	t.Run("end on a closed session reports not found", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().
			FindOnGoing("host-1", "participant-1", "Room-abc").
			Return(conference.Session{}, errors.ErrSessionNotFound).
			Times(1)
		f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

		_, err := f.service.EndConference(ctx, cmd)
		req.ErrorIs(err, errors.ErrSessionNotFound)
	})
}

func TestConferenceService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("on-going lookup denormalizes display names", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().GetOnGoingByHostID("host-1").Return(conference.Session{
			ID:            "session-1",
			RoomID:        "Room-abc",
			HostID:        "host-1",
			ParticipantID: "participant-1",
			Status:        conference.StatusOnGoing,
		}, nil).Times(1)
		f.names.EXPECT().DisplayName("host-1").Return("Alice").Times(1)
		f.names.EXPECT().DisplayName("participant-1").Return("Bob").Times(1)

		view, err := f.service.GetOnGoingConferenceByHostID(ctx, "host-1")
		req.NoError(err)
		req.Equal("Alice", view.HostName)
		req.Equal("Bob", view.ParticipantName)
		req.Equal("Room-abc", view.RoomID)
	})

	t.Run("on-going lookup without a session reports not found", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().
			GetOnGoingByHostID("host-1").
			Return(conference.Session{}, errors.ErrSessionNotFound).
			Times(1)

		_, err := f.service.GetOnGoingConferenceByHostID(ctx, "host-1")
		req.ErrorIs(err, errors.ErrSessionNotFound)
	})

	t.Run("listing maps sessions to summaries", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.repo.EXPECT().ListSessions().Return([]conference.Session{
			{ID: "session-2", RoomID: "Room-2", Status: conference.StatusOnGoing},
			{ID: "session-1", RoomID: "Room-1", Status: conference.StatusClosed},
		}, nil).Times(1)

		summaries, err := f.service.GetConferenceList(ctx)
		req.NoError(err)
		req.Len(summaries, 2)
		req.Equal("session-2", summaries[0].ID)
		req.Equal(conference.StatusClosed, summaries[1].Status)
	})
}
