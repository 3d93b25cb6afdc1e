//go:generate go run go.uber.org/mock/mockgen -source=conference_service.go -destination=../mocks/mock_conference_service.go -package=mocks
package services

import (
	"conference-lab/contract"
	"conference-lab/domain/conference"
	"conference-lab/domain/event"
	"conference-lab/errors"
	"conference-lab/repositories"
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// createRetryLimit bounds how often a failed check-and-insert is replayed
// after a commit collision or a generated room identifier collision.
// Losing every attempt means the store is thrashing, surface it.
const createRetryLimit = 3

var validate = validator.New()

type IConferenceService interface {
	CreateConference(ctx context.Context, cmd conference.CreateConferenceCommand) (conference.Session, error)
	JoinConferenceByHost(ctx context.Context, cmd conference.JoinConferenceCommand) error
	JoinConferenceByParticipant(ctx context.Context, cmd conference.JoinConferenceCommand) error
	EndConference(ctx context.Context, cmd conference.EndConferenceCommand) (string, error)
	EndConferenceByParticipant(ctx context.Context, cmd conference.EndConferenceCommand) error
	GetOnGoingConferenceByHostID(ctx context.Context, hostID string) (conference.SessionView, error)
	GetConferenceList(ctx context.Context) ([]conference.SessionSummary, error)
}

// ConferenceService is the lifecycle engine. Every public operation is a
// short read-modify-write against the session store; mutual exclusion
// between concurrent callers comes from the store's transactions, not
// from locks held here. Events are published strictly after the store
// mutation committed.
type ConferenceService struct {
	repository repositories.IConferenceRepository
	generator  contract.IRoomIDGenerator
	notifier   contract.INotifier
	names      contract.INameResolver
	log        *slog.Logger
}

func NewConferenceService(
	repository repositories.IConferenceRepository,
	generator contract.IRoomIDGenerator,
	notifier contract.INotifier,
	names contract.INameResolver,
	log *slog.Logger,
) *ConferenceService {
	return &ConferenceService{
		repository: repository,
		generator:  generator,
		notifier:   notifier,
		names:      names,
		log:        log,
	}
}

// CreateConference opens a new session between a host and a participant.
//
// Room uniqueness and the one-on-going-session-per-host rule are enforced
// atomically by the store. A room identifier collision is never silently
// accepted: the attempt is replayed with a freshly generated identifier,
// and surfaces as an error once the retry budget is spent. The same
// bounded replay covers commit collisions between concurrent creators,
// so for one host only one creator wins and the others see
// ErrHostAlreadyInSession or ErrStoreConflict.
func (s *ConferenceService) CreateConference(ctx context.Context, cmd conference.CreateConferenceCommand) (conference.Session, error) {
	if err := validate.Struct(cmd); err != nil {
		return conference.Session{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	var lastErr error
	for attempt := 1; attempt <= createRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return conference.Session{}, err
		}

		session := conference.Session{
			ID:            uuid.NewString(),
			RoomID:        s.generator.Generate(),
			HostID:        cmd.HostID,
			ParticipantID: cmd.ParticipantID,
			BatchID:       cmd.BatchID,
			Status:        conference.StatusOnGoing,
			CreatedAt:     time.Now().UTC(),
		}

		err := s.repository.CreateSession(session)
		switch {
		case err == nil:
			s.notifier.Publish(event.SessionCreated{
				ID:            uuid.New(),
				SessionID:     session.ID,
				RoomID:        session.RoomID,
				ParticipantID: session.ParticipantID,
				At:            session.CreatedAt,
			})
			s.log.Info("Conference created", "session", session.ID, "room", session.RoomID, "host", session.HostID)
			return session, nil
		case goerrors.Is(err, errors.ErrDuplicateRoom), goerrors.Is(err, errors.ErrStoreConflict):
			s.log.Warn("Conference creation collided, retrying", "attempt", attempt, "error", err)
			lastErr = err
		default:
			return conference.Session{}, err
		}
	}
	return conference.Session{}, lastErr
}

// JoinConferenceByHost records the host's occupancy of an on-going
// session and tells the participant's client the host arrived.
func (s *ConferenceService) JoinConferenceByHost(ctx context.Context, cmd conference.JoinConferenceCommand) error {
	session, entry, err := s.join(ctx, cmd, conference.SideHost)
	if err != nil {
		return err
	}
	s.notifier.Publish(event.SessionJoined{
		ID:           uuid.New(),
		SessionID:    session.ID,
		RoomID:       session.RoomID,
		OtherPartyID: session.ParticipantID,
		At:           entry.JoinedAt,
	})
	return nil
}

// JoinConferenceByParticipant records the participant's occupancy and
// tells the host's client the participant arrived.
func (s *ConferenceService) JoinConferenceByParticipant(ctx context.Context, cmd conference.JoinConferenceCommand) error {
	session, entry, err := s.join(ctx, cmd, conference.SideParticipant)
	if err != nil {
		return err
	}
	s.notifier.Publish(event.SessionJoined{
		ID:           uuid.New(),
		SessionID:    session.ID,
		RoomID:       session.RoomID,
		OtherPartyID: session.HostID,
		At:           entry.JoinedAt,
	})
	return nil
}

func (s *ConferenceService) join(ctx context.Context, cmd conference.JoinConferenceCommand, side conference.Side) (conference.Session, conference.HistoryEntry, error) {
	if err := validate.Struct(cmd); err != nil {
		return conference.Session{}, conference.HistoryEntry{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	var session conference.Session
	var entry conference.HistoryEntry
	err := s.withConflictRetry(ctx, "join", func() error {
		found, err := s.repository.FindOnGoing(cmd.HostID, cmd.ParticipantID, cmd.RoomID)
		if err != nil {
			return err
		}

		entry = conference.HistoryEntry{
			ID:           uuid.NewString(),
			SessionID:    found.ID,
			RoomID:       found.RoomID,
			ConnectionID: cmd.ConnectionID,
			JoinedAt:     time.Now().UTC(),
		}
		if side == conference.SideHost {
			entry.HostID = cmd.HostID
		} else {
			entry.ParticipantID = cmd.ParticipantID
		}

		if err := s.repository.AppendOccupancy(entry); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return conference.Session{}, conference.HistoryEntry{}, err
	}
	return session, entry, nil
}

// EndConference is the host-initiated end: it closes the session for good.
// Session transition and both occupancy closures commit as one unit; a
// side that never joined is tolerated. Returns the participant id for
// caller convenience.
func (s *ConferenceService) EndConference(ctx context.Context, cmd conference.EndConferenceCommand) (string, error) {
	if err := validate.Struct(cmd); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	var session conference.Session
	err := s.withConflictRetry(ctx, "end", func() error {
		found, err := s.repository.FindOnGoing(cmd.HostID, cmd.ParticipantID, cmd.RoomID)
		if err != nil {
			return err
		}
		if err := s.repository.CloseSession(found.ID, time.Now().UTC()); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return "", err
	}

	s.notifier.Publish(event.SessionEnded{
		ID:            uuid.New(),
		SessionID:     session.ID,
		RoomID:        session.RoomID,
		ParticipantID: session.ParticipantID,
		At:            time.Now().UTC(),
	})
	s.log.Info("Conference ended by host", "session", session.ID, "room", session.RoomID)
	return session.ParticipantID, nil
}

// EndConferenceByParticipant is the participant-initiated leave. It
// deliberately does NOT close the session: the participant leaving does
// not end the meeting for the host, only the participant's occupancy is
// stamped. A leave without a matching open occupancy is a recoverable
// ErrNoOpenOccupancy, never a crash.
func (s *ConferenceService) EndConferenceByParticipant(ctx context.Context, cmd conference.EndConferenceCommand) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	var session conference.Session
	err := s.withConflictRetry(ctx, "leave", func() error {
		found, err := s.repository.FindOnGoing(cmd.HostID, cmd.ParticipantID, cmd.RoomID)
		if err != nil {
			return err
		}
		if err := s.repository.CloseOccupancy(found.ID, conference.SideParticipant, time.Now().UTC()); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Publish(event.SessionEndedByParticipant{
		ID:        uuid.New(),
		SessionID: session.ID,
		RoomID:    session.RoomID,
		HostID:    session.HostID,
		At:        time.Now().UTC(),
	})
	s.log.Info("Conference left by participant", "session", session.ID, "room", session.RoomID)
	return nil
}

// GetOnGoingConferenceByHostID returns the host's single on-going session
// with denormalized display names.
func (s *ConferenceService) GetOnGoingConferenceByHostID(_ context.Context, hostID string) (conference.SessionView, error) {
	if hostID == "" {
		return conference.SessionView{}, fmt.Errorf("%w: host id is required", errors.ErrInvalidRequest)
	}

	session, err := s.repository.GetOnGoingByHostID(hostID)
	if err != nil {
		return conference.SessionView{}, err
	}

	return conference.SessionView{
		ID:              session.ID,
		RoomID:          session.RoomID,
		HostID:          session.HostID,
		ParticipantID:   session.ParticipantID,
		BatchID:         session.BatchID,
		Status:          session.Status,
		HostName:        s.names.DisplayName(session.HostID),
		ParticipantName: s.names.DisplayName(session.ParticipantID),
		CreatedAt:       session.CreatedAt,
	}, nil
}

// GetConferenceList returns all non-finished sessions, newest first.
// Read-only, not part of the state machine.
func (s *ConferenceService) GetConferenceList(_ context.Context) ([]conference.SessionSummary, error) {
	sessions, err := s.repository.ListSessions()
	if err != nil {
		return nil, err
	}
	return lo.Map(sessions, func(item conference.Session, _ int) conference.SessionSummary {
		return conference.SessionSummary{
			ID:            item.ID,
			RoomID:        item.RoomID,
			HostID:        item.HostID,
			ParticipantID: item.ParticipantID,
			Status:        item.Status,
		}
	}), nil
}

// withConflictRetry replays a read-modify-write sequence after a store
// commit collision, a bounded number of times. Every other error kind is
// returned as-is on the first occurrence.
func (s *ConferenceService) withConflictRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= createRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn()
		if err == nil {
			return nil
		}
		if !goerrors.Is(err, errors.ErrStoreConflict) {
			return err
		}
		s.log.Warn("Store conflict, retrying", "op", op, "attempt", attempt, "error", err)
		lastErr = err
	}
	return lastErr
}
