//go:generate go run go.uber.org/mock/mockgen -source=conference.go -destination=../mocks/mock_conference_repository.go -package=mocks
package repositories

import (
	"conference-lab/domain/conference"
	"conference-lab/errors"
	goerrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

// Key families owned by the coordinator. The room index is never removed,
// room identifiers must stay unique across the lifetime of the table.
//
//	conf:{session_id}                      -> DiskSession
//	room:{room_id}                         -> session_id
//	ongoing:{host_id}                      -> session_id (removed on close)
//	hist:{session_id}:{ts_padded}:{id}     -> DiskHistoryEntry
//	histopen:{session_id}:{side}           -> hist key (removed on leave)
const (
	sessionPrefix = "conf:"
	roomPrefix    = "room:"
	ongoingPrefix = "ongoing:"
)

type IConferenceRepository interface {
	CreateSession(session conference.Session) error
	FindOnGoing(hostID, participantID, roomID string) (conference.Session, error)
	GetOnGoingByHostID(hostID string) (conference.Session, error)
	ListSessions() ([]conference.Session, error)
	AppendOccupancy(entry conference.HistoryEntry) error
	CloseSession(sessionID string, leftAt time.Time) error
	CloseOccupancy(sessionID string, side conference.Side, leftAt time.Time) error
	ListOccupancies(sessionID string) ([]conference.HistoryEntry, error)
}

type ConferenceRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConferenceRepository(db *badger.DB, log *slog.Logger) *ConferenceRepository {
	return &ConferenceRepository{db: db, log: log}
}

// DiskSession is the stored representation of a session.
// Equivalent role to DiskHistoryEntry for the history table.
type DiskSession struct {
	ID            string `cbor:"1,keyasint"`
	RoomID        string `cbor:"2,keyasint"`
	HostID        string `cbor:"3,keyasint"`
	ParticipantID string `cbor:"4,keyasint"`
	BatchID       int64  `cbor:"5,keyasint"`
	Status        string `cbor:"6,keyasint"`
	CreatedAt     int64  `cbor:"7,keyasint"`
}

// CreateSession persists a new session together with its two uniqueness
// indexes in a single transaction. Both preconditions are checked against
// concurrent creators: badger tracks the index reads, so two racing
// creators for the same host or room cannot both commit; the loser gets
// ErrStoreConflict and must retry with a fresh room identifier.
func (r ConferenceRepository) CreateSession(session conference.Session) error {
	data, err := cbor.Marshal(fromSession(session))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		roomKey := []byte(roomPrefix + session.RoomID)
		if _, err := txn.Get(roomKey); err == nil {
			return errors.ErrDuplicateRoom
		} else if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		ongoingKey := []byte(ongoingPrefix + session.HostID)
		if _, err := txn.Get(ongoingKey); err == nil {
			return errors.ErrHostAlreadyInSession
		} else if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set([]byte(sessionPrefix+session.ID), data); err != nil {
			return err
		}
		if err := txn.Set(roomKey, []byte(session.ID)); err != nil {
			return err
		}
		return txn.Set(ongoingKey, []byte(session.ID))
	})
	return mapBadgerError(err)
}

// FindOnGoing looks up the unique on-going session matching the full
// (host, participant, room) triple. A session that exists but is already
// closed is reported as not found, the state machine never reopens it.
func (r ConferenceRepository) FindOnGoing(hostID, participantID, roomID string) (conference.Session, error) {
	var session conference.Session
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := getSessionByRoom(txn, roomID)
		if err != nil {
			return err
		}
		if !found.OnGoing() || !found.Matches(hostID, participantID, roomID) {
			return errors.ErrSessionNotFound
		}
		session = found
		return nil
	})
	if err != nil {
		return conference.Session{}, mapBadgerError(err)
	}
	return session, nil
}

// GetOnGoingByHostID resolves the host's single on-going session through
// the exclusivity index. Single-result semantics come from the index
// cardinality itself: one key per host, so no arbitrary row can leak out.
func (r ConferenceRepository) GetOnGoingByHostID(hostID string) (conference.Session, error) {
	var session conference.Session
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ongoingPrefix + hostID))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var sessionID string
		if err := item.Value(func(val []byte) error {
			sessionID = string(val)
			return nil
		}); err != nil {
			return err
		}
		session, err = getSession(txn, sessionID)
		return err
	})
	if err != nil {
		return conference.Session{}, mapBadgerError(err)
	}
	return session, nil
}

// ListSessions returns every session whose status is not the terminal
// "Finished" marker, newest first.
func (r ConferenceRepository) ListSessions() ([]conference.Session, error) {
	var sessions []conference.Session
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(sessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var disk DiskSession
				if err := cbor.Unmarshal(val, &disk); err != nil {
					return fmt.Errorf("unmarshal session failed: %w", err)
				}
				session := toSession(disk)
				if session.Status != conference.StatusFinished {
					sessions = append(sessions, session)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapBadgerError(err)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// CloseSession transitions the session to Closed, releases the host's
// exclusivity index and stamps LeftAt on the most recent open occupancy of
// each side, all in one transaction. A side without an open occupancy is
// tolerated as a no-op: the pair either fully applies or not at all.
func (r ConferenceRepository) CloseSession(sessionID string, leftAt time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		session, err := getSession(txn, sessionID)
		if err != nil {
			return err
		}
		if !session.OnGoing() {
			return errors.ErrSessionNotFound
		}

		session.Status = conference.StatusClosed
		data, err := cbor.Marshal(fromSession(session))
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		if err := txn.Set([]byte(sessionPrefix+session.ID), data); err != nil {
			return err
		}
		if err := txn.Delete([]byte(ongoingPrefix + session.HostID)); err != nil {
			return err
		}

		for _, side := range []conference.Side{conference.SideHost, conference.SideParticipant} {
			if err := closeOpenOccupancy(txn, sessionID, side, leftAt); err != nil {
				if goerrors.Is(err, errors.ErrNoOpenOccupancy) {
					continue
				}
				return err
			}
		}
		return nil
	})
	return mapBadgerError(err)
}

func getSession(txn *badger.Txn, sessionID string) (conference.Session, error) {
	item, err := txn.Get([]byte(sessionPrefix + sessionID))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return conference.Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return conference.Session{}, err
	}
	var disk DiskSession
	if err := item.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &disk)
	}); err != nil {
		return conference.Session{}, err
	}
	return toSession(disk), nil
}

func getSessionByRoom(txn *badger.Txn, roomID string) (conference.Session, error) {
	item, err := txn.Get([]byte(roomPrefix + roomID))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return conference.Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return conference.Session{}, err
	}
	var sessionID string
	if err := item.Value(func(val []byte) error {
		sessionID = string(val)
		return nil
	}); err != nil {
		return conference.Session{}, err
	}
	return getSession(txn, sessionID)
}

// mapBadgerError folds storage failures into the coordinator taxonomy.
// Commit collisions become ErrStoreConflict so callers can apply their
// bounded retry; domain sentinels pass through untouched.
func mapBadgerError(err error) error {
	switch {
	case err == nil:
		return nil
	case goerrors.Is(err, badger.ErrConflict):
		return fmt.Errorf("%w: %v", errors.ErrStoreConflict, err)
	case goerrors.Is(err, badger.ErrDBClosed), goerrors.Is(err, badger.ErrBlockedWrites):
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	default:
		return err
	}
}

func fromSession(session conference.Session) DiskSession {
	return DiskSession{
		ID:            session.ID,
		RoomID:        session.RoomID,
		HostID:        session.HostID,
		ParticipantID: session.ParticipantID,
		BatchID:       session.BatchID,
		Status:        string(session.Status),
		CreatedAt:     session.CreatedAt.UnixNano(),
	}
}

func toSession(disk DiskSession) conference.Session {
	return conference.Session{
		ID:            disk.ID,
		RoomID:        disk.RoomID,
		HostID:        disk.HostID,
		ParticipantID: disk.ParticipantID,
		BatchID:       disk.BatchID,
		Status:        conference.Status(disk.Status),
		CreatedAt:     time.Unix(0, disk.CreatedAt).UTC(),
	}
}
