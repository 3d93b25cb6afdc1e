package repositories

import (
	"conference-lab/domain/conference"
	"conference-lab/errors"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

const (
	historyPrefix   = "hist:"
	openEntryPrefix = "histopen:"
)

// DiskHistoryEntry is the stored representation of one side's occupancy.
type DiskHistoryEntry struct {
	ID            string `cbor:"1,keyasint"`
	SessionID     string `cbor:"2,keyasint"`
	RoomID        string `cbor:"3,keyasint"`
	HostID        string `cbor:"4,keyasint"`
	ParticipantID string `cbor:"5,keyasint"`
	ConnectionID  string `cbor:"6,keyasint"`
	JoinedAt      int64  `cbor:"7,keyasint"`
	LeftAt        *int64 `cbor:"8,keyasint,omitempty"`
}

// historyKey orders occupancies chronologically per session. The 19-digit
// zero padding keeps lexicographical and chronological order aligned; the
// entry id disambiguates two joins landing on the same nanosecond.
func historyKey(sessionID string, joinedAt time.Time, entryID string) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s", historyPrefix, sessionID, joinedAt.UnixNano(), entryID))
}

func openEntryKey(sessionID string, side conference.Side) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", openEntryPrefix, sessionID, side))
}

// AppendOccupancy opens a new occupancy for one side of a session. The
// store keeps at most one open entry per side: a stale open entry left by
// a previous connection is stamped closed in the same transaction, so a
// reconnect never piles up open rows.
//
// The session record is re-read inside this transaction: a session that
// already closed refuses the append, and a close committing concurrently
// conflicts with the tracked read instead of interleaving. Without that
// read the append would only touch history keys, the session close only
// session keys, and a join racing an end could leave an open entry on a
// closed session that nothing can ever stamp.
func (r ConferenceRepository) AppendOccupancy(entry conference.HistoryEntry) error {
	data, err := cbor.Marshal(fromHistoryEntry(entry))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		session, err := getSession(txn, entry.SessionID)
		if err != nil {
			return err
		}
		if !session.OnGoing() {
			return errors.ErrSessionNotFound
		}

		side := entry.Side()
		if err := closeOpenOccupancy(txn, entry.SessionID, side, entry.JoinedAt); err != nil {
			if !goerrors.Is(err, errors.ErrNoOpenOccupancy) {
				return err
			}
		}

		key := historyKey(entry.SessionID, entry.JoinedAt, entry.ID)
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(openEntryKey(entry.SessionID, side), key)
	})
	return mapBadgerError(err)
}

// CloseOccupancy stamps LeftAt on the side's open occupancy. Unlike the
// session-closing path, a missing open entry is a recoverable error here,
// the caller decides whether to tolerate it.
func (r ConferenceRepository) CloseOccupancy(sessionID string, side conference.Side, leftAt time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return closeOpenOccupancy(txn, sessionID, side, leftAt)
	})
	return mapBadgerError(err)
}

// ListOccupancies returns every occupancy of a session in join order.
func (r ConferenceRepository) ListOccupancies(sessionID string) ([]conference.HistoryEntry, error) {
	var entries []conference.HistoryEntry
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(historyPrefix + sessionID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var disk DiskHistoryEntry
				if err := cbor.Unmarshal(val, &disk); err != nil {
					return fmt.Errorf("unmarshal history entry failed: %w", err)
				}
				entries = append(entries, toHistoryEntry(disk))
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
	return entries, nil
}

// closeOpenOccupancy resolves the side's open-entry pointer, rewrites the
// record with LeftAt set and drops the pointer. Runs inside the caller's
// transaction so session close and occupancy close commit as one unit.
func closeOpenOccupancy(txn *badger.Txn, sessionID string, side conference.Side, leftAt time.Time) error {
	pointerKey := openEntryKey(sessionID, side)
	item, err := txn.Get(pointerKey)
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNoOpenOccupancy
	}
	if err != nil {
		return err
	}

	var entryKey []byte
	if err := item.Value(func(val []byte) error {
		entryKey = append([]byte(nil), val...)
		return nil
	}); err != nil {
		return err
	}

	entryItem, err := txn.Get(entryKey)
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		// Dangling pointer, treat as no open entry after dropping it.
		if err := txn.Delete(pointerKey); err != nil {
			return err
		}
		return errors.ErrNoOpenOccupancy
	}
	if err != nil {
		return err
	}

	var disk DiskHistoryEntry
	if err := entryItem.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &disk)
	}); err != nil {
		return err
	}

	ts := leftAt.UnixNano()
	disk.LeftAt = &ts
	data, err := cbor.Marshal(disk)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	if err := txn.Set(entryKey, data); err != nil {
		return err
	}
	return txn.Delete(pointerKey)
}

func fromHistoryEntry(entry conference.HistoryEntry) DiskHistoryEntry {
	disk := DiskHistoryEntry{
		ID:            entry.ID,
		SessionID:     entry.SessionID,
		RoomID:        entry.RoomID,
		HostID:        entry.HostID,
		ParticipantID: entry.ParticipantID,
		ConnectionID:  entry.ConnectionID,
		JoinedAt:      entry.JoinedAt.UnixNano(),
	}
	if entry.LeftAt != nil {
		ts := entry.LeftAt.UnixNano()
		disk.LeftAt = &ts
	}
	return disk
}

func toHistoryEntry(disk DiskHistoryEntry) conference.HistoryEntry {
	entry := conference.HistoryEntry{
		ID:            disk.ID,
		SessionID:     disk.SessionID,
		RoomID:        disk.RoomID,
		HostID:        disk.HostID,
		ParticipantID: disk.ParticipantID,
		ConnectionID:  disk.ConnectionID,
		JoinedAt:      time.Unix(0, disk.JoinedAt).UTC(),
	}
	if disk.LeftAt != nil {
		left := time.Unix(0, *disk.LeftAt).UTC()
		entry.LeftAt = &left
	}
	return entry
}
