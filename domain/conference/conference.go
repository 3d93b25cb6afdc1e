// Package conference contains the core concepts of the session coordinator.
// This file defines the Session and HistoryEntry entities and their
// invariants. No runtime, network, or storage logic should be added here.
package conference

import (
	"time"
)

// Status of a Session. The state machine is NONE -> OnGoing -> Closed,
// Closed being terminal. No transition returns a session to OnGoing.
type Status string

const (
	StatusOnGoing Status = "On-Going"
	StatusClosed  Status = "Closed"
	// StatusFinished is a legacy terminal marker filtered out of listings.
	// Nothing in the coordinator writes it; external maintenance might.
	StatusFinished Status = "Finished"
)

// Side identifies which party a HistoryEntry belongs to.
type Side string

const (
	SideHost        Side = "host"
	SideParticipant Side = "participant"
)

// Session is one live or concluded pairing of a host and a participant
// in a room. Rows are never deleted, they are the durable record.
type Session struct {
	ID            string
	RoomID        string
	HostID        string
	ParticipantID string
	BatchID       int64
	Status        Status
	CreatedAt     time.Time
}

// OnGoing reports whether the session still accepts joins and ends.
func (s Session) OnGoing() bool {
	return s.Status == StatusOnGoing
}

// Matches reports whether the session pairs the given host, participant
// and room. Lookups for join/end use the full triple, never a subset.
func (s Session) Matches(hostID, participantID, roomID string) bool {
	return s.HostID == hostID && s.ParticipantID == participantID && s.RoomID == roomID
}

// HistoryEntry is one side's timed occupancy of a session between a join
// and a leave. Exactly one of HostID/ParticipantID is populated, marking
// the side. Entries are never deleted, they are the audit trail consumed
// by reporting.
type HistoryEntry struct {
	ID            string
	SessionID     string
	RoomID        string
	HostID        string
	ParticipantID string
	ConnectionID  string
	JoinedAt      time.Time
	LeftAt        *time.Time
}

// Side derives the occupancy side from the populated identity field.
func (h HistoryEntry) Side() Side {
	if h.HostID != "" {
		return SideHost
	}
	return SideParticipant
}

// Open reports whether the occupancy has not been closed yet.
func (h HistoryEntry) Open() bool {
	return h.LeftAt == nil
}

// SessionView is the denormalized single-session read model returned by
// the on-going lookup, including display names resolved externally.
type SessionView struct {
	ID              string
	RoomID          string
	HostID          string
	ParticipantID   string
	BatchID         int64
	Status          Status
	HostName        string
	ParticipantName string
	CreatedAt       time.Time
}

// SessionSummary is the listing read model, newest first.
type SessionSummary struct {
	ID            string
	RoomID        string
	HostID        string
	ParticipantID string
	Status        Status
}
