package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a broadcast notification. Delivery is fire-and-forget,
// at-least-once and unordered across sessions. Every connected client
// receives every event and self-filters on TargetID.
type DomainEvent interface {
	Name() string
	TargetID() string
}

type SessionCreated struct {
	ID            uuid.UUID
	SessionID     string
	RoomID        string
	ParticipantID string
	At            time.Time
}

func (e SessionCreated) Name() string     { return "Created" }
func (e SessionCreated) TargetID() string { return e.ParticipantID }

type SessionJoined struct {
	ID        uuid.UUID
	SessionID string
	RoomID    string
	// OtherPartyID is the id of the party that did NOT join: a host join
	// targets the participant's client and vice versa.
	OtherPartyID string
	At           time.Time
}

func (e SessionJoined) Name() string     { return "Joined" }
func (e SessionJoined) TargetID() string { return e.OtherPartyID }

type SessionEnded struct {
	ID            uuid.UUID
	SessionID     string
	RoomID        string
	ParticipantID string
	At            time.Time
}

func (e SessionEnded) Name() string     { return "Ended" }
func (e SessionEnded) TargetID() string { return e.ParticipantID }

type SessionEndedByParticipant struct {
	ID        uuid.UUID
	SessionID string
	RoomID    string
	HostID    string
	At        time.Time
}

func (e SessionEndedByParticipant) Name() string     { return "EndedByParticipant" }
func (e SessionEndedByParticipant) TargetID() string { return e.HostID }
