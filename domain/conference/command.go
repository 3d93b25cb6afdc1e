package conference

// Commands are the plain request records handed to the lifecycle engine
// by the surrounding transport layer. Validation tags are enforced at the
// service boundary before any store access.

type CreateConferenceCommand struct {
	HostID        string `validate:"required"`
	ParticipantID string `validate:"required,nefield=HostID"`
	BatchID       int64  `validate:"gte=0"`
}

type JoinConferenceCommand struct {
	HostID        string `validate:"required"`
	ParticipantID string `validate:"required"`
	RoomID        string `validate:"required"`
	ConnectionID  string `validate:"required"`
}

type EndConferenceCommand struct {
	HostID        string `validate:"required"`
	ParticipantID string `validate:"required"`
	RoomID        string `validate:"required"`
}
