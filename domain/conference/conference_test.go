package conference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_Matches_Requires_Full_Triple(t *testing.T) {
	req := require.New(t)
	session := Session{
		HostID:        "host-1",
		ParticipantID: "participant-1",
		RoomID:        "Room-1",
		Status:        StatusOnGoing,
	}

	req.True(session.Matches("host-1", "participant-1", "Room-1"))
	req.False(session.Matches("host-1", "participant-1", "Room-2"))
	req.False(session.Matches("host-1", "participant-2", "Room-1"))
	req.False(session.Matches("host-2", "participant-1", "Room-1"))
}

func TestHistoryEntry_Side_And_Open(t *testing.T) {
	req := require.New(t)

	hostEntry := HistoryEntry{HostID: "host-1", JoinedAt: time.Now().UTC()}
	req.Equal(SideHost, hostEntry.Side())
	req.True(hostEntry.Open())

	left := time.Now().UTC()
	participantEntry := HistoryEntry{ParticipantID: "participant-1", LeftAt: &left}
	req.Equal(SideParticipant, participantEntry.Side())
	req.False(participantEntry.Open())
}
