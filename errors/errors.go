package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrDuplicateRoom        = fmt.Errorf("a conference with the same room identifier already exists, action aborted, please contact system administrators")
	ErrHostAlreadyInSession = fmt.Errorf("you currently have one existing conference, end it before starting another one")
	ErrSessionNotFound      = fmt.Errorf("no conference found")
	ErrNoOpenOccupancy      = fmt.Errorf("no open occupancy recorded for this side of the conference")
	ErrStoreConflict        = fmt.Errorf("concurrent write collision on the session store")
	ErrStoreUnavailable     = fmt.Errorf("session store unavailable")
	ErrInvalidRequest       = fmt.Errorf("invalid request")
)
