package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInvalidRecord    = errors.New("invalid activity record")
	ErrInvalidDateRange = errors.New("invalid date range: from must not be after to")

	ErrUserIDRequired    = errors.New("user_id is required")
	ErrTimestampRequired = errors.New("created_at is required")
)

// futureTolerance absorbs clock skew between the client and the server.
const futureTolerance = time.Minute

func inFuture(t time.Time) bool {
	return t.After(time.Now().Add(futureTolerance))
}
