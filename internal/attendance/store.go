package attendance

import (
	"context"
	"time"
)

// Store defines the atomic primitives the issuer and verifier build on.
// It is the sole writer of sessions and records; both uniqueness
// invariants live here and nowhere else.
//
// CreateSessionDeactivatingPrior and InsertRecordIfAbsent are each a
// single atomic unit. No intermediate state is observable: a new
// session never coexists with a still-active predecessor, and a
// conflicting record insert leaves nothing behind.
type Store interface {
	// CreateSessionDeactivatingPrior deactivates any active session
	// for the lesson and inserts the new one, atomically.
	CreateSessionDeactivatingPrior(
		ctx context.Context,
		lessonID string,
		token string,
		issuedAt time.Time,
		expiresAt time.Time,
	) (Session, error)

	// FindSessionByToken returns the session holding token, or nil
	// when no session matches.
	FindSessionByToken(ctx context.Context, token string) (*Session, error)

	// InsertRecordIfAbsent inserts the record unless one already
	// exists for (LessonID, StudentID), in which case it returns
	// ErrDuplicateAttendance. Detection is the backend's own
	// conditional write, never a separate existence check.
	InsertRecordIfAbsent(ctx context.Context, rec Record) (Record, error)

	// ListRecordsByLesson returns the lesson's records, most recent
	// first.
	ListRecordsByLesson(ctx context.Context, lessonID string) ([]Record, error)
}
