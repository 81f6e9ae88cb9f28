package attendance

import "time"

// Session is the currently (or formerly) valid token/expiry pair
// issued for a lesson. At most one session per lesson is active at
// any instant; issuing a new one deactivates its predecessor.
type Session struct {
	ID        string    // generated on creation
	LessonID  string    // foreign key owned by class management
	Token     string    // opaque, unguessable, fixed length
	IssuedAt  time.Time
	ExpiresAt time.Time // IssuedAt + window
	Active    bool
}

// Record is one student's durably recorded presence for a lesson.
// (LessonID, StudentID) is unique across all records, however many
// sessions the lesson went through.
type Record struct {
	ID            string
	SessionID     string
	LessonID      string
	StudentID     string
	RecordedAt    time.Time
	OriginAddress string // audit only, never used in decisions
}
