package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-process Store used in tests and
// for local development. The single lock makes every primitive
// trivially atomic.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session // token -> session
	records  map[string]Record   // lessonID + "\x00" + studentID -> record
	byLesson map[string][]string // lessonID -> record keys, chronological
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		records:  make(map[string]Record),
		byLesson: make(map[string][]string),
	}
}

func recordMapKey(lessonID, studentID string) string {
	return lessonID + "\x00" + studentID
}

func (m *MemoryStore) CreateSessionDeactivatingPrior(
	ctx context.Context,
	lessonID string,
	token string,
	issuedAt time.Time,
	expiresAt time.Time,
) (Session, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sess := range m.sessions {
		if sess.LessonID == lessonID && sess.Active {
			sess.Active = false
		}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Active:    true,
	}
	m.sessions[token] = sess

	return *sess, nil
}

func (m *MemoryStore) FindSessionByToken(
	ctx context.Context,
	token string,
) (*Session, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return nil, nil // not found
	}

	out := *sess
	return &out, nil
}

func (m *MemoryStore) InsertRecordIfAbsent(
	ctx context.Context,
	rec Record,
) (Record, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	key := recordMapKey(rec.LessonID, rec.StudentID)
	if _, exists := m.records[key]; exists {
		return Record{}, ErrDuplicateAttendance
	}

	rec.ID = uuid.NewString()
	m.records[key] = rec
	m.byLesson[rec.LessonID] = append(m.byLesson[rec.LessonID], key)

	return rec, nil
}

func (m *MemoryStore) ListRecordsByLesson(
	ctx context.Context,
	lessonID string,
) ([]Record, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	keys := m.byLesson[lessonID]
	records := make([]Record, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		records = append(records, m.records[keys[i]])
	}

	return records, nil
}
