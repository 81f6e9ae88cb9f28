package attendance

import (
	"context"
	"sync"
	"time"
)

// fakeClock is a manually advanced time source so expiry boundaries
// can be tested deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// stubRoster serves fixed ownership and enrollment data.
type stubRoster struct {
	owners   map[string]string // lessonID -> teacherID
	enrolled map[string]bool   // lessonID + "/" + studentID
}

func newStubRoster() *stubRoster {
	return &stubRoster{
		owners:   make(map[string]string),
		enrolled: make(map[string]bool),
	}
}

func (r *stubRoster) addLesson(lessonID, teacherID string, students ...string) {
	r.owners[lessonID] = teacherID
	for _, s := range students {
		r.enrolled[lessonID+"/"+s] = true
	}
}

func (r *stubRoster) LessonOwner(ctx context.Context, lessonID string) (string, bool, error) {
	owner, ok := r.owners[lessonID]
	return owner, ok, nil
}

func (r *stubRoster) IsEnrolled(ctx context.Context, lessonID, studentID string) (bool, error) {
	return r.enrolled[lessonID+"/"+studentID], nil
}
