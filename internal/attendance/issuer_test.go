package attendance

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestIssuer(store Store, r *stubRoster, clk *fakeClock) *Issuer {
	return NewIssuer(store, r, clk, IssuerConfig{
		TokenBytes: 16,
		Window:     15 * time.Minute,
	})
}

func TestIssueSession(t *testing.T) {
	store := NewMemoryStore()
	r := newStubRoster()
	r.addLesson("L1", "T1", "S1")
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	issuer := newTestIssuer(store, r, clk)

	issued, err := issuer.IssueSession(context.Background(), "L1", "T1", RoleTeacher)
	if err != nil {
		t.Fatalf("IssueSession() failed: %v", err)
	}

	if len(issued.Token) != 32 {
		t.Errorf("token length = %d, want 32", len(issued.Token))
	}

	wantExpiry := clk.Now().Add(15 * time.Minute)
	if !issued.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", issued.ExpiresAt, wantExpiry)
	}

	sess, err := store.FindSessionByToken(context.Background(), issued.Token)
	if err != nil {
		t.Fatalf("FindSessionByToken() failed: %v", err)
	}
	if sess == nil || !sess.Active {
		t.Fatal("issued session not stored as active")
	}
	if sess.LessonID != "L1" {
		t.Errorf("session lessonID = %q, want L1", sess.LessonID)
	}
}

func TestIssueSessionRejectsNonTeacher(t *testing.T) {
	store := NewMemoryStore()
	r := newStubRoster()
	r.addLesson("L1", "T1")
	issuer := newTestIssuer(store, r, newFakeClock(time.Now()))

	_, err := issuer.IssueSession(context.Background(), "L1", "S1", RoleStudent)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestIssueSessionRejectsNonOwner(t *testing.T) {
	store := NewMemoryStore()
	r := newStubRoster()
	r.addLesson("L1", "T1")
	issuer := newTestIssuer(store, r, newFakeClock(time.Now()))

	_, err := issuer.IssueSession(context.Background(), "L1", "T2", RoleTeacher)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestIssueSessionUnknownLesson(t *testing.T) {
	store := NewMemoryStore()
	issuer := newTestIssuer(store, newStubRoster(), newFakeClock(time.Now()))

	_, err := issuer.IssueSession(context.Background(), "missing", "T1", RoleTeacher)
	if !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
}

// Issuing N sessions for one lesson must leave exactly one active,
// and it must be the most recent.
func TestIssueSessionSingleActiveInvariant(t *testing.T) {
	store := NewMemoryStore()
	r := newStubRoster()
	r.addLesson("L1", "T1")
	clk := newFakeClock(time.Now())
	issuer := newTestIssuer(store, r, clk)

	var lastToken string
	for i := 0; i < 5; i++ {
		issued, err := issuer.IssueSession(context.Background(), "L1", "T1", RoleTeacher)
		if err != nil {
			t.Fatalf("issue %d failed: %v", i, err)
		}

		active := 0
		store.mu.Lock()
		for _, sess := range store.sessions {
			if sess.LessonID == "L1" && sess.Active {
				active++
				if sess.Token != issued.Token {
					t.Errorf("active session token = %q, want most recent %q",
						sess.Token, issued.Token)
				}
			}
		}
		store.mu.Unlock()

		if active != 1 {
			t.Fatalf("after issue %d: %d active sessions, want 1", i, active)
		}
		lastToken = issued.Token
		clk.Advance(time.Second)
	}

	sess, _ := store.FindSessionByToken(context.Background(), lastToken)
	if sess == nil || !sess.Active {
		t.Fatal("most recent session is not active")
	}
}
