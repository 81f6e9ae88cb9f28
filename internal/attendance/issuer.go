package attendance

import (
	"context"
	"fmt"
	"time"

	"attendance-service/internal/clock"
	"attendance-service/internal/logger"
	"attendance-service/internal/roster"
)

// Caller roles as supplied by the upstream gateway.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// IssuerConfig makes the token size and validity window explicit so
// tests can run with arbitrary windows.
type IssuerConfig struct {
	TokenBytes int           // random bytes per token; 16 = 128 bits
	Window     time.Duration // validity window; expiresAt = now + Window
}

// IssuedSession is what the issuer hands back for display. It is the
// only place the raw token leaves this package.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// Issuer creates attendance sessions for lessons. It is stateless;
// all state lives in the Store.
type Issuer struct {
	store  Store
	roster roster.Roster
	clock  clock.Clock
	cfg    IssuerConfig
}

func NewIssuer(
	store Store,
	roster roster.Roster,
	clk clock.Clock,
	cfg IssuerConfig,
) *Issuer {
	if cfg.TokenBytes <= 0 {
		cfg.TokenBytes = 16
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	return &Issuer{
		store:  store,
		roster: roster,
		clock:  clk,
		cfg:    cfg,
	}
}

// IssueSession creates a fresh session for the lesson, deactivating
// any prior active one in the same store call. Only the lesson's
// owning teacher may issue; a stale token displayed after a refresh
// can never validate again.
func (i *Issuer) IssueSession(
	ctx context.Context,
	lessonID string,
	requesterID string,
	requesterRole string,
) (IssuedSession, error) {

	if requesterRole != RoleTeacher {
		return IssuedSession{}, ErrUnauthorized
	}

	ownerID, ok, err := i.roster.LessonOwner(ctx, lessonID)
	if err != nil {
		return IssuedSession{}, storageErr(err)
	}
	if !ok {
		return IssuedSession{}, ErrLessonNotFound
	}
	if ownerID != requesterID {
		return IssuedSession{}, ErrUnauthorized
	}

	token, err := NewToken(i.cfg.TokenBytes)
	if err != nil {
		return IssuedSession{}, fmt.Errorf("attendance: issue session: %w", err)
	}

	now := i.clock.Now()
	expiresAt := now.Add(i.cfg.Window)

	sess, err := i.store.CreateSessionDeactivatingPrior(
		ctx,
		lessonID,
		token,
		now,
		expiresAt,
	)
	if err != nil {
		return IssuedSession{}, err
	}

	// The raw token is returned for display only, never logged.
	logger.Info("attendance session issued", map[string]any{
		"lesson_id":  lessonID,
		"session_id": sess.ID,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	return IssuedSession{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}
