package attendance

import (
	"context"

	"attendance-service/internal/clock"
	"attendance-service/internal/logger"
	"attendance-service/internal/roster"
)

// Verifier checks presented tokens and records attendance. Stateless;
// the store's conditional insert carries the correctness burden.
type Verifier struct {
	store  Store
	roster roster.Roster
	clock  clock.Clock
}

func NewVerifier(store Store, roster roster.Roster, clk clock.Clock) *Verifier {
	return &Verifier{
		store:  store,
		roster: roster,
		clock:  clk,
	}
}

// RecordAttendance validates the token and durably records the
// student's presence at most once per lesson. Checks run in a fixed
// order and the first failure wins:
//
//  1. token lookup, activity and expiry — expiry is re-checked here
//     even though the issuer stamped it, so latency between issuance
//     and scan cannot produce a false accept;
//  2. enrollment;
//  3. conditional insert, where a conflict means the student already
//     has a record for this lesson.
//
// Nothing is retried; a resubmitted scan deterministically fails at
// step 1 or step 3.
func (v *Verifier) RecordAttendance(
	ctx context.Context,
	token string,
	studentID string,
	originAddress string,
) (Record, error) {

	sess, err := v.store.FindSessionByToken(ctx, token)
	if err != nil {
		return Record{}, err
	}

	now := v.clock.Now()

	// Unknown, superseded and expired tokens all fail the same way.
	if sess == nil || !sess.Active || !now.Before(sess.ExpiresAt) {
		return Record{}, ErrInvalidOrExpiredToken
	}

	enrolled, err := v.roster.IsEnrolled(ctx, sess.LessonID, studentID)
	if err != nil {
		return Record{}, storageErr(err)
	}
	if !enrolled {
		return Record{}, ErrNotEnrolled
	}

	rec, err := v.store.InsertRecordIfAbsent(ctx, Record{
		SessionID:     sess.ID,
		LessonID:      sess.LessonID,
		StudentID:     studentID,
		RecordedAt:    now,
		OriginAddress: originAddress,
	})
	if err != nil {
		return Record{}, err
	}

	logger.Info("attendance recorded", map[string]any{
		"lesson_id":  rec.LessonID,
		"student_id": rec.StudentID,
		"session_id": rec.SessionID,
	})

	return rec, nil
}
