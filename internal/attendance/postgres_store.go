package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"attendance-service/internal/db"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert
// hits a unique constraint.
const uniqueViolation = "23505"

// PostgresStore is the authoritative Store. Both invariants are
// enforced by the database itself: a partial unique index keeps one
// active session per lesson, and a unique constraint on
// (lesson_id, student_id) rejects duplicate records.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateSessionDeactivatingPrior(
	ctx context.Context,
	lessonID string,
	token string,
	issuedAt time.Time,
	expiresAt time.Time,
) (Session, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, storageErr(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE attendance_sessions
		SET active = false
		WHERE lesson_id = $1 AND active
	`, lessonID)

	if err != nil {
		return Session{}, storageErr(err)
	}

	sess := Session{
		LessonID:  lessonID,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Active:    true,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO attendance_sessions
			(lesson_id, token, issued_at, expires_at, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id
	`, lessonID, token, issuedAt, expiresAt).Scan(&sess.ID)

	if err != nil {
		return Session{}, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return Session{}, storageErr(err)
	}

	return sess, nil
}

func (s *PostgresStore) FindSessionByToken(
	ctx context.Context,
	token string,
) (*Session, error) {

	var sess Session

	err := s.db.QueryRowContext(ctx, `
		SELECT id, lesson_id, token, issued_at, expires_at, active
		FROM attendance_sessions
		WHERE token = $1
	`, token).Scan(
		&sess.ID,
		&sess.LessonID,
		&sess.Token,
		&sess.IssuedAt,
		&sess.ExpiresAt,
		&sess.Active,
	)

	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, storageErr(err)
	}

	return &sess, nil
}

func (s *PostgresStore) InsertRecordIfAbsent(
	ctx context.Context,
	rec Record,
) (Record, error) {

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records
			(session_id, lesson_id, student_id, recorded_at, origin_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		rec.SessionID,
		rec.LessonID,
		rec.StudentID,
		rec.RecordedAt,
		rec.OriginAddress,
	).Scan(&rec.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return Record{}, ErrDuplicateAttendance
		}
		return Record{}, storageErr(err)
	}

	return rec, nil
}

func (s *PostgresStore) ListRecordsByLesson(
	ctx context.Context,
	lessonID string,
) ([]Record, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, lesson_id, student_id, recorded_at, origin_address
		FROM attendance_records
		WHERE lesson_id = $1
		ORDER BY recorded_at DESC
	`, lessonID)

	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.LessonID,
			&rec.StudentID,
			&rec.RecordedAt,
			&rec.OriginAddress,
		)
		if err != nil {
			return nil, storageErr(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	return records, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
