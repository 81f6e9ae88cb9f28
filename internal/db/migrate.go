package db

import (
	"context"
	"database/sql"
)

// The unique indexes below carry the two correctness invariants:
// at most one active session per lesson, and at most one attendance
// record per (lesson, student). Inserts rely on the database rejecting
// violations rather than on read-then-write checks.
//
// lessons and enrollments are owned by the class-management service;
// they are created here only so a fresh database can serve ownership
// and enrollment lookups.
const keystoneMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS lessons (
    id text PRIMARY KEY,
    teacher_id text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS enrollments (
    lesson_id text NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
    student_id text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT enrollments_lesson_student_unique
        UNIQUE (lesson_id, student_id)
);

CREATE TABLE IF NOT EXISTS attendance_sessions (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    lesson_id text NOT NULL,
    token text NOT NULL,
    issued_at timestamptz NOT NULL,
    expires_at timestamptz NOT NULL,
    active boolean NOT NULL DEFAULT true
);

CREATE UNIQUE INDEX IF NOT EXISTS attendance_sessions_token_unique
ON attendance_sessions (token);

CREATE UNIQUE INDEX IF NOT EXISTS attendance_sessions_one_active
ON attendance_sessions (lesson_id) WHERE active;

CREATE TABLE IF NOT EXISTS attendance_records (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    session_id uuid NOT NULL REFERENCES attendance_sessions(id),
    lesson_id text NOT NULL,
    student_id text NOT NULL,
    recorded_at timestamptz NOT NULL,
    origin_address text NOT NULL DEFAULT '',
    CONSTRAINT attendance_records_lesson_student_unique
        UNIQUE (lesson_id, student_id)
);

CREATE INDEX IF NOT EXISTS attendance_records_lesson_id_idx
ON attendance_records (lesson_id);
`

func RunKeystoneMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, keystoneMigration)
	return err
}
