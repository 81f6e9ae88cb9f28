package roster

import (
	"context"
	"database/sql"

	"attendance-service/internal/db"
)

// DBRoster reads the class-management tables directly. It never
// writes them.
type DBRoster struct {
	db *db.DB
}

func NewDBRoster(db *db.DB) *DBRoster {
	return &DBRoster{db: db}
}

func (r *DBRoster) LessonOwner(
	ctx context.Context,
	lessonID string,
) (string, bool, error) {

	var teacherID string

	err := r.db.QueryRowContext(ctx, `
		SELECT teacher_id FROM lessons
		WHERE id = $1
	`, lessonID).Scan(&teacherID)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return teacherID, true, nil
}

func (r *DBRoster) IsEnrolled(
	ctx context.Context,
	lessonID string,
	studentID string,
) (bool, error) {

	var enrolled bool

	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE lesson_id = $1 AND student_id = $2
		)
	`, lessonID, studentID).Scan(&enrolled)

	if err != nil {
		return false, err
	}

	return enrolled, nil
}
