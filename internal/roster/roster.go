package roster

import "context"

// Roster answers ownership and enrollment questions about lessons.
// The data belongs to the class-management service; this is the ONLY
// seam through which attendance reads it.
type Roster interface {
	// LessonOwner returns the teacher that owns the lesson, or
	// ok=false when the lesson does not exist.
	LessonOwner(ctx context.Context, lessonID string) (teacherID string, ok bool, err error)

	// IsEnrolled reports whether the student is enrolled in the lesson.
	IsEnrolled(ctx context.Context, lessonID, studentID string) (bool, error)
}
