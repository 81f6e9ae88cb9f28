package attendance

import "errors"

var (
	// ErrUnauthorized is returned when the requester is not the
	// lesson's owning teacher.
	ErrUnauthorized = errors.New("attendance: not authorized for this lesson")

	// ErrLessonNotFound is returned when the lesson does not exist.
	ErrLessonNotFound = errors.New("attendance: lesson not found")

	// ErrInvalidOrExpiredToken covers unknown, superseded and expired
	// tokens alike. The cases are deliberately indistinguishable so a
	// caller cannot probe which tokens ever existed.
	ErrInvalidOrExpiredToken = errors.New("attendance: invalid or expired token")

	// ErrNotEnrolled is returned when the student is not enrolled in
	// the lesson the token belongs to.
	ErrNotEnrolled = errors.New("attendance: student not enrolled in this lesson")

	// ErrDuplicateAttendance is returned when the student already has
	// a record for the lesson.
	ErrDuplicateAttendance = errors.New("attendance: already recorded for this lesson")

	// ErrStorageUnavailable wraps backend failures. Never retried
	// internally; callers decide on retry policy.
	ErrStorageUnavailable = errors.New("attendance: storage unavailable")
)
