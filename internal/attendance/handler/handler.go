package handler

import (
	"errors"
	"net/http"
	"time"

	"attendance-service/internal/attendance"
	"attendance-service/internal/logger"
	"attendance-service/internal/middleware"
	"attendance-service/internal/roster"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	issuer   *attendance.Issuer
	verifier *attendance.Verifier
	store    attendance.Store
	roster   roster.Roster
}

func NewHandler(
	issuer *attendance.Issuer,
	verifier *attendance.Verifier,
	store attendance.Store,
	roster roster.Roster,
) *Handler {
	return &Handler{
		issuer:   issuer,
		verifier: verifier,
		store:    store,
		roster:   roster,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/lessons/:id/attendance-session", h.issueSession)
	r.POST("/attendance/scans", h.scan)
	r.GET("/lessons/:id/attendance", h.listAttendance)
}

func (h *Handler) issueSession(c *gin.Context) {
	userID, role, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lessonID := c.Param("id")

	issued, err := h.issuer.IssueSession(
		c.Request.Context(),
		lessonID,
		userID,
		role,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      issued.Token,
		"expires_at": issued.ExpiresAt.Format(time.RFC3339),
	})
}

type scanRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *Handler) scan(c *gin.Context) {
	userID, _, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rec, err := h.verifier.RecordAttendance(
		c.Request.Context(),
		req.Token,
		userID,
		c.ClientIP(),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "attendance recorded",
		"recorded_at": rec.RecordedAt.Format(time.RFC3339),
	})
}

func (h *Handler) listAttendance(c *gin.Context) {
	userID, role, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lessonID := c.Param("id")

	ownerID, found, err := h.roster.LessonOwner(c.Request.Context(), lessonID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	if role != attendance.RoleTeacher || ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this lesson"})
		return
	}

	records, err := h.store.ListRecordsByLesson(c.Request.Context(), lessonID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		out = append(out, gin.H{
			"student_id":  rec.StudentID,
			"recorded_at": rec.RecordedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance_count": len(out),
		"attendance":       out,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this lesson"})
	case errors.Is(err, attendance.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
	case errors.Is(err, attendance.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid or expired QR code"})
	case errors.Is(err, attendance.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled in this class"})
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "attendance already recorded for this lesson"})
	default:
		logger.Error("attendance request failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
