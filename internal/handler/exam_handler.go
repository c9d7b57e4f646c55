package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/middleware"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/service"
	"github.com/kingsbal/kingsbal-backend/internal/validator"
)

// ExamHandler handles CBT session endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// StartExam godoc
// POST /api/v1/exams/start
// Assembles a timed question session for a topic. Falls back to the bundled
// corpus when the topic has no stored questions, so a session is returned
// whenever any questions exist at all.
func (h *ExamHandler) StartExam(c *gin.Context) {
	var req model.StartExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.examService.StartSession(c.Request.Context(), req.TopicID, req.RequestedCount)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// SubmitExam godoc
// POST /api/v1/exams/submit
// Scores a finished session and returns the result immediately. Persisting
// the result happens after scoring and never fails the response.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	userID := ""
	if claims := middleware.GetClaims(c); claims != nil {
		userID = claims.UserID
	}

	result, err := h.examService.SubmitSession(c.Request.Context(), userID, req.ExamID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidSubmission)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}
