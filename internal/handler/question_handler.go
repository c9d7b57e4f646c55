package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/service"
)

const publicQuestionLimit = 100

// QuestionHandler handles question listing endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	snapshot        *corpus.Snapshot
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, snapshot *corpus.Snapshot) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		snapshot:        snapshot,
	}
}

// ListByTopic godoc
// GET /api/v1/questions/:topic
// Lists study questions for a topic, answers and explanations included.
func (h *QuestionHandler) ListByTopic(c *gin.Context) {
	topic := c.Param("topic")

	questions := h.questionService.ListByTopic(c.Request.Context(), topic)
	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

// ListClinical godoc
// GET /api/v1/questions/:topic/clinical
// Lists clinical scenario questions for a topic. An empty list is a normal
// outcome here; not every topic carries scenarios.
func (h *QuestionHandler) ListClinical(c *gin.Context) {
	topic := c.Param("topic")

	questions := h.questionService.ListClinicalByTopic(c.Request.Context(), topic)
	response.Success(c, http.StatusOK, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}

// PublicQuestions godoc
// GET /api/v1/public/nursing-questions
// Unauthenticated sample of the question bank with answers stripped.
// Query params: topic (substring filter, optional), limit (max 100).
func (h *QuestionHandler) PublicQuestions(c *gin.Context) {
	topic := c.Query("topic")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > publicQuestionLimit {
		limit = publicQuestionLimit
	}

	sample := corpus.Sample(h.snapshot.ByTopic(topic), limit)

	redacted := make([]corpus.QuestionRecord, 0, len(sample))
	for _, q := range sample {
		redacted = append(redacted, q.Redacted())
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": redacted,
		"count":     len(redacted),
	})
}
