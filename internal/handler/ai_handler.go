package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/ai"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/validator"
)

// AIHandler handles AI-assisted authoring endpoints.
type AIHandler struct {
	generator *ai.Generator
}

// NewAIHandler creates a new AIHandler. The generator may be nil when no
// API key is configured; the route then reports generation as unavailable.
func NewAIHandler(generator *ai.Generator) *AIHandler {
	return &AIHandler{generator: generator}
}

// GenerateQuestion godoc
// POST /api/v1/admin/questions/generate
// Drafts one exam question for review. The draft is returned, not stored;
// an admin vets it before it reaches the question bank.
func (h *AIHandler) GenerateQuestion(c *gin.Context) {
	if h.generator == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrGenerationFailed)
		return
	}

	var req model.GenerateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if req.Type == "" {
		req.Type = "mcq"
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	question := h.generator.GenerateQuestion(c.Request.Context(), req.Topic, req.Type, req.Difficulty)
	response.Success(c, http.StatusOK, question)
}
