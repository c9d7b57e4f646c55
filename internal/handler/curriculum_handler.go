package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/service"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/kingsbal/kingsbal-backend/internal/validator"
)

// CurriculumHandler handles topic catalogue endpoints.
type CurriculumHandler struct {
	curriculumService *service.CurriculumService
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(curriculumService *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService}
}

// ListTopics godoc
// GET /api/v1/topics
// Lists the topic catalogue, optionally filtered by ?category=.
func (h *CurriculumHandler) ListTopics(c *gin.Context) {
	var (
		topics []model.Topic
		err    error
	)

	if category := c.Query("category"); category != "" {
		topics, err = h.curriculumService.GetTopicsByCategory(c.Request.Context(), category)
	} else {
		topics, err = h.curriculumService.GetTopics(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"topics": topics})
}

// GetTopic godoc
// GET /api/v1/topics/:id
func (h *CurriculumHandler) GetTopic(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	topic, err := h.curriculumService.GetTopic(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if topic == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, topic)
}

// CreateTopic godoc
// POST /api/v1/admin/topics
// Creates a topic. Requires a persistent store; without one there is no
// durable home for the row and the request is rejected.
func (h *CurriculumHandler) CreateTopic(c *gin.Context) {
	var req model.CreateTopicRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	topic := &model.Topic{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
	}

	if err := h.curriculumService.CreateTopic(c.Request.Context(), topic); err != nil {
		if errors.Is(err, storage.ErrNotPersistent) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, topic)
}
