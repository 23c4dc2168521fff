package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/pkg/response"
	"merchantdesk/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/conversations", h.Conversations)
		chatGroup.GET("/conversations/:id/messages", h.Messages)
		chatGroup.POST("/conversations/:id/messages", h.Send)
		chatGroup.POST("/conversations/:id/typing", h.Typing)
		chatGroup.POST("/conversations/:id/read", h.MarkRead)
		chatGroup.POST("/conversations/:id/join", h.Join)
		chatGroup.POST("/conversations/:id/leave", h.Leave)
	}
}

func (h *Handler) Conversations(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	conversations, err := h.service.Conversations(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": conversations})
}

func (h *Handler) Messages(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	page, err := h.service.Messages(c.Request.Context(), c.Param("id"), limit, c.Query("before_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Send(c *gin.Context) {
	var body SendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if fields := validator.Validate(body); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid message", fields)
		return
	}

	msg, err := h.service.Send(c.Request.Context(), c.Param("id"), body.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) Typing(c *gin.Context) {
	if err := h.service.Typing(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Typing recorded"})
}

func (h *Handler) MarkRead(c *gin.Context) {
	updated, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) Join(c *gin.Context) {
	if err := h.service.Join(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Joined conversation"})
}

func (h *Handler) Leave(c *gin.Context) {
	if err := h.service.Leave(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Left conversation"})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNoSession):
		response.Error(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in")
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}
