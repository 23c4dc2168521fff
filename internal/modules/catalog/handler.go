package catalog

import (
	"errors"
	"net/http"

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
	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/services", h.Services)
		catalogGroup.GET("/requests", h.Requests)
		catalogGroup.POST("/requests", h.CreateRequest)
		catalogGroup.PUT("/requests/:id", h.UpdateRequest)
		catalogGroup.DELETE("/requests/:id", h.WithdrawRequest)
	}
}

func (h *Handler) Services(c *gin.Context) {
	services, err := h.service.Services(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) Requests(c *gin.Context) {
	requests, err := h.service.Requests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var body ServiceRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if fields := validator.Validate(body); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service request", fields)
		return
	}

	created, err := h.service.CreateRequest(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": created})
}

func (h *Handler) UpdateRequest(c *gin.Context) {
	var body ServiceRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.UpdateRequest(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": updated})
}

func (h *Handler) WithdrawRequest(c *gin.Context) {
	if err := h.service.WithdrawRequest(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Request withdrawn"})
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNoSession):
		response.Error(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in")
	case errors.Is(err, ErrRequestNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", err.Error())
	default:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}
