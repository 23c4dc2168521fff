package branch

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
	branchGroup := rg.Group("/branches")
	{
		branchGroup.GET("", h.List)
		branchGroup.POST("", h.Create)
		branchGroup.PUT("/:id", h.Update)
		branchGroup.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	branches, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid branch", fields)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"branch": created})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branch": updated})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Branch deleted"})
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNoSession):
		response.Error(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in")
	case errors.Is(err, ErrMainBranch):
		response.Error(c, http.StatusConflict, "MAIN_BRANCH", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}
