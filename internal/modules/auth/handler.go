package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sessionauth "merchantdesk/internal/auth"
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
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/sign-in", h.SignIn)
		authGroup.POST("/sign-out", h.SignOut)
		authGroup.GET("/session", h.Session)
	}
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sign-in request", fields)
		return
	}

	identity, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		case errors.Is(err, ErrWrongRole):
			response.Error(c, http.StatusForbidden, "WRONG_ROLE", err.Error())
		default:
			response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": ToSessionResponse(identity)})
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, "SIGN_OUT_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *Handler) Session(c *gin.Context) {
	identity, err := h.service.Current()
	if err != nil {
		if errors.Is(err, sessionauth.ErrNoSession) {
			response.Error(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SESSION_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": ToSessionResponse(identity)})
}
