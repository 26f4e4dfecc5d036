package auth

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
	"github.com/abbie-leigh/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const accessCookieMaxAge = 15 * 60

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, accessCookieMaxAge, "/", "", false, true)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setAccessCookie(c, pair.AccessToken)
	response.Success(c, http.StatusOK, pair, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setAccessCookie(c, pair.AccessToken)
	response.Success(c, http.StatusOK, pair, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	session, err := h.service.Session(c.Request.Context(), c.GetString("user_id_validated"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session, nil)
}
