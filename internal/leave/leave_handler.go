package leave

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
	"github.com/abbie-leigh/hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, nil, logger...)
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	// Counterpart of the Idempotency middleware: the in-flight lock is
	// always released, and a successful response is cached so a retry
	// with the same key replays instead of resubmitting.
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave request validation failed", zap.Error(err))
		appErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Preview returns the frozen-hours figure and the clamped hypothetical
// balance for a candidate range. Nothing is persisted.
func (h *Handler) Preview(c *gin.Context) {
	employeeID := c.GetString("user_id_validated")

	resp, err := h.service.Preview(
		c.Request.Context(),
		employeeID,
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Summary is the employee dashboard: allotment, approved-only used hours,
// remaining balance and the request history, most recent first.
func (h *Handler) Summary(c *gin.Context) {
	employeeID := c.GetString("user_id_validated")

	resp, err := h.service.EmployeeSummary(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	employeeID := c.GetString("user_id_validated")

	resp, err := h.service.GetForEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ReviewQueue is the HR view with pending/resolved buckets and the
// provisional remaining column.
func (h *Handler) ReviewQueue(c *gin.Context) {
	resp, err := h.service.ReviewQueue(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resolve(c *gin.Context) {
	id := c.Param("id")

	var req ResolveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http resolve leave request validation failed", zap.Error(err))
		appErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}

	resp, err := h.service.Resolve(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
