package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	leaveerrors "github.com/abbie-leigh/hr-portal/internal/leave/errors"
	"github.com/abbie-leigh/hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func idempotencyKeys(employeeID string) (cacheKey, lockKey string) {
	cacheKey = fmt.Sprintf("idemp:%s:%s:abc-123", "/leave-requests", employeeID)
	return cacheKey, cacheKey + ":lock"
}

func postCreate(router *gin.Engine, body []byte, idempotencyKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerCreateCompletesIdempotencyContract(t *testing.T) {
	employeeID := uuid.New().String()
	requestID := uuid.New().String()
	resp := LeaveRequestResponse{
		ID:         requestID,
		EmployeeID: employeeID,
		TotalHours: 40,
		Status:     StatusPending,
	}
	payload, err := json.Marshal(resp)
	assert.NoError(t, err)

	calls := 0
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error) {
			calls++
			return resp, nil
		},
	}

	router := newTestRouter()
	rdb, mock := redismock.NewClientMock()
	handler := NewHandlerWithRedis(svc, rdb)
	router.POST("/leave-requests",
		func(c *gin.Context) { c.Set("user_id_validated", employeeID) },
		middleware.Idempotency(rdb),
		handler.Create,
	)

	cacheKey, lockKey := idempotencyKeys(employeeID)

	// First submission: miss, lock, execute, cache, release.
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	// Retry with the same key: replayed from cache, service untouched.
	mock.ExpectGet(cacheKey).SetVal(string(payload))

	body, _ := json.Marshal(CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})

	first := postCreate(router, body, "abc-123")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, calls)

	retry := postCreate(router, body, "abc-123")
	assert.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, 1, calls)

	var envelope apiEnvelope
	assert.NoError(t, json.Unmarshal(retry.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)

	var replayed LeaveRequestResponse
	assert.NoError(t, json.Unmarshal(envelope.Data, &replayed))
	assert.Equal(t, requestID, replayed.ID)
	assert.Equal(t, 40, replayed.TotalHours)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreateInFlightDuplicateConflicts(t *testing.T) {
	employeeID := uuid.New().String()
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error) {
			t.Fatal("service must not run while the lock is held elsewhere")
			return LeaveRequestResponse{}, nil
		},
	}

	router := newTestRouter()
	rdb, mock := redismock.NewClientMock()
	handler := NewHandlerWithRedis(svc, rdb)
	router.POST("/leave-requests",
		func(c *gin.Context) { c.Set("user_id_validated", employeeID) },
		middleware.Idempotency(rdb),
		handler.Create,
	)

	cacheKey, lockKey := idempotencyKeys(employeeID)

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

	body, _ := json.Marshal(CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})

	w := postCreate(router, body, "abc-123")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCreateReleasesLockOnFailure(t *testing.T) {
	employeeID := uuid.New().String()
	svc := &fakeLeaveService{
		createFn: func(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error) {
			return LeaveRequestResponse{}, leaveerrors.ErrEmptyRange
		},
	}

	router := newTestRouter()
	rdb, mock := redismock.NewClientMock()
	handler := NewHandlerWithRedis(svc, rdb)
	router.POST("/leave-requests",
		func(c *gin.Context) { c.Set("user_id_validated", employeeID) },
		middleware.Idempotency(rdb),
		handler.Create,
	)

	cacheKey, lockKey := idempotencyKeys(employeeID)

	// Failure path: nothing is cached, but the lock is still released so a
	// corrected retry is not stuck behind a 409 for the lock lifetime.
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	mock.ExpectDel(lockKey).SetVal(1)

	body, _ := json.Marshal(CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  "2026-03-06",
		EndDate:    "2026-03-02",
	})

	w := postCreate(router, body, "abc-123")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
