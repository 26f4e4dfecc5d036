package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/abbie-leigh/hr-portal/internal/events"
	leaveerrors "github.com/abbie-leigh/hr-portal/internal/leave/errors"
	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka"
	"github.com/abbie-leigh/hr-portal/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

const summaryCacheTTL = 5 * time.Minute

// SummaryCacheKey is shared with the lifecycle consumer so resolutions
// published by other instances also invalidate the dashboard figure.
func SummaryCacheKey(employeeID string) string {
	return "leave:summary:" + employeeID
}

type EmployeeProfile struct {
	Name      string
	Allotment int
}

// EmployeeDirectory is the read-only slice of the user directory this
// module needs: who an employee is and their yearly allotment.
type EmployeeDirectory interface {
	Profile(ctx context.Context, employeeID string) (EmployeeProfile, error)
	Profiles(ctx context.Context) (map[string]EmployeeProfile, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Preview(ctx context.Context, employeeID, startDate, endDate string) (PreviewResponse, error)
	GetForEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	EmployeeSummary(ctx context.Context, employeeID string) (EmployeeSummaryResponse, error)
	ReviewQueue(ctx context.Context) (ReviewQueueResponse, error)
	Resolve(ctx context.Context, id, decision string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, directory, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

// Create validates locally before touching storage: blank or unparseable
// dates, or a range with no business hours (which covers start after end),
// never reach the database.
func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if req.StartDate == "" || req.EndDate == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrMissingDates
	}

	start, startOK := dateutil.ParseLocalDate(req.StartDate)
	end, endOK := dateutil.ParseLocalDate(req.EndDate)
	if !startOK || !endOK {
		return LeaveRequestResponse{}, leaveerrors.ErrMissingDates
	}

	totalHours := dateutil.BusinessHoursBetween(start, end)
	if totalHours <= 0 {
		s.logger.Warn("create leave request rejected, empty range",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrEmptyRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request := &Request{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		StartDate:  toStoredDate(start),
		EndDate:    toStoredDate(end),
		TotalHours: totalHours,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.writeOutboxEvent(ctx, tx, events.LeaveRequested, request); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateSummary(ctx, req.EmployeeID)
	s.logger.Info("create leave request success",
		zap.String("request_id", request.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_hours", totalHours),
	)

	return mapToResponse(*request), nil
}

// Preview computes the clamped post-submission balance an employee would
// see after requesting the given range. Nothing is persisted.
func (s *service) Preview(ctx context.Context, employeeID, startDate, endDate string) (PreviewResponse, error) {
	profile, err := s.directory.Profile(ctx, employeeID)
	if err != nil {
		return PreviewResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return PreviewResponse{}, err
	}

	remaining := RemainingBalance(profile.Allotment, ApprovedHours(requests))
	totalHours := dateutil.CalculateBusinessHours(startDate, endDate)

	return PreviewResponse{
		TotalHours:     totalHours,
		UpdatedBalance: PreviewBalance(remaining, totalHours),
	}, nil
}

func (s *service) GetForEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(SortByStartDateDesc(requests)), nil
}

// EmployeeSummary is the dashboard figure: allotment, approved-only used
// hours and the remaining balance, with the employee's requests most recent
// first.
func (s *service) EmployeeSummary(ctx context.Context, employeeID string) (EmployeeSummaryResponse, error) {
	cacheKey := SummaryCacheKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp EmployeeSummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	profile, err := s.directory.Profile(ctx, employeeID)
	if err != nil {
		return EmployeeSummaryResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeSummaryResponse{}, err
	}

	used := ApprovedHours(requests)
	resp := EmployeeSummaryResponse{
		EmployeeID:         employeeID,
		YearlyLeaveBalance: profile.Allotment,
		UsedHours:          used,
		RemainingBalance:   RemainingBalance(profile.Allotment, used),
		Requests:           mapToListResponse(SortByStartDateDesc(requests)),
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, data, summaryCacheTTL)
		}
	}

	return resp, nil
}

// ReviewQueue is the HR view: every request split into pending and
// resolved, with the remaining column computed from pending+approved
// exposure rather than approved-only consumption.
func (s *service) ReviewQueue(ctx context.Context) (ReviewQueueResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return ReviewQueueResponse{}, err
	}

	profiles, err := s.directory.Profiles(ctx)
	if err != nil {
		return ReviewQueueResponse{}, err
	}

	exposure := CommittedHoursByEmployee(requests)
	pending, resolved := SplitByPending(requests)

	return ReviewQueueResponse{
		Pending:  mapToQueueItems(pending, profiles, exposure),
		Resolved: mapToQueueItems(resolved, profiles, exposure),
	}, nil
}

// Resolve records an HR decision. The storage layer does not forbid
// resolving an already-resolved request; routes only surface this action
// for pending items, and whether stricter enforcement belongs here is an
// open product question.
func (s *service) Resolve(ctx context.Context, id, decision string) (LeaveRequestResponse, error) {
	decision = strings.ToLower(decision)
	if decision != StatusApproved && decision != StatusDenied {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	request.Status = decision
	if err := qtx.Update(ctx, request); err != nil {
		s.logger.Error("resolve leave request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if err := s.writeOutboxEvent(ctx, tx, events.LeaveResolved, request); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve leave request commit failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.invalidateSummary(ctx, request.EmployeeID.String())
	s.logger.Info("resolve leave request success",
		zap.String("request_id", id),
		zap.String("status", decision),
	)

	return mapToResponse(*request), nil
}

// Cancel deletes the request unconditionally by id; there is no status
// guard here. The UI only offers it for the requester's own pending items.
func (s *service) Cancel(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveRequestNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("cancel leave request delete failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.writeOutboxEvent(ctx, tx, events.LeaveCancelled, request); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateSummary(ctx, request.EmployeeID.String())
	s.logger.Info("cancel leave request success", zap.String("request_id", id))
	return nil
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, request *Request) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveLifecycleEvent{
		EventType:  eventType,
		RequestID:  request.ID.String(),
		EmployeeID: request.EmployeeID.String(),
		Status:     request.Status,
		TotalHours: request.TotalHours,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("write outbox event failed",
			zap.String("event_type", eventType),
			zap.String("request_id", request.ID.String()),
			zap.Error(err),
		)
	}
	return err
}

func (s *service) invalidateSummary(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, SummaryCacheKey(employeeID))
}

func toStoredDate(d dateutil.CalendarDate) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func mapToResponse(r Request) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		StartDate:  dateutil.FromTime(r.StartDate.UTC()).ISOString(),
		EndDate:    dateutil.FromTime(r.EndDate.UTC()).ISOString(),
		TotalHours: r.TotalHours,
		Status:     r.Status,
	}
}

func mapToListResponse(requests []Request) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapToQueueItems(requests []Request, profiles map[string]EmployeeProfile, exposure map[string]int) []ReviewQueueItem {
	items := make([]ReviewQueueItem, len(requests))
	for i, r := range requests {
		item := ReviewQueueItem{LeaveRequestResponse: mapToResponse(r)}

		employeeID := r.EmployeeID.String()
		if profile, ok := profiles[employeeID]; ok {
			item.EmployeeName = profile.Name
			remaining := RemainingBalance(profile.Allotment, exposure[employeeID])
			item.RemainingHours = &remaining
		}

		items[i] = item
	}
	return items
}
