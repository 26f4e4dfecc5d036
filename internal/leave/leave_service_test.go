package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	leaveerrors "github.com/abbie-leigh/hr-portal/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn         func(ctx context.Context, r *Request) error
	findAllFn        func(ctx context.Context) ([]Request, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]Request, error)
	findByIDFn       func(ctx context.Context, id string) (*Request, error)
	updateFn         func(ctx context.Context, r *Request) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, r *Request) error {
	return f.createFn(ctx, r)
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]Request, error) {
	return f.findAllFn(ctx)
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*Request, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeLeaveRepository) Update(ctx context.Context, r *Request) error {
	return f.updateFn(ctx, r)
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeDirectory struct {
	profiles map[string]EmployeeProfile
}

func (f *fakeDirectory) Profile(ctx context.Context, employeeID string) (EmployeeProfile, error) {
	profile, ok := f.profiles[employeeID]
	if !ok {
		return EmployeeProfile{}, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (f *fakeDirectory) Profiles(ctx context.Context) (map[string]EmployeeProfile, error) {
	return f.profiles, nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreateFreezesHoursAndStartsPending(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	employeeID := uuid.New()
	var stored *Request
	repo := &fakeLeaveRepository{
		createFn: func(ctx context.Context, r *Request) error {
			stored = r
			return nil
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	// Monday through Friday.
	resp, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: employeeID.String(),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, 40, stored.TotalHours)
	assert.Equal(t, 40, resp.TotalHours)
	assert.Equal(t, StatusPending, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSpanningWeekendSkipsWeekendDays(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeLeaveRepository{
		createFn: func(ctx context.Context, r *Request) error { return nil },
	}
	svc := NewService(db, repo, &fakeDirectory{})

	// Monday through the following Monday: six weekdays.
	resp, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.New().String(),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-09",
	})

	assert.NoError(t, err)
	assert.Equal(t, 48, resp.TotalHours)
}

func TestCreateRejectsReversedRangeBeforeStorage(t *testing.T) {
	db, mock := newMockDB(t)
	// No expectations: an invalid range must never open a transaction.

	repo := &fakeLeaveRepository{
		createFn: func(ctx context.Context, r *Request) error {
			t.Fatal("repository must not be called for a reversed range")
			return nil
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	_, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.New().String(),
		StartDate:  "2026-03-06",
		EndDate:    "2026-03-02",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrEmptyRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsWeekendOnlyRange(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, &fakeLeaveRepository{}, &fakeDirectory{})

	_, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: uuid.New().String(),
		StartDate:  "2026-03-07",
		EndDate:    "2026-03-08",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrEmptyRange)
}

func TestCreateRejectsBlankAndMalformedDates(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, &fakeLeaveRepository{}, &fakeDirectory{})

	cases := []struct {
		name       string
		start, end string
	}{
		{"blank start", "", "2026-03-06"},
		{"blank end", "2026-03-02", ""},
		{"zero component", "2026-00-02", "2026-03-06"},
		{"malformed", "not-a-date", "2026-03-06"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateLeaveRequest{
				EmployeeID: uuid.New().String(),
				StartDate:  tc.start,
				EndDate:    tc.end,
			})
			assert.ErrorIs(t, err, leaveerrors.ErrMissingDates)
		})
	}
}

func TestCreateRejectsMalformedEmployeeID(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, &fakeLeaveRepository{}, &fakeDirectory{})

	_, err := svc.Create(context.Background(), CreateLeaveRequest{
		EmployeeID: "not-a-uuid",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
}

func TestResolveNormalizesDecisionCase(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	id := uuid.New()
	var saved *Request
	repo := &fakeLeaveRepository{
		findByIDFn: func(ctx context.Context, lookupID string) (*Request, error) {
			return &Request{ID: id, EmployeeID: uuid.New(), Status: StatusPending, TotalHours: 16}, nil
		},
		updateFn: func(ctx context.Context, r *Request) error {
			saved = r
			return nil
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	resp, err := svc.Resolve(context.Background(), id.String(), "APPROVED")

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, saved.Status)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, 16, resp.TotalHours)
}

func TestResolveRejectsUnknownDecision(t *testing.T) {
	db, mock := newMockDB(t)
	// Decision is validated before any transaction opens.

	svc := NewService(db, &fakeLeaveRepository{}, &fakeDirectory{})

	_, err := svc.Resolve(context.Background(), uuid.New().String(), "maybe")

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveMissingRequest(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeLeaveRepository{
		findByIDFn: func(ctx context.Context, id string) (*Request, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	_, err := svc.Resolve(context.Background(), uuid.New().String(), "denied")

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelDeletesExactlyThatRequest(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	id := uuid.New()
	var deletedID string
	repo := &fakeLeaveRepository{
		findByIDFn: func(ctx context.Context, lookupID string) (*Request, error) {
			return &Request{ID: id, EmployeeID: uuid.New(), Status: StatusApproved}, nil
		},
		deleteFn: func(ctx context.Context, deleteID string) error {
			deletedID = deleteID
			return nil
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	err := svc.Cancel(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, id.String(), deletedID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelMissingRequest(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeLeaveRepository{
		findByIDFn: func(ctx context.Context, id string) (*Request, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, &fakeDirectory{})

	err := svc.Cancel(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveRequestNotFound)
}

func TestPreviewUsesApprovedOnlyConsumption(t *testing.T) {
	db, _ := newMockDB(t)

	employeeID := uuid.New()
	repo := &fakeLeaveRepository{
		findByEmployeeFn: func(ctx context.Context, id string) ([]Request, error) {
			return []Request{
				{EmployeeID: employeeID, Status: StatusApproved, TotalHours: 16},
				{EmployeeID: employeeID, Status: StatusPending, TotalHours: 8},
			}, nil
		},
	}
	directory := &fakeDirectory{profiles: map[string]EmployeeProfile{
		employeeID.String(): {Name: "Marisol Reyes", Allotment: 160},
	}}
	svc := NewService(db, repo, directory)

	resp, err := svc.Preview(context.Background(), employeeID.String(), "2026-03-02", "2026-03-06")

	assert.NoError(t, err)
	assert.Equal(t, 40, resp.TotalHours)
	// 160 allotted, 16 approved, 40 requested; the pending 8 is ignored.
	assert.Equal(t, 104, resp.UpdatedBalance)
}

func TestPreviewDegradesBadRangeToZeroHours(t *testing.T) {
	db, _ := newMockDB(t)

	employeeID := uuid.New()
	repo := &fakeLeaveRepository{
		findByEmployeeFn: func(ctx context.Context, id string) ([]Request, error) {
			return nil, nil
		},
	}
	directory := &fakeDirectory{profiles: map[string]EmployeeProfile{
		employeeID.String(): {Allotment: 160},
	}}
	svc := NewService(db, repo, directory)

	resp, err := svc.Preview(context.Background(), employeeID.String(), "2026-03-06", "2026-03-02")

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.TotalHours)
	assert.Equal(t, 160, resp.UpdatedBalance)
}

func TestPreviewUnknownEmployee(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService(db, &fakeLeaveRepository{}, &fakeDirectory{})

	_, err := svc.Preview(context.Background(), uuid.New().String(), "2026-03-02", "2026-03-06")

	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
}

func TestEmployeeSummaryComputesDashboardFigures(t *testing.T) {
	db, _ := newMockDB(t)

	employeeID := uuid.New()
	repo := &fakeLeaveRepository{
		findByEmployeeFn: func(ctx context.Context, id string) ([]Request, error) {
			return []Request{
				{ID: uuid.New(), EmployeeID: employeeID, Status: StatusApproved, TotalHours: 16, StartDate: day(2026, time.March, 2), EndDate: day(2026, time.March, 3)},
				{ID: uuid.New(), EmployeeID: employeeID, Status: StatusPending, TotalHours: 8, StartDate: day(2026, time.March, 9), EndDate: day(2026, time.March, 9)},
				{ID: uuid.New(), EmployeeID: employeeID, Status: StatusDenied, TotalHours: 40, StartDate: day(2026, time.February, 2), EndDate: day(2026, time.February, 6)},
			}, nil
		},
	}
	directory := &fakeDirectory{profiles: map[string]EmployeeProfile{
		employeeID.String(): {Name: "Marisol Reyes", Allotment: 160},
	}}
	svc := NewService(db, repo, directory)

	resp, err := svc.EmployeeSummary(context.Background(), employeeID.String())

	assert.NoError(t, err)
	assert.Equal(t, 160, resp.YearlyLeaveBalance)
	assert.Equal(t, 16, resp.UsedHours)
	assert.Equal(t, 144, resp.RemainingBalance)
	if assert.Len(t, resp.Requests, 3) {
		// Most recent start date first.
		assert.Equal(t, 8, resp.Requests[0].TotalHours)
		assert.Equal(t, 40, resp.Requests[2].TotalHours)
	}
}

func TestReviewQueueSplitsAndAnnotates(t *testing.T) {
	db, _ := newMockDB(t)

	alice := uuid.New()
	bob := uuid.New()
	repo := &fakeLeaveRepository{
		findAllFn: func(ctx context.Context) ([]Request, error) {
			return []Request{
				{ID: uuid.New(), EmployeeID: alice, Status: StatusPending, TotalHours: 8},
				{ID: uuid.New(), EmployeeID: alice, Status: StatusApproved, TotalHours: 16},
				{ID: uuid.New(), EmployeeID: bob, Status: StatusDenied, TotalHours: 24},
			}, nil
		},
	}
	directory := &fakeDirectory{profiles: map[string]EmployeeProfile{
		alice.String(): {Name: "Alice Zhang", Allotment: 160},
		bob.String():   {Name: "Bob Osei", Allotment: 80},
	}}
	svc := NewService(db, repo, directory)

	resp, err := svc.ReviewQueue(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, resp.Pending, 1) {
		assert.Equal(t, "Alice Zhang", resp.Pending[0].EmployeeName)
		// 160 - (8 pending + 16 approved)
		if assert.NotNil(t, resp.Pending[0].RemainingHours) {
			assert.Equal(t, 136, *resp.Pending[0].RemainingHours)
		}
	}
	if assert.Len(t, resp.Resolved, 2) {
		for _, item := range resp.Resolved {
			if item.EmployeeName == "Bob Osei" {
				// Denied hours reserve nothing.
				if assert.NotNil(t, item.RemainingHours) {
					assert.Equal(t, 80, *item.RemainingHours)
				}
			}
		}
	}
}
