package leave

import (
	"context"
	"database/sql"

	"github.com/abbie-leigh/hr-portal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	FindAll(ctx context.Context) ([]Request, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, r *Request) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Delete removes the row outright regardless of status; cancellation is
// deletion, not a status.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Request{}, "id = ?", id).Error
}
