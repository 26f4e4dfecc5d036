package role

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, role *Role) error
	FindAll(ctx context.Context) ([]Role, error)
	FindByID(ctx context.Context, id string) (*Role, error)
	Update(ctx context.Context, role *Role) error
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

func (r *repository) Create(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&roles).Error
	return roles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	return &role, err
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Role{}, "id = ?", id).Error
}
