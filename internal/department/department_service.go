package department

import (
	"context"
	"errors"

	departmenterrors "github.com/abbie-leigh/hr-portal/internal/department/errors"
	"github.com/abbie-leigh/hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ManagerID != nil && *req.ManagerID != "" {
		managerUUID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
		}
		d.ManagerID = &managerUUID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		l.Error("create department failed", zap.String("name", req.Name), zap.Error(err))
		return DepartmentResponse{}, mapStorageError(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapStorageError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapStorageError(err)
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			d.ManagerID = nil
		} else {
			managerUUID, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
			}
			d.ManagerID = &managerUUID
		}
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return DepartmentResponse{}, mapStorageError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func mapStorageError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return departmenterrors.ErrDepartmentNameTaken
	}

	return err
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if d.ManagerID != nil {
		v := d.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
