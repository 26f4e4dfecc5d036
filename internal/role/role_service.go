package role

import (
	"context"
	"errors"

	roleerrors "github.com/abbie-leigh/hr-portal/internal/role/errors"
	"github.com/abbie-leigh/hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetAll(ctx context.Context) ([]RoleResponse, error)
	GetByID(ctx context.Context, id string) (RoleResponse, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		l.Error("create role failed", zap.String("name", req.Name), zap.Error(err))
		return RoleResponse{}, mapStorageError(err)
	}

	return mapToResponse(*role), nil
}

func (s *service) GetAll(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RoleResponse, len(roles))
	for i, role := range roles {
		resp[i] = mapToResponse(role)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RoleResponse{}, roleerrors.ErrInvalidRoleID
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapStorageError(err)
	}
	return mapToResponse(*role), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RoleResponse{}, roleerrors.ErrInvalidRoleID
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapStorageError(err)
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return RoleResponse{}, mapStorageError(err)
	}
	return mapToResponse(*role), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return roleerrors.ErrInvalidRoleID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func mapStorageError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return roleerrors.ErrRoleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return roleerrors.ErrRoleNameTaken
	}

	return err
}

func mapToResponse(role Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
