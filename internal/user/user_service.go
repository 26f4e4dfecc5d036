package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abbie-leigh/hr-portal/internal/shared/contextutil"
	usererrors "github.com/abbie-leigh/hr-portal/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	optionsCacheKey = "users:options"
	optionsCacheTTL = time.Hour
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	GetByUsername(ctx context.Context, username string) (UserResponse, error)
	GetOptions(ctx context.Context) ([]UserOption, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("creating user", zap.String("username", req.Username))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	u := &User{
		ID:                 uuid.New(),
		Username:           req.Username,
		Password:           string(hashedPassword),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Role:               role,
		YearlyLeaveBalance: req.YearlyLeaveBalance,
		Salary:             req.Salary,
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		managerUUID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		u.ManagerID = &managerUUID
	}
	if req.Address != nil {
		u.Address = mergeAddress(Address{}, req.Address)
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (UserResponse, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// GetOptions serves the manager picker. Directory data moves slowly, so
// the list is cached in redis and concurrent misses collapse through
// singleflight.
func (s *service) GetOptions(ctx context.Context) ([]UserOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var options []UserOption
			if json.Unmarshal([]byte(cached), &options) == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]UserOption, len(users))
		for i, u := range users {
			options[i] = UserOption{
				ID:   u.ID.String(),
				Name: u.FirstName + " " + u.LastName,
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(options); err == nil {
				s.rdb.Set(ctx, optionsCacheKey, data, optionsCacheTTL)
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]UserOption), nil
}

// Update applies a shallow merge of the provided fields. The nested
// address does not deep-merge in storage, so it is merged key-by-key here
// before the row is written back.
func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.YearlyLeaveBalance != nil {
		u.YearlyLeaveBalance = *req.YearlyLeaveBalance
	}
	if req.Salary != nil {
		u.Salary = *req.Salary
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
		} else {
			managerUUID, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidManagerID
			}
			u.ManagerID = &managerUUID
		}
	}
	if req.Address != nil {
		u.Address = mergeAddress(u.Address, req.Address)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, optionsCacheKey)
}

// mergeAddress overlays only the keys present in the patch; untouched keys
// keep their stored values.
func mergeAddress(current Address, patch *AddressPatch) Address {
	if patch == nil {
		return current
	}
	if patch.AddressLine1 != nil {
		current.AddressLine1 = *patch.AddressLine1
	}
	if patch.AddressLine2 != nil {
		current.AddressLine2 = *patch.AddressLine2
	}
	if patch.City != nil {
		current.City = *patch.City
	}
	if patch.State != nil {
		current.State = *patch.State
	}
	if patch.ZipCode != nil {
		current.ZipCode = *patch.ZipCode
	}
	return current
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                 u.ID.String(),
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Role:               u.Role,
		YearlyLeaveBalance: u.YearlyLeaveBalance,
		Salary:             u.Salary,
		Address:            u.Address,
		CreatedAt:          u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
