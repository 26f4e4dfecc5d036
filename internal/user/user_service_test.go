package user

import (
	"context"
	"database/sql"
	"testing"

	usererrors "github.com/abbie-leigh/hr-portal/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn         func(ctx context.Context, u *User) error
	findAllFn        func(ctx context.Context) ([]User, error)
	findByIDFn       func(ctx context.Context, id string) (*User, error)
	findByUsernameFn func(ctx context.Context, username string) (*User, error)
	updateFn         func(ctx context.Context, u *User) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *User) error {
	return f.createFn(ctx, u)
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]User, error) {
	return f.findAllFn(ctx)
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return f.findByUsernameFn(ctx, username)
}

func (f *fakeUserRepository) Update(ctx context.Context, u *User) error {
	return f.updateFn(ctx, u)
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func strPtr(s string) *string { return &s }

func TestCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	var stored *User
	repo := &fakeUserRepository{
		createFn: func(ctx context.Context, u *User) error {
			stored = u
			return nil
		},
	}
	svc := NewService(repo, nil)

	resp, err := svc.Create(context.Background(), CreateUserRequest{
		Username:           "mreyes",
		Password:           "hunter2hunter2",
		FirstName:          "Marisol",
		LastName:           "Reyes",
		Email:              "marisol.reyes@example.com",
		YearlyLeaveBalance: 160,
	})

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, RoleEmployee, stored.Role)
	assert.NotEqual(t, "hunter2hunter2", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")))
	assert.Equal(t, "mreyes", resp.Username)
	assert.Equal(t, 160, resp.YearlyLeaveBalance)
}

func TestCreateMapsUniqueViolationToUsernameTaken(t *testing.T) {
	repo := &fakeUserRepository{
		createFn: func(ctx context.Context, u *User) error {
			return usererrors.ErrUsernameTaken
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username:  "mreyes",
		Password:  "hunter2hunter2",
		FirstName: "Marisol",
		LastName:  "Reyes",
		Email:     "marisol.reyes@example.com",
	})

	assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	id := uuid.New()
	existing := User{
		ID:        id,
		Username:  "mreyes",
		FirstName: "Marisol",
		LastName:  "Reyes",
		Email:     "marisol.reyes@example.com",
		Role:      RoleEmployee,
		Address: Address{
			AddressLine1: "12 Harbor St",
			City:         "Oakland",
			State:        "CA",
			ZipCode:      "94607",
		},
	}

	var saved *User
	repo := &fakeUserRepository{
		findByIDFn: func(ctx context.Context, lookupID string) (*User, error) {
			assert.Equal(t, id.String(), lookupID)
			copied := existing
			return &copied, nil
		},
		updateFn: func(ctx context.Context, u *User) error {
			saved = u
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), id.String(), UpdateUserRequest{
		Email: strPtr("m.reyes@example.com"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "m.reyes@example.com", saved.Email)
	assert.Equal(t, "Marisol", saved.FirstName)
	assert.Equal(t, "Oakland", saved.Address.City)
}

// A partial address patch must not blank out the untouched address keys.
func TestUpdateMergesAddressKeyByKey(t *testing.T) {
	id := uuid.New()
	existing := User{
		ID: id,
		Address: Address{
			AddressLine1: "12 Harbor St",
			AddressLine2: "Unit 4",
			City:         "Oakland",
			State:        "CA",
			ZipCode:      "94607",
		},
	}

	var saved *User
	repo := &fakeUserRepository{
		findByIDFn: func(ctx context.Context, lookupID string) (*User, error) {
			copied := existing
			return &copied, nil
		},
		updateFn: func(ctx context.Context, u *User) error {
			saved = u
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), id.String(), UpdateUserRequest{
		Address: &AddressPatch{
			City:    strPtr("Berkeley"),
			ZipCode: strPtr("94704"),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Berkeley", saved.Address.City)
	assert.Equal(t, "94704", saved.Address.ZipCode)
	assert.Equal(t, "12 Harbor St", saved.Address.AddressLine1)
	assert.Equal(t, "Unit 4", saved.Address.AddressLine2)
	assert.Equal(t, "CA", saved.Address.State)
}

func TestUpdateClearsManagerWithEmptyString(t *testing.T) {
	id := uuid.New()
	managerID := uuid.New()
	existing := User{ID: id, ManagerID: &managerID}

	var saved *User
	repo := &fakeUserRepository{
		findByIDFn: func(ctx context.Context, lookupID string) (*User, error) {
			copied := existing
			return &copied, nil
		},
		updateFn: func(ctx context.Context, u *User) error {
			saved = u
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), id.String(), UpdateUserRequest{
		ManagerID: strPtr(""),
	})

	assert.NoError(t, err)
	assert.Nil(t, saved.ManagerID)
}

func TestUpdateRejectsMalformedID(t *testing.T) {
	svc := NewService(&fakeUserRepository{}, nil)

	_, err := svc.Update(context.Background(), "not-a-uuid", UpdateUserRequest{})

	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
}

func TestGetByIDMapsRecordNotFound(t *testing.T) {
	repo := &fakeUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestGetOptionsBuildsDisplayNames(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	repo := &fakeUserRepository{
		findAllFn: func(ctx context.Context) ([]User, error) {
			return []User{
				{ID: a, FirstName: "Marisol", LastName: "Reyes"},
				{ID: b, FirstName: "Dev", LastName: "Okafor"},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	options, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []UserOption{
		{ID: a.String(), Name: "Marisol Reyes"},
		{ID: b.String(), Name: "Dev Okafor"},
	}, options)
}
