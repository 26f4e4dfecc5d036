package user

import (
	"context"

	"github.com/abbie-leigh/hr-portal/internal/leave"
	usererrors "github.com/abbie-leigh/hr-portal/internal/user/errors"
)

// Directory exposes the user store to the leave module as a read-only
// employee lookup. It satisfies leave.EmployeeDirectory.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) Profile(ctx context.Context, employeeID string) (leave.EmployeeProfile, error) {
	u, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		if mapRepositoryError(err) == usererrors.ErrUserNotFound {
			return leave.EmployeeProfile{}, usererrors.ErrUserNotFound
		}
		return leave.EmployeeProfile{}, err
	}
	return profileOf(*u), nil
}

func (d *Directory) Profiles(ctx context.Context) (map[string]leave.EmployeeProfile, error) {
	users, err := d.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]leave.EmployeeProfile, len(users))
	for _, u := range users {
		profiles[u.ID.String()] = profileOf(u)
	}
	return profiles, nil
}

func profileOf(u User) leave.EmployeeProfile {
	return leave.EmployeeProfile{
		Name:      u.FirstName + " " + u.LastName,
		Allotment: u.YearlyLeaveBalance,
	}
}
