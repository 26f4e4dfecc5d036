package usererrors

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"username is already taken",
		http.StatusConflict,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
)
