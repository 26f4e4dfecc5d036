package roleerrors

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleNameTaken = apperror.New(
		apperror.CodeConflict,
		"a role with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
)
