package departmenterrors

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
)
