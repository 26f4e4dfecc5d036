package leaveerrors

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrMissingDates = apperror.New(
		apperror.CodeInvalidInput,
		"start and end dates are required",
		http.StatusBadRequest,
	)
	ErrEmptyRange = apperror.New(
		apperror.CodeInvalidInput,
		"requested range contains no business hours",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approved or denied",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
