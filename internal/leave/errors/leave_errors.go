package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid category id",
		http.StatusBadRequest,
	)
	ErrInvalidDatetimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid datetime format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDatetimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_start_datetime must be before or equal effective_end_datetime",
		http.StatusBadRequest,
	)
	ErrNotOnTheHour = apperror.New(
		apperror.CodeInvalidInput,
		"effective start and end datetimes must be on the hour",
		http.StatusBadRequest,
	)
	ErrPerDayEntriesReadOnly = apperror.New(
		apperror.CodeInvalidInput,
		"per_day_entries are computed by the server and must not be provided",
		http.StatusBadRequest,
	)
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave category not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this leave request",
		http.StatusForbidden,
	)
	ErrRequestNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only submitted leave requests can be modified",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrDuplicatePerDayEntry = apperror.New(
		apperror.CodeConflict,
		"leave request already has an entry for that day",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"leave request has already been processed",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance for this category",
		http.StatusConflict,
	)
	ErrBalanceNotProvisioned = apperror.New(
		apperror.CodeConflict,
		"no leave balance provisioned for this category",
		http.StatusConflict,
	)
)
