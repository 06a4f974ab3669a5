package v1

import (
	"errors"
	"net/http"

	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/pkg/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate status for an error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral), errors.Is(err, errMailFailed):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errInvalidCredentials), errors.Is(err, errUserUnknown):
		return http.StatusUnauthorized
	case errors.Is(err, errSubscriptionExpired):
		return http.StatusPaymentRequired
	case errors.Is(err, mail.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, mail.ErrRecipientInvalid), errors.Is(err, mail.ErrRecipientMissing):
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}

// Authentication errors
var (
	errInvalidCredentials  = errors.New("invalid email or password")
	errUserUnknown         = errors.New("the user for this token does not exist anymore")
	errSubscriptionExpired = errors.New("your trial has expired")
)

// Query errors
var (
	errDateRangeInvalid = errors.New("the endDate must not be before the startDate")
	errAmountRange      = errors.New("minAmount must not be larger than maxAmount")
)

// Report errors
var (
	errReportFileInvalid = errors.New("the uploaded report must be a PDF file")
	errMailFailed        = errors.New("failed to send email")
)
