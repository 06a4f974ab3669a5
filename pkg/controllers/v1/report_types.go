package v1

import (
	"github.com/fintrack/backend/internal/types"
)

type ReportQueryFilter struct {
	StartDate types.Date `form:"startDate"` // First day to include. Defaults to the first day of the current month
	EndDate   types.Date `form:"endDate"`   // Last day to include. Defaults to the last day of the current month
}

// ReportSendForm is the multipart form for sending reports.
//
// When no file is uploaded in the "report" field, the report for
// StartDate to EndDate is rendered and attached.
type ReportSendForm struct {
	Email     string     `form:"email"`     // Recipient
	Subject   string     `form:"subject"`   // Subject of the e-mail
	Text      string     `form:"text"`      // Plain text body of the e-mail
	StartDate types.Date `form:"startDate"` // First day of a rendered report
	EndDate   types.Date `form:"endDate"`   // Last day of a rendered report
}

type ReportSent struct {
	Message   string `json:"message" example:"Email sent successfully"`                                   // Human readable result
	MessageID string `json:"messageId" example:"<0c8ad3e4-1b0e-4e36-8a43-5e1a9e5b2c11@smtp.example.com>"` // Message-ID header of the sent e-mail
}

type ReportSendResponse struct {
	Error *string     `json:"error" example:"the uploaded report must be a PDF file"` // The error, if any occurred
	Data  *ReportSent `json:"data"`                                                   // Result of sending the report
}
