package v1

import (
	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/aggregate"
)

// recentTransactionCount is the number of transactions the dashboard lists.
const recentTransactionCount = 5

type DashboardQueryFilter struct {
	StartDate types.Date `form:"startDate"` // First day to include. Defaults to the first day of the current month
	EndDate   types.Date `form:"endDate"`   // Last day to include. Defaults to the last day of the current month
}

type Dashboard struct {
	StartDate types.Date `json:"startDate" example:"2024-03-01"` // First day included
	EndDate   types.Date `json:"endDate" example:"2024-03-31"`   // Last day included
	aggregate.Dashboard
	RecentTransactions []Transaction `json:"recentTransactions"` // The most recent transactions in the range
}

type DashboardResponse struct {
	Error *string    `json:"error" example:"the endDate must not be before the startDate"` // The error, if any occurred
	Data  *Dashboard `json:"data"`                                                         // The dashboard
}
