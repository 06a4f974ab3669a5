package v1

import (
	"net/http"
	"time"

	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// dateRange returns the range from the filter. Dates not set default to the
// boundaries of the current month.
func dateRange(start, end types.Date, now time.Time) (time.Time, time.Time, error) {
	month := types.MonthOf(now)

	from := month.FirstDay()
	if !start.IsZero() {
		from = start.Time()
	}

	to := month.LastDay()
	if !end.IsZero() {
		to = end.Time()
	}

	if types.StartOfDay(to).Before(types.StartOfDay(from)) {
		return time.Time{}, time.Time{}, errDateRangeInvalid
	}

	return from, to, nil
}

// transactionsInRange returns a query for all transactions of the user
// from the start of the first day to the end of the last day.
func transactionsInRange(db *gorm.DB, userID uint, from, to time.Time) *gorm.DB {
	return db.
		Where(&models.Transaction{UserID: userID}).
		Where("transactions.date >= ?", types.StartOfDay(from)).
		Where("transactions.date < ?", types.EndOfDayExclusive(to)).
		Order("transactions.date DESC, transactions.created_at DESC")
}

// @Summary		Get dashboard
// @Description	Returns income, expenses and balance for a date range together with the expenses per category and the most recent transactions
// @Tags			Dashboard
// @Produce		json
// @Success		200			{object}	DashboardResponse
// @Failure		400			{object}	DashboardResponse
// @Failure		500			{object}	DashboardResponse
// @Param			startDate	query		string	false	"First day to include. Defaults to the first day of the current month."
// @Param			endDate		query		string	false	"Last day to include. Defaults to the last day of the current month."
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var filter DashboardQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	from, to, err := dateRange(filter.StartDate, filter.EndDate, time.Now())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	var transactions []models.Transaction
	err = transactionsInRange(models.DB, auth.UserID(c), from, to).Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	recent := make([]Transaction, 0, recentTransactionCount)
	for i := 0; i < len(transactions) && i < recentTransactionCount; i++ {
		recent = append(recent, newTransaction(c, transactions[i]))
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Data: &Dashboard{
			StartDate:          types.Date(from),
			EndDate:            types.Date(to),
			Dashboard:          aggregate.Summarize(transactions),
			RecentTransactions: recent,
		},
	})
}
