// Package v1 implements the v1 API of fintrack.
package v1

import (
	"net/http"

	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// MailDefaults are used for report e-mails when the request does not set them.
type MailDefaults struct {
	From    string
	Subject string
	Text    string
}

// Controller holds the dependencies of the v1 API handlers.
type Controller struct {
	Tokens *auth.Issuer
	Trial  auth.TrialPolicy
	Mailer mail.Sender
	Mail   MailDefaults
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	co.RegisterAuthRoutes(r.Group("/auth"))

	// All other resources require a valid token and an active subscription
	protected := r.Group("", auth.Authenticate(co.Tokens), co.RequireActiveSubscription)
	{
		RegisterTransactionRoutes(protected.Group("/transactions"))
		RegisterBankAccountRoutes(protected.Group("/bank-accounts"))
		RegisterBudgetRoutes(protected.Group("/budgets"))
		RegisterCategoryRoutes(protected.Group("/categories"))
		RegisterDashboardRoutes(protected.Group("/dashboard"))
		co.RegisterReportRoutes(protected.Group("/reports"))
	}
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Auth         string `json:"auth" example:"https://example.com/api/v1/auth"`                  // URL of the authentication endpoints
	BankAccounts string `json:"bankAccounts" example:"https://example.com/api/v1/bank-accounts"` // URL of Bank Account collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`            // URL of Budget collection endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`      // URL of Category collection endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`        // URL of the dashboard endpoint
	Reports      string `json:"reports" example:"https://example.com/api/v1/reports"`            // URL of the report endpoints
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`  // URL of Transaction collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Auth:         url + "/v1/auth",
			BankAccounts: url + "/v1/bank-accounts",
			Budgets:      url + "/v1/budgets",
			Categories:   url + "/v1/categories",
			Dashboard:    url + "/v1/dashboard",
			Reports:      url + "/v1/reports",
			Transactions: url + "/v1/transactions",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
