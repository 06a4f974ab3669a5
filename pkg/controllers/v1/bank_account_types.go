package v1

import (
	"fmt"

	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BankAccountEditable struct {
	Name           string                 `json:"name" example:"Checking"`                                                // Name of the bank account
	Type           models.BankAccountType `json:"type" example:"CHECKING" enums:"CHECKING,SAVINGS,INVESTMENT,CASH,OTHER"` // Type of the account. Defaults to OTHER
	BankName       string                 `json:"bankName" example:"Direct Bank" default:""`                              // Name of the bank
	InitialBalance decimal.Decimal        `json:"initialBalance" example:"1500.00"`                                       // Balance before the first transaction
	Color          string                 `json:"color" example:"#1d4ed8" default:""`                                     // Display color
}

// model returns the database resource for the API representation of the editable fields
func (editable BankAccountEditable) model(userID uint) models.BankAccount {
	return models.BankAccount{
		UserID:         userID,
		Name:           editable.Name,
		Type:           editable.Type,
		BankName:       editable.BankName,
		InitialBalance: editable.InitialBalance,
		Color:          editable.Color,
	}
}

type BankAccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/bank-accounts/3"`                    // The bank account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?bankAccount=3"` // Transactions of this bank account
}

// BankAccount is the representation of a BankAccount in API v1.
type BankAccount struct {
	models.DefaultModel
	BankAccountEditable
	CurrentBalance decimal.Decimal  `json:"currentBalance" example:"1734.12"` // Initial balance plus income minus expenses
	Links          BankAccountLinks `json:"links"`
}

// newBankAccount returns the API v1 representation of the resource
func newBankAccount(c *gin.Context, model models.BankAccount, balance decimal.Decimal) BankAccount {
	url := c.GetString(string(models.DBContextURL))

	return BankAccount{
		DefaultModel: model.DefaultModel,
		BankAccountEditable: BankAccountEditable{
			Name:           model.Name,
			Type:           model.Type,
			BankName:       model.BankName,
			InitialBalance: model.InitialBalance,
			Color:          model.Color,
		},
		CurrentBalance: balance,
		Links: BankAccountLinks{
			Self:         fmt.Sprintf("%s/v1/bank-accounts/%d", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?bankAccount=%d", url, model.ID),
		},
	}
}

type BankAccountListResponse struct {
	Data       []BankAccount `json:"data"`                                                         // List of bank accounts
	Error      *string       `json:"error" example:"there is no bank account matching your query"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                   // Pagination information
}

type BankAccountCreateResponse struct {
	Error *string               `json:"error" example:"the bank account name must not be empty"` // The error, if any occurred
	Data  []BankAccountResponse `json:"data"`                                                    // List of created bank accounts
}

func (a *BankAccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, BankAccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BankAccountResponse struct {
	Error *string      `json:"error" example:"there is no bank account matching your query"` // The error, if any occurred for this bank account
	Data  *BankAccount `json:"data"`                                                         // Data for the bank account
}

type BankAccountQueryFilter struct {
	Name   string                 `form:"name"`                       // Exact name
	Type   models.BankAccountType `form:"type"`                       // Type of the account
	Offset uint                   `form:"offset" filterField:"false"` // The offset of the first bank account returned. Defaults to 0.
	Limit  int                    `form:"limit" filterField:"false"`  // Maximum number of bank accounts to return. Defaults to 50.
}

func (f BankAccountQueryFilter) model(userID uint) models.BankAccount {
	return models.BankAccount{
		UserID: userID,
		Name:   f.Name,
		Type:   f.Type,
	}
}
