package v1

import (
	"fmt"

	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Description string `json:"description" example:"Weekly groceries" default:""` // A description of the transaction

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Type          models.TransactionType `json:"type" example:"EXPENSE" enums:"INCOME,EXPENSE"` // Direction of the transaction
	Category      string                 `json:"category" example:"Groceries"`                  // Category, matched exactly by budgets and the dashboard
	Date          types.Date             `json:"date" example:"2024-03-15"`                     // Date of the transaction, YYYY-MM-DD or RFC3339. Defaults to now
	BankAccountID *uint                  `json:"bankAccountId" example:"3"`                     // ID of the bank account, if any
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(userID uint) models.Transaction {
	return models.Transaction{
		UserID:        userID,
		BankAccountID: editable.BankAccountID,
		Description:   editable.Description,
		Amount:        editable.Amount,
		Type:          editable.Type,
		Category:      editable.Category,
		Date:          editable.Date.Time(),
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/17"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Description:   model.Description,
			Amount:        model.Amount,
			Type:          model.Type,
			Category:      model.Category,
			Date:          types.Date(model.Date),
			BankAccountID: model.BankAccountID,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%d", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                           // List of transactions
	Error      *string       `json:"error" example:"the transaction type must be INCOME or EXPENSE"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                     // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the transaction amount must not be negative"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                        // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                        // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	StartDate     types.Date             `form:"startDate" filterField:"false"` // Transactions at and after this date
	EndDate       types.Date             `form:"endDate" filterField:"false"`   // Transactions at and before this date. The whole day is included.
	Type          models.TransactionType `form:"type"`                          // INCOME or EXPENSE
	Category      string                 `form:"category"`                      // Exact category
	MinAmount     decimal.Decimal        `form:"minAmount" filterField:"false"` // Amount more than or equal to this
	MaxAmount     decimal.Decimal        `form:"maxAmount" filterField:"false"` // Amount less than or equal to this
	BankAccountID uint                   `form:"bankAccount"`                   // ID of the bank account
	Offset        uint                   `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit         int                    `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

// model converts the filter into a transaction usable as gorm condition.
//
// This does not set the date and amount fields since they are
// handled in the controller function
func (f TransactionQueryFilter) model(userID uint) (models.Transaction, error) {
	if f.Type != "" && !f.Type.Valid() {
		return models.Transaction{}, models.ErrTransactionTypeInvalid
	}

	var bankAccountID *uint
	if f.BankAccountID != 0 {
		id := f.BankAccountID
		bankAccountID = &id
	}

	return models.Transaction{
		UserID:        userID,
		Type:          f.Type,
		Category:      f.Category,
		BankAccountID: bankAccountID,
	}, nil
}
