package v1

import (
	"fmt"

	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetItemEditable struct {
	Category        string          `json:"category" example:"Groceries"`              // Category the spending is planned for
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" example:"400" minimum:"0"` // Planned spending
}

// BudgetItem is the representation of a BudgetItem in API v1.
type BudgetItem struct {
	models.DefaultModel
	BudgetItemEditable
}

type BudgetEditable struct {
	Name      string               `json:"name" example:"March" default:""` // Name of the budget. Defaults to "Budget <startDate> to <endDate>"
	StartDate types.Date           `json:"startDate" example:"2024-03-01"`  // First day of the budget
	EndDate   types.Date           `json:"endDate" example:"2024-03-31"`    // Last day of the budget, included completely
	Items     []BudgetItemEditable `json:"items"`                           // Planned spending per category
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model(userID uint) models.Budget {
	items := make([]models.BudgetItem, 0, len(editable.Items))
	for _, item := range editable.Items {
		items = append(items, models.BudgetItem{
			Category:        item.Category,
			AllocatedAmount: item.AllocatedAmount,
		})
	}

	return models.Budget{
		UserID:    userID,
		Name:      editable.Name,
		StartDate: editable.StartDate.Time(),
		EndDate:   editable.EndDate.Time(),
		Items:     items,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/4"`              // The budget itself
	Progress string `json:"progress" example:"https://example.com/api/v1/budgets/4/progress"` // Spending progress of the budget
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	Name      string       `json:"name" example:"March"`           // Name of the budget
	StartDate types.Date   `json:"startDate" example:"2024-03-01"` // First day of the budget
	EndDate   types.Date   `json:"endDate" example:"2024-03-31"`   // Last day of the budget
	Items     []BudgetItem `json:"items"`                          // Planned spending per category
	Links     BudgetLinks  `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	items := make([]BudgetItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, BudgetItem{
			DefaultModel: item.DefaultModel,
			BudgetItemEditable: BudgetItemEditable{
				Category:        item.Category,
				AllocatedAmount: item.AllocatedAmount,
			},
		})
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		StartDate:    types.Date(model.StartDate),
		EndDate:      types.Date(model.EndDate),
		Items:        items,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%d", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/budgets/%d/progress", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                   // List of budgets
	Error      *string     `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                             // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the budget start and end dates must be set"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                       // List of created budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"there is no budget matching your query"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                   // Data for the budget
}

type BudgetQueryFilter struct {
	Name   string `form:"name"`                       // Exact name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model(userID uint) models.Budget {
	return models.Budget{
		UserID: userID,
		Name:   f.Name,
	}
}

// BudgetSummary identifies the budget a progress report belongs to.
type BudgetSummary struct {
	ID        uint       `json:"id" example:"4"`                 // ID of the budget
	Name      string     `json:"name" example:"March"`           // Name of the budget
	StartDate types.Date `json:"startDate" example:"2024-03-01"` // First day of the budget
	EndDate   types.Date `json:"endDate" example:"2024-03-31"`   // Last day of the budget
}

type BudgetProgress struct {
	Budget   BudgetSummary            `json:"budget"`   // The budget
	Progress []aggregate.ItemProgress `json:"progress"` // Progress per budget item, in the order of the items
}

type BudgetProgressResponse struct {
	Error *string         `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Data  *BudgetProgress `json:"data"`                                                   // Progress of the budget
}
