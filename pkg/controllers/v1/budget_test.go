package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/pkg/controllers/v1"
	"github.com/fintrack/backend/pkg/models"
	"github.com/fintrack/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestBudget(t *testing.T, headers map[string]string, c v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if c.StartDate.IsZero() {
		c.StartDate = date("2024-03-01")
	}

	if c.EndDate.IsZero() {
		c.EndDate = date("2024-03-31")
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{c}, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.BudgetResponse{}
}

func (suite *TestSuiteStandard) TestBudgetCreate() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{
		Name: "March",
		Items: []v1.BudgetItemEditable{
			{Category: "Groceries", AllocatedAmount: decimal.NewFromInt(400)},
			{Category: " Rent ", AllocatedAmount: decimal.NewFromInt(1200)},
		},
	})

	suite.Require().NotNil(budget.Data)
	suite.Assert().Equal("March", budget.Data.Name)
	suite.Assert().Equal(date("2024-03-01"), budget.Data.StartDate)
	suite.Assert().Equal(date("2024-03-31"), budget.Data.EndDate)
	suite.Require().Len(budget.Data.Items, 2)
	suite.Assert().Equal("Groceries", budget.Data.Items[0].Category)
	suite.Assert().Equal("Rent", budget.Data.Items[1].Category)
	suite.Assert().Equal(budget.Data.Links.Self+"/progress", budget.Data.Links.Progress)

	// Item categories are registered
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)

	names := make([]string, 0)
	for _, c := range categories.Data {
		names = append(names, c.Name)
	}
	suite.Assert().Equal([]string{"Groceries", "Rent"}, names)
}

func (suite *TestSuiteStandard) TestBudgetCreateDefaultName() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{})
	suite.Assert().Equal("Budget 2024-03-01 to 2024-03-31", budget.Data.Name)
	suite.Assert().Empty(budget.Data.Items)
}

func (suite *TestSuiteStandard) TestBudgetCreateFails() {
	tests := []struct {
		name     string
		editable v1.BudgetEditable
		err      string
	}{
		{"End before start", v1.BudgetEditable{StartDate: date("2024-03-31"), EndDate: date("2024-03-01")}, models.ErrBudgetDatesInvalid.Error()},
		{"Item without category", v1.BudgetEditable{StartDate: date("2024-03-01"), EndDate: date("2024-03-31"), Items: []v1.BudgetItemEditable{{AllocatedAmount: decimal.NewFromInt(5)}}}, models.ErrBudgetItemCategoryEmpty.Error()},
		{"Negative amount", v1.BudgetEditable{StartDate: date("2024-03-01"), EndDate: date("2024-03-31"), Items: []v1.BudgetItemEditable{{Category: "Food", AllocatedAmount: decimal.NewFromInt(-5)}}}, models.ErrBudgetItemAmountNegative.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{tt.editable}, suite.headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}

	// Missing dates
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `[{"name": "No dates"}]`, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// Invalid date format
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `[{"startDate": "March", "endDate": "2024-03-31"}]`, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// Failed budgets are not stored, not even partially
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Empty(list.Data)
}

func (suite *TestSuiteStandard) TestBudgetList() {
	first := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{Name: "First"})
	second := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{Name: "Second", Items: []v1.BudgetItemEditable{{Category: "Food", AllocatedAmount: decimal.NewFromInt(10)}}})
	_ = suite.createTestBudget(suite.T(), suite.otherUser(), v1.BudgetEditable{Name: "Foreign"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(second.Data.ID, response.Data[0].ID, "most recent budget is not first")
	suite.Assert().Equal(first.Data.ID, response.Data[1].ID)
	suite.Assert().Len(response.Data[0].Items, 1, "items are not loaded")
	suite.Assert().Equal(int64(2), response.Pagination.Total)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?name=First", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(first.Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestBudgetGet() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{Items: []v1.BudgetItemEditable{{Category: "Food", AllocatedAmount: decimal.NewFromInt(10)}}})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), `"startDate":"2024-03-01","endDate":"2024-03-31"`)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data.Items, 1)
	suite.Assert().True(decimal.NewFromInt(10).Equal(response.Data.Items[0].AllocatedAmount))

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, nil, suite.otherUser())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/4711", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no budget matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{Items: []v1.BudgetItemEditable{{Category: "Food", AllocatedAmount: decimal.NewFromInt(10)}}})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, nil, suite.otherUser())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.BudgetItem{}).Where(&models.BudgetItem{BudgetID: budget.Data.ID}).Count(&count).Error)
	suite.Assert().Zero(count, "budget items have not been deleted")
}

func (suite *TestSuiteStandard) TestBudgetOptions() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/budgets", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, budget.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, budget.Data.Links.Progress, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

// TestBudgetProgress checks that only expenses within the budget range
// with exactly matching categories are counted.
func (suite *TestSuiteStandard) TestBudgetProgress() {
	budget := suite.createTestBudget(suite.T(), suite.headers, v1.BudgetEditable{
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
		Items: []v1.BudgetItemEditable{
			{Category: "Groceries", AllocatedAmount: decimal.NewFromInt(400)},
			{Category: "Fun", AllocatedAmount: decimal.NewFromInt(50)},
			{Category: "Travel", AllocatedAmount: decimal.Zero},
		},
	})

	transactions := []v1.TransactionEditable{
		{Amount: decimal.NewFromInt(100), Category: "Groceries", Date: date("2024-03-01")},
		{Amount: decimal.NewFromInt(50), Category: "Groceries", Date: date("2024-03-31")},
		{Amount: decimal.NewFromInt(80), Category: "Fun", Date: date("2024-03-15")},
		{Amount: decimal.NewFromInt(999), Category: "Groceries", Date: date("2024-04-01")},
		{Amount: decimal.NewFromInt(999), Category: "Groceries", Date: date("2024-02-29")},
		{Amount: decimal.NewFromInt(999), Category: "groceries", Date: date("2024-03-10")},
		{Amount: decimal.NewFromInt(999), Category: "Groceries", Date: date("2024-03-10"), Type: models.TransactionIncome},
	}
	for _, tr := range transactions {
		_ = suite.createTestTransaction(suite.T(), suite.headers, tr)
	}

	// Transactions of other users are never counted
	_ = suite.createTestTransaction(suite.T(), suite.otherUser(), v1.TransactionEditable{Amount: decimal.NewFromInt(999), Category: "Groceries", Date: date("2024-03-10")})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Progress, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetProgressResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(budget.Data.ID, response.Data.Budget.ID)
	suite.Require().Len(response.Data.Progress, 3)

	tests := []struct {
		category  string
		spent     string
		remaining string
		percent   string
	}{
		{"Groceries", "150", "250", "37.5"},
		{"Fun", "80", "0", "100"},
		{"Travel", "0", "0", "0"},
	}

	for i, tt := range tests {
		p := response.Data.Progress[i]
		suite.Assert().Equal(tt.category, p.Category)
		suite.Assert().Equal(budget.Data.Items[i].ID, p.ItemID)
		suite.Assert().True(decimal.RequireFromString(tt.spent).Equal(p.Spent), "%s: spent is %s", tt.category, p.Spent)
		suite.Assert().True(decimal.RequireFromString(tt.remaining).Equal(p.Remaining), "%s: remaining is %s", tt.category, p.Remaining)
		suite.Assert().True(decimal.RequireFromString(tt.percent).Equal(p.Percent), "%s: percent is %s", tt.category, p.Percent)
	}

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Progress, nil, suite.otherUser())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}
