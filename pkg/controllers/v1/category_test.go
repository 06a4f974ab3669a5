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

func (suite *TestSuiteStandard) createTestCategory(t *testing.T, headers map[string]string, name string, expectedStatus ...int) v1.CategoryResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{Name: name}, headers)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

func (suite *TestSuiteStandard) categoryNames(t *testing.T) []string {
	r := test.Request(t, http.MethodGet, "http://example.com/v1/categories", nil, suite.headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(t, &r, &response)

	names := make([]string, 0)
	for _, c := range response.Data {
		names = append(names, c.Name)
	}
	return names
}

func (suite *TestSuiteStandard) TestCategoryCreate() {
	created := suite.createTestCategory(suite.T(), suite.headers, " Groceries ")
	suite.Require().NotNil(created.Data)
	suite.Assert().Equal("Groceries", created.Data.Name)
	suite.Assert().Equal("http://example.com/v1/transactions?category=Groceries", created.Data.Links.Transactions)

	// Creating it again returns the existing category
	existing := suite.createTestCategory(suite.T(), suite.headers, "Groceries", http.StatusOK)
	suite.Assert().Equal(created.Data.ID, existing.Data.ID)

	// Names are case sensitive
	other := suite.createTestCategory(suite.T(), suite.headers, "groceries")
	suite.Assert().NotEqual(created.Data.ID, other.Data.ID)

	// Other users have their own categories
	foreign := suite.createTestCategory(suite.T(), suite.otherUser(), "Groceries")
	suite.Assert().NotEqual(created.Data.ID, foreign.Data.ID)

	suite.Assert().Equal([]string{"Groceries", "groceries"}, suite.categoryNames(suite.T()))
}

func (suite *TestSuiteStandard) TestCategoryCreateFails() {
	tests := []struct {
		name string
		body any
	}{
		{"Empty name", `{"name": ""}`},
		{"Whitespace name", `{"name": "   "}`},
		{"Broken JSON", `{"name": `},
		{"No body", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", tt.body, suite.headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	suite.Assert().Empty(suite.categoryNames(suite.T()))
}

func (suite *TestSuiteStandard) TestCategoryList() {
	for _, name := range []string{"Rent", "Fun", "Groceries"} {
		_ = suite.createTestCategory(suite.T(), suite.headers, name)
	}

	// Transactions add their category
	_ = suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(3), Category: "Coffee"})
	_ = suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(3), Category: "Fun"})

	suite.Assert().Equal([]string{"Coffee", "Fun", "Groceries", "Rent"}, suite.categoryNames(suite.T()))
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory(suite.T(), suite.headers, "Food")
	_ = suite.createTestCategory(suite.T(), suite.headers, "Rent")
	transaction := suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(3), Category: "Food"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, v1.CategoryEditable{Name: "Groceries"}, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Groceries", response.Data.Name)
	suite.Assert().Equal(category.Data.ID, response.Data.ID)

	// Transactions are not renamed
	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var tr v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &tr)
	suite.Assert().Equal("Food", tr.Data.Category)

	tests := []struct {
		name    string
		body    any
		headers map[string]string
		status  int
		err     string
	}{
		{"Name exists", v1.CategoryEditable{Name: "Rent"}, suite.headers, http.StatusBadRequest, models.ErrCategoryNameNotUnique.Error()},
		{"Empty name", v1.CategoryEditable{Name: " "}, suite.headers, http.StatusBadRequest, models.ErrCategoryNameEmpty.Error()},
		{"Other user", v1.CategoryEditable{Name: "Mine"}, suite.otherUser(), http.StatusForbidden, models.ErrNotAuthorized.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, category.Data.Links.Self, tt.body, tt.headers)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.err)
		})
	}

	suite.Assert().Equal([]string{"Groceries", "Rent"}, suite.categoryNames(suite.T()))
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	category := suite.createTestCategory(suite.T(), suite.headers, "Food")
	_ = suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(3), Category: "Rent"})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, nil, suite.otherUser())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	suite.Assert().Equal([]string{"Rent"}, suite.categoryNames(suite.T()))
}

func (suite *TestSuiteStandard) TestCategoryOptions() {
	category := suite.createTestCategory(suite.T(), suite.headers, "Food")

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/categories", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, category.Data.Links.Self, nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, PATCH, DELETE", r.Header().Get("allow"))
}
