package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fintrack/backend/pkg/auth"
	v1 "github.com/fintrack/backend/pkg/controllers/v1"
	"github.com/fintrack/backend/pkg/models"
	"github.com/fintrack/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) register(editable v1.RegisterEditable, expectedStatus int) v1.SessionResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", editable)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestRegister() {
	response := suite.register(v1.RegisterEditable{Name: " Jane ", Email: "jane@example.com", Password: "secret"}, http.StatusCreated)

	suite.Require().NotNil(response.Data)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal("Jane", response.Data.User.Name)
	suite.Assert().Equal(models.SubscriptionTrial, response.Data.User.SubscriptionStatus)
	suite.Assert().WithinDuration(time.Now(), response.Data.User.TrialStartDate, time.Minute)

	var user models.User
	suite.Require().Nil(models.DB.First(&user, response.Data.User.ID).Error)
	suite.Assert().NotEqual("secret", user.PasswordHash, "password is stored in plain text")

	// The token authenticates the new user
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/me", nil, map[string]string{"Authorization": "Bearer " + response.Data.Token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRegisterFails() {
	tests := []struct {
		name     string
		editable v1.RegisterEditable
		err      string
	}{
		{"Duplicate email", v1.RegisterEditable{Name: "Test", Email: suite.user.Email, Password: "secret"}, "email already exists"},
		{"No name", v1.RegisterEditable{Email: "new@example.com", Password: "secret"}, "name and email are required"},
		{"No email", v1.RegisterEditable{Name: "New", Password: "secret"}, "name and email are required"},
		{"No password", v1.RegisterEditable{Name: "New", Email: "new@example.com"}, auth.ErrPasswordEmpty.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", tt.editable)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestLogin() {
	suite.register(v1.RegisterEditable{Name: "Jane", Email: "jane@example.com", Password: "secret"}, http.StatusCreated)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginEditable{Email: "jane@example.com", Password: "secret"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal("jane@example.com", response.Data.User.Email)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	suite.register(v1.RegisterEditable{Name: "Jane", Email: "jane@example.com", Password: "secret"}, http.StatusCreated)

	tests := []struct {
		name     string
		editable v1.LoginEditable
	}{
		{"Wrong password", v1.LoginEditable{Email: "jane@example.com", Password: "wrong"}},
		{"Unknown user", v1.LoginEditable{Email: "nobody@example.com", Password: "secret"}},
		{"No email", v1.LoginEditable{Email: " ", Password: "secret"}},
		{"No password", v1.LoginEditable{Email: "jane@example.com"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", tt.editable)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
			assert.Equal(t, "invalid email or password", test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

// TestLoginExpiresTrial verifies that a lapsed trial is expired on login.
// Logging in still works, but protected resources are not available.
func (suite *TestSuiteStandard) TestLoginExpiresTrial() {
	response := suite.register(v1.RegisterEditable{Name: "Jane", Email: "jane@example.com", Password: "secret"}, http.StatusCreated)
	suite.Require().Nil(models.DB.Model(&models.User{}).Where("id = ?", response.Data.User.ID).UpdateColumn("trial_start_date", time.Now().In(time.UTC).AddDate(0, 0, -5)).Error)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginEditable{Email: "jane@example.com", Password: "secret"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var login v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &login)
	suite.Assert().Equal(models.SubscriptionExpired, login.Data.User.SubscriptionStatus)

	headers := map[string]string{"Authorization": "Bearer " + login.Data.Token}

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusPaymentRequired)

	// The user can still see their own data
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/me", nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestMe() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/me", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(suite.user.ID, response.Data.ID)
	suite.Assert().Equal(suite.user.Email, response.Data.Email)
}

func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"No header", map[string]string{}, http.StatusUnauthorized},
		{"Not a bearer token", map[string]string{"Authorization": "Basic dGVzdDp0ZXN0"}, http.StatusUnauthorized},
		{"Invalid token", map[string]string{"Authorization": "Bearer not-a-token"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/v1/auth/me", "/v1/transactions", "/v1/bank-accounts", "/v1/budgets", "/v1/categories", "/v1/dashboard", "/v1/reports/pdf"} {
				r := test.Request(t, http.MethodGet, "http://example.com"+path, nil, tt.headers)
				assert.Equal(t, tt.status, r.Code, path)
			}
		})
	}
}

// TestDeletedUser verifies that tokens of deleted users are not accepted.
func (suite *TestSuiteStandard) TestDeletedUser() {
	suite.Require().Nil(models.DB.Delete(&suite.user).Error)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/me", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestV1Links() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("http://example.com/v1/transactions", response.Links.Transactions)
	suite.Assert().Equal("http://example.com/v1/dashboard", response.Links.Dashboard)

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}
