package v1

import (
	"time"

	"github.com/fintrack/backend/pkg/models"
)

type RegisterEditable struct {
	Name     string `json:"name" example:"Jane Doe"`                  // Name of the user
	Email    string `json:"email" example:"jane@example.com"`         // E-mail address, used to log in
	Password string `json:"password" example:"correct horse battery"` // Password
}

type LoginEditable struct {
	Email    string `json:"email" example:"jane@example.com"`         // E-mail address of the user
	Password string `json:"password" example:"correct horse battery"` // Password of the user
}

// User is the representation of a User in API v1.
type User struct {
	ID                 uint                      `json:"id" example:"42"`                               // ID of the user
	Name               string                    `json:"name" example:"Jane Doe"`                       // Name of the user
	Email              string                    `json:"email" example:"jane@example.com"`              // E-mail address of the user
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus" example:"TRIAL"`            // TRIAL or EXPIRED
	TrialStartDate     time.Time                 `json:"trialStartDate" example:"2024-03-01T10:00:00Z"` // Start of the trial period
}

func newUser(model models.User) User {
	return User{
		ID:                 model.ID,
		Name:               model.Name,
		Email:              model.Email,
		SubscriptionStatus: model.SubscriptionStatus,
		TrialStartDate:     model.TrialStartDate,
	}
}

// Session is an access token together with the user it was issued for.
type Session struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.sig"` // Bearer token for the Authorization header
	User  User   `json:"user"`
}

type SessionResponse struct {
	Error *string  `json:"error" example:"invalid email or password"` // The error, if any occurred
	Data  *Session `json:"data"`                                      // The session data, if authentication was successful
}

type UserResponse struct {
	Error *string `json:"error" example:"authentication required"` // The error, if any occurred
	Data  *User   `json:"data"`                                    // Data for the user
}
