package test

import (
	"fmt"
	"testing"

	"github.com/fintrack/backend/pkg/auth"
	v1 "github.com/fintrack/backend/pkg/controllers/v1"
	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/pkg/models"
	"github.com/stretchr/testify/require"
)

// Secret is the secret used to sign tokens in tests.
const Secret = "fintrack-testing-secret"

// Controller returns the controller used by Request. Reports are sent
// with the mailer. If it is nil, sending reports is not configured.
func Controller(mailer mail.Sender) v1.Controller {
	issuer, err := auth.NewIssuer(Secret, 0)
	if err != nil {
		panic(err)
	}

	return v1.Controller{
		Tokens: issuer,
		Trial: auth.TrialPolicy{
			Days: auth.DefaultTrialDays,
		},
		Mailer: mailer,
		Mail: v1.MailDefaults{
			From:    "reports@example.com",
			Subject: "Your report",
			Text:    "The report is attached.",
		},
	}
}

// Token returns a valid token for the user.
func Token(t *testing.T, user models.User) string {
	issuer, err := auth.NewIssuer(Secret, 0)
	require.Nil(t, err)

	token, err := issuer.Generate(user.ID, user.Email)
	require.Nil(t, err)

	return token
}

// Authorization returns the header map authenticating requests as the user.
func Authorization(t *testing.T, user models.User) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", Token(t, user)),
	}
}

// CreateUser stores a user with an active trial. Name and email
// default to test values when they are empty.
func CreateUser(t *testing.T, user models.User) models.User {
	if user.Name == "" {
		user.Name = "Test User"
	}

	if user.Email == "" {
		user.Email = "test@example.com"
	}

	err := models.DB.Create(&user).Error
	require.Nil(t, err, "Failed to create user")

	return user
}
