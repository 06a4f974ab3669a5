package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus is the access state of a user.
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "TRIAL"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// User is an account holder. All other resources are owned by exactly one user.
type User struct {
	DefaultModel
	Name               string
	Email              string `gorm:"uniqueIndex"`
	PasswordHash       string
	TrialStartDate     time.Time
	SubscriptionStatus SubscriptionStatus
}

var (
	ErrUserEmailNotUnique = errors.New("email already exists")
	ErrUserFieldsRequired = errors.New("name and email are required")
)

// BeforeSave trims whitespace and sets defaults for the trial.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	if u.Name == "" || u.Email == "" {
		return ErrUserFieldsRequired
	}

	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = SubscriptionTrial
	}

	if u.TrialStartDate.IsZero() {
		u.TrialStartDate = time.Now().In(time.UTC)
	} else {
		u.TrialStartDate = u.TrialStartDate.In(time.UTC)
	}

	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	err := u.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	u.TrialStartDate = u.TrialStartDate.In(time.UTC)
	return nil
}
