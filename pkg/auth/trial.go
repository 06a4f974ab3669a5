package auth

import (
	"math"
	"strings"
	"time"

	"github.com/fintrack/backend/pkg/models"
	"gorm.io/gorm"
)

// DefaultTrialDays is the length of the trial period unless configured otherwise.
const DefaultTrialDays = 3

// TrialPolicy decides the subscription status of users.
type TrialPolicy struct {
	Days      int      // Length of the trial in days
	AllowList []string // E-mail addresses that never expire
}

// Allowed reports if the e-mail address is on the allow list. Comparison ignores case.
func (p TrialPolicy) Allowed(email string) bool {
	for _, allowed := range p.AllowList {
		if strings.EqualFold(strings.TrimSpace(allowed), strings.TrimSpace(email)) {
			return true
		}
	}

	return false
}

// Evaluate returns the subscription status the user has at the time now.
//
// Trials expire once more than Days days, rounded up, have passed since the
// trial start. Allow-listed users are always reset to a trial.
func (p TrialPolicy) Evaluate(user models.User, now time.Time) models.SubscriptionStatus {
	if p.Allowed(user.Email) {
		return models.SubscriptionTrial
	}

	if user.SubscriptionStatus != models.SubscriptionTrial {
		return user.SubscriptionStatus
	}

	days := p.Days
	if days <= 0 {
		days = DefaultTrialDays
	}

	elapsed := int(math.Ceil(math.Abs(now.Sub(user.TrialStartDate).Hours()) / 24))
	if elapsed > days {
		return models.SubscriptionExpired
	}

	return models.SubscriptionTrial
}

// Sweep evaluates the policy for all users at the time now and stores
// every changed subscription status. It returns the number of changed users.
func (p TrialPolicy) Sweep(db *gorm.DB, now time.Time) (int, error) {
	var users []models.User
	err := db.Find(&users).Error
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, user := range users {
		status := p.Evaluate(user, now)
		if status == user.SubscriptionStatus {
			continue
		}

		err = db.Model(&user).Select("SubscriptionStatus").Updates(models.User{SubscriptionStatus: status}).Error
		if err != nil {
			return changed, err
		}
		changed++
	}

	return changed, nil
}
