package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the planned spending for a date range.
//
// Both StartDate and EndDate are inclusive.
type Budget struct {
	DefaultModel
	UserID    uint `gorm:"index"`
	User      User `json:"-"`
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Items     []BudgetItem `gorm:"constraint:OnDelete:CASCADE"`
}

// BudgetItem is the planned spending for one category within a budget.
type BudgetItem struct {
	DefaultModel
	BudgetID        uint `gorm:"index"`
	Category        string
	AllocatedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrBudgetDatesRequired      = errors.New("the budget start and end dates must be set")
	ErrBudgetDatesInvalid       = errors.New("the budget end date must not be before its start date")
	ErrBudgetItemCategoryEmpty  = errors.New("the category of a budget item must not be empty")
	ErrBudgetItemAmountNegative = errors.New("the allocated amount of a budget item must not be negative")
)

// OwnerID returns the ID of the user owning the budget.
func (b Budget) OwnerID() uint {
	return b.UserID
}

// BeforeSave validates the date range, sets the timezone
// to UTC and defaults the name.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrBudgetDatesRequired
	}

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)

	if b.EndDate.Before(b.StartDate) {
		return ErrBudgetDatesInvalid
	}

	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		b.Name = fmt.Sprintf("Budget %s to %s", b.StartDate.Format(time.DateOnly), b.EndDate.Format(time.DateOnly))
	}

	return nil
}

func (b *Budget) AfterFind(tx *gorm.DB) error {
	err := b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return nil
}

// Categories returns the distinct categories of the budget items
// in the order of their first appearance.
func (b Budget) Categories() []string {
	seen := make(map[string]bool, len(b.Items))
	categories := make([]string, 0, len(b.Items))

	for _, item := range b.Items {
		category := strings.TrimSpace(item.Category)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}

	return categories
}

func (i *BudgetItem) BeforeSave(_ *gorm.DB) error {
	i.Category = strings.TrimSpace(i.Category)

	if i.Category == "" {
		return ErrBudgetItemCategoryEmpty
	}

	if i.AllocatedAmount.IsNegative() {
		return ErrBudgetItemAmountNegative
	}

	return nil
}
