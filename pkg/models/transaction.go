package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Valid reports if t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is an income or an expense of a user.
//
// Transactions are never updated. They are created and, if wrong, deleted.
type Transaction struct {
	DefaultModel
	UserID        uint `gorm:"index"`
	User          User `json:"-"`
	BankAccountID *uint
	BankAccount   BankAccount `json:"-"`
	Description   string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type          TransactionType
	Category      string    `gorm:"index"` // Free text, matched by exact equality
	Date          time.Time `gorm:"index"`
}

var (
	ErrTransactionAmountNegative = errors.New("the transaction amount must not be negative")
	ErrTransactionTypeInvalid    = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrTransactionCategoryEmpty  = errors.New("the transaction category must not be empty")
)

// OwnerID returns the ID of the user owning the transaction.
func (t Transaction) OwnerID() uint {
	return t.UserID
}

func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates amount, type and category
//   - sets the timezone for the Date to UTC
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Category == "" {
		return ErrTransactionCategoryEmpty
	}

	// Ensure that the bank account ID is nil and not a pointer to 0
	if t.BankAccountID != nil && *t.BankAccountID == 0 {
		t.BankAccountID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// BeforeCreate verifies that a referenced bank account belongs
// to the owner of the transaction.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.BankAccountID == nil || *t.BankAccountID == 0 {
		return nil
	}

	var account BankAccount
	err := tx.Session(&gorm.Session{NewDB: true}).First(&account, *t.BankAccountID).Error
	if err != nil {
		return err
	}

	if account.UserID != t.UserID {
		return ErrNotAuthorized
	}

	return nil
}
