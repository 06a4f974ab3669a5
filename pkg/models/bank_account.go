package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccountType is the kind of a bank account.
type BankAccountType string

const (
	BankAccountChecking   BankAccountType = "CHECKING"
	BankAccountSavings    BankAccountType = "SAVINGS"
	BankAccountInvestment BankAccountType = "INVESTMENT"
	BankAccountCash       BankAccountType = "CASH"
	BankAccountOther      BankAccountType = "OTHER"
)

// Valid reports if t is a known bank account type.
func (t BankAccountType) Valid() bool {
	switch t {
	case BankAccountChecking, BankAccountSavings, BankAccountInvestment, BankAccountCash, BankAccountOther:
		return true
	}
	return false
}

// BankAccount represents an account at a bank, or cash.
//
// The current balance is never stored, it is calculated from the initial
// balance and all transactions referencing the account.
type BankAccount struct {
	DefaultModel
	UserID         uint `gorm:"index"`
	User           User `json:"-"`
	Name           string
	Type           BankAccountType
	BankName       string
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Color          string
}

var (
	ErrBankAccountNameEmpty   = errors.New("the bank account name must not be empty")
	ErrBankAccountTypeInvalid = errors.New("the bank account type must be one of CHECKING, SAVINGS, INVESTMENT, CASH, OTHER")
)

// OwnerID returns the ID of the user owning the bank account.
func (a BankAccount) OwnerID() uint {
	return a.UserID
}

// BeforeSave trims whitespace from all strings and validates the type.
// An empty type defaults to OTHER.
func (a *BankAccount) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.BankName = strings.TrimSpace(a.BankName)
	a.Color = strings.TrimSpace(a.Color)

	if a.Name == "" {
		return ErrBankAccountNameEmpty
	}

	if a.Type == "" {
		a.Type = BankAccountOther
	}

	if !a.Type.Valid() {
		return ErrBankAccountTypeInvalid
	}

	return nil
}

// BeforeUpdate verifies the values of an update, which BeforeSave
// does not see as it is called on the stored resource.
func (a *BankAccount) BeforeUpdate(tx *gorm.DB) error {
	var toSave BankAccount
	switch dest := tx.Statement.Dest.(type) {
	case BankAccount:
		toSave = dest
	case *BankAccount:
		toSave = *dest
	default:
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := strings.TrimSpace(toSave.Name)
		if name == "" {
			return ErrBankAccountNameEmpty
		}
		tx.Statement.SetColumn("Name", name)
	}

	if tx.Statement.Changed("Type") && !toSave.Type.Valid() {
		return ErrBankAccountTypeInvalid
	}

	return nil
}

// Transactions returns all transactions referencing this account.
func (a BankAccount) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	id := a.ID
	err := db.Where(&Transaction{BankAccountID: &id}).Find(&transactions).Error
	return transactions, err
}
