package models_test

import (
	"github.com/fintrack/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBankAccountDefaults() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestBankAccount(models.BankAccount{
		UserID:   user.ID,
		Name:     "\t Wallet ",
		BankName: " Mattress ",
	})

	suite.Assert().Equal("Wallet", account.Name)
	suite.Assert().Equal("Mattress", account.BankName)
	suite.Assert().Equal(models.BankAccountOther, account.Type)
}

func (suite *TestSuiteStandard) TestBankAccountInvalidType() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.BankAccount{UserID: user.ID, Name: "Broken", Type: "PIGGY_BANK"}).Error
	suite.Assert().ErrorIs(err, models.ErrBankAccountTypeInvalid)
}

func (suite *TestSuiteStandard) TestBankAccountUpdateValidation() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestBankAccount(models.BankAccount{UserID: user.ID, Type: models.BankAccountChecking})

	err := models.DB.Model(&account).Select("Name").Updates(models.BankAccount{Name: "  "}).Error
	suite.Assert().ErrorIs(err, models.ErrBankAccountNameEmpty)

	err = models.DB.Model(&account).Select("Type").Updates(models.BankAccount{Type: "PIGGY_BANK"}).Error
	suite.Assert().ErrorIs(err, models.ErrBankAccountTypeInvalid)

	err = models.DB.Model(&account).Select("Name", "InitialBalance").Updates(models.BankAccount{Name: " Main ", InitialBalance: decimal.NewFromInt(100)}).Error
	suite.Require().Nil(err)

	var stored models.BankAccount
	suite.Require().Nil(models.DB.First(&stored, account.ID).Error)
	suite.Assert().Equal("Main", stored.Name)
	suite.Assert().True(decimal.NewFromInt(100).Equal(stored.InitialBalance))
}

func (suite *TestSuiteStandard) TestBankAccountTransactions() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestBankAccount(models.BankAccount{UserID: user.ID})
	other := suite.createTestBankAccount(models.BankAccount{UserID: user.ID, Name: "Savings"})

	for _, id := range []uint{account.ID, account.ID, other.ID} {
		accountID := id
		err := models.DB.Create(&models.Transaction{
			UserID:        user.ID,
			BankAccountID: &accountID,
			Amount:        decimal.NewFromInt(1),
			Type:          models.TransactionIncome,
			Category:      "Interest",
		}).Error
		suite.Require().Nil(err)
	}

	transactions, err := account.Transactions(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 2)
}
