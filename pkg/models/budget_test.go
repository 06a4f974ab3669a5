package models_test

import (
	"time"

	"github.com/fintrack/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetDefaultName() {
	user := suite.createTestUser(models.User{})
	budget := models.Budget{
		UserID:    user.ID,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.Require().Nil(models.DB.Create(&budget).Error)
	suite.Assert().Equal("Budget 2024-03-01 to 2024-03-31", budget.Name)
}

func (suite *TestSuiteStandard) TestBudgetDates() {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err := models.DB.Create(&models.Budget{StartDate: march}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetDatesRequired)

	err = models.DB.Create(&models.Budget{StartDate: march, EndDate: march.AddDate(0, 0, -1)}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetDatesInvalid)
}

func (suite *TestSuiteStandard) TestBudgetItemsCreatedAndDeleted() {
	user := suite.createTestUser(models.User{})
	budget := models.Budget{
		UserID:    user.ID,
		Name:      " Groceries ",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []models.BudgetItem{
			{Category: " Food ", AllocatedAmount: decimal.NewFromInt(300)},
			{Category: "Fun", AllocatedAmount: decimal.NewFromInt(50)},
		},
	}

	suite.Require().Nil(models.DB.Create(&budget).Error)
	suite.Assert().Equal("Groceries", budget.Name)

	var items []models.BudgetItem
	suite.Require().Nil(models.DB.Where(&models.BudgetItem{BudgetID: budget.ID}).Order("id ASC").Find(&items).Error)
	suite.Require().Len(items, 2)
	suite.Assert().Equal("Food", items[0].Category)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.BudgetItem{}).Where(&models.BudgetItem{BudgetID: budget.ID}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)

	suite.Require().Nil(models.DB.Select("Items").Delete(&budget).Error)
	suite.Require().Nil(models.DB.Model(&models.BudgetItem{}).Where(&models.BudgetItem{BudgetID: budget.ID}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestBudgetItemValidation() {
	item := models.BudgetItem{Category: "  "}
	suite.Assert().ErrorIs(item.BeforeSave(models.DB), models.ErrBudgetItemCategoryEmpty)

	item = models.BudgetItem{Category: "Food", AllocatedAmount: decimal.NewFromInt(-5)}
	suite.Assert().ErrorIs(item.BeforeSave(models.DB), models.ErrBudgetItemAmountNegative)
}

func (suite *TestSuiteStandard) TestBudgetCategories() {
	budget := models.Budget{
		Items: []models.BudgetItem{
			{Category: "Food"},
			{Category: "Rent"},
			{Category: " Food"},
			{Category: ""},
		},
	}

	suite.Assert().Equal([]string{"Food", "Rent"}, budget.Categories())
}
