// Package aggregate computes the derived figures of fintrack: account
// balances, budget progress and the dashboard summary.
//
// All functions operate on already loaded transactions. They do no I/O
// and never modify their input.
package aggregate

import (
	"github.com/fintrack/backend/pkg/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Balance returns the initial balance plus all income minus all expenses.
//
// Transactions with an unknown type do not change the balance.
func Balance(initial decimal.Decimal, transactions []models.Transaction) decimal.Decimal {
	balance := initial
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			balance = balance.Add(t.Amount)
		case models.TransactionExpense:
			balance = balance.Sub(t.Amount)
		}
	}

	return balance
}

// Summary is the income, expense and resulting balance of a set of transactions.
type Summary struct {
	Income  decimal.Decimal `json:"income" example:"2500"`  // Sum of all income
	Expense decimal.Decimal `json:"expense" example:"1870"` // Sum of all expenses
	Balance decimal.Decimal `json:"balance" example:"630"`  // Income minus expenses
}

// CategoryValue is the sum of expenses for one category.
type CategoryValue struct {
	Name  string          `json:"name" example:"Groceries"` // Name of the category
	Value decimal.Decimal `json:"value" example:"312.45"`   // Sum of all expenses in the category
}

// Dashboard is the summary of a set of transactions together
// with their expenses grouped by category.
type Dashboard struct {
	Summary      Summary         `json:"summary"`
	CategoryData []CategoryValue `json:"categoryData"` // Expenses by category, in order of first appearance
}

// Summarize computes the dashboard for the transactions.
//
// Categories appear in the order of their first expense. Income never
// contributes to the category data.
func Summarize(transactions []models.Transaction) Dashboard {
	income := decimal.Zero
	expense := decimal.Zero

	categoryData := make([]CategoryValue, 0)
	index := make(map[string]int)

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(t.Amount)
		case models.TransactionExpense:
			expense = expense.Add(t.Amount)

			i, ok := index[t.Category]
			if !ok {
				i = len(categoryData)
				index[t.Category] = i
				categoryData = append(categoryData, CategoryValue{Name: t.Category, Value: decimal.Zero})
			}
			categoryData[i].Value = categoryData[i].Value.Add(t.Amount)
		}
	}

	return Dashboard{
		Summary: Summary{
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		},
		CategoryData: categoryData,
	}
}

// ItemProgress is the spending progress for a single budget item.
type ItemProgress struct {
	ItemID          uint            `json:"itemId" example:"3"`            // ID of the budget item
	Category        string          `json:"category" example:"Groceries"`  // Category of the budget item
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" example:"400"` // Planned spending
	Spent           decimal.Decimal `json:"spent" example:"312.45"`        // Sum of matching expenses
	Remaining       decimal.Decimal `json:"remaining" example:"87.55"`     // Allocated minus spent, never below zero
	Percent         decimal.Decimal `json:"percent" example:"78.1125"`     // Spent as percentage of allocated, between 0 and 100
}

// BudgetProgress computes the progress of each budget item, in the order of
// the items.
//
// The caller is responsible for passing only the transactions within the
// date range of the budget. Only expenses whose category equals the item
// category exactly count as spent.
func BudgetProgress(items []models.BudgetItem, transactions []models.Transaction) []ItemProgress {
	spent := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		spent[t.Category] = spent[t.Category].Add(t.Amount)
	}

	progress := make([]ItemProgress, 0, len(items))
	for _, item := range items {
		s := spent[item.Category]

		remaining := item.AllocatedAmount.Sub(s)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		percent := decimal.Zero
		if item.AllocatedAmount.IsPositive() {
			percent = decimal.Min(s.Div(item.AllocatedAmount).Mul(hundred), hundred)
		}

		progress = append(progress, ItemProgress{
			ItemID:          item.ID,
			Category:        item.Category,
			AllocatedAmount: item.AllocatedAmount,
			Spent:           s,
			Remaining:       remaining,
			Percent:         percent,
		})
	}

	return progress
}
