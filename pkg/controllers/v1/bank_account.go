package v1

import (
	"net/http"

	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBankAccountRoutes registers the routes for bank accounts with
// the RouterGroup that is passed.
func RegisterBankAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBankAccountList)
		r.GET("", GetBankAccounts)
		r.POST("", CreateBankAccounts)
	}

	// Bank account with ID
	{
		r.OPTIONS("/:id", OptionsBankAccountDetail)
		r.GET("/:id", GetBankAccount)
		r.PATCH("/:id", UpdateBankAccount)
		r.DELETE("/:id", DeleteBankAccount)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Bank Accounts
// @Success		204
// @Router			/v1/bank-accounts [options]
func OptionsBankAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Bank Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bank-accounts/{id} [options]
func OptionsBankAccountDetail(c *gin.Context) {
	optionsOwned[models.BankAccount](c, httputil.OptionsGetPatchDelete)
}

// balances computes the current balance of each of the accounts.
//
// All transactions for the accounts are loaded with a single query
// instead of calling BankAccount.Transactions for each account.
func balances(db *gorm.DB, accounts []models.BankAccount) (map[uint]decimal.Decimal, error) {
	result := make(map[uint]decimal.Decimal, len(accounts))
	if len(accounts) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	var transactions []models.Transaction
	err := db.Where("transactions.bank_account_id IN ?", ids).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	byAccount := make(map[uint][]models.Transaction, len(accounts))
	for _, t := range transactions {
		byAccount[*t.BankAccountID] = append(byAccount[*t.BankAccountID], t)
	}

	for _, a := range accounts {
		result[a.ID] = aggregate.Balance(a.InitialBalance, byAccount[a.ID])
	}

	return result, nil
}

// @Summary		Create bank accounts
// @Description	Creates new bank accounts. The response code is the highest response code number that a single creation would have caused.
// @Tags			Bank Accounts
// @Produce		json
// @Success		201				{object}	BankAccountCreateResponse
// @Failure		400				{object}	BankAccountCreateResponse
// @Failure		500				{object}	BankAccountCreateResponse
// @Param			bankAccounts	body		[]BankAccountEditable	true	"Bank accounts"
// @Router			/v1/bank-accounts [post]
func CreateBankAccounts(c *gin.Context) {
	var editables []BankAccountEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountCreateResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BankAccountCreateResponse{}

	for _, editable := range editables {
		account := editable.model(userID)
		err = models.DB.Create(&account).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// A new account has no transactions yet
		data := newBankAccount(c, account, account.InitialBalance)
		r.Data = append(r.Data, BankAccountResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List bank accounts
// @Description	Returns a list of bank accounts with their current balance
// @Tags			Bank Accounts
// @Produce		json
// @Success		200	{object}	BankAccountListResponse
// @Failure		400	{object}	BankAccountListResponse
// @Failure		500	{object}	BankAccountListResponse
// @Router			/v1/bank-accounts [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			type	query	string	false	"Filter by type"
// @Param			offset	query	uint	false	"The offset of the first bank account returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of bank accounts to return. Defaults to 50."
func GetBankAccounts(c *gin.Context) {
	var filter BankAccountQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BankAccountListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model(auth.UserID(c))

	q := models.DB.
		Order("bank_accounts.name ASC, bank_accounts.id ASC").
		Where(&models.BankAccount{UserID: model.UserID}).
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 accounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var accounts []models.BankAccount
	err := q.Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountListResponse{
			Error: &e,
		})
		return
	}

	current, err := balances(models.DB, accounts)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BankAccount, 0)
	for _, account := range accounts {
		data = append(data, newBankAccount(c, account, current[account.ID]))
	}

	c.JSON(http.StatusOK, BankAccountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get bank account
// @Description	Returns a specific bank account with its current balance
// @Tags			Bank Accounts
// @Produce		json
// @Success		200	{object}	BankAccountResponse
// @Failure		400	{object}	BankAccountResponse
// @Failure		403	{object}	BankAccountResponse
// @Failure		404	{object}	BankAccountResponse
// @Failure		500	{object}	BankAccountResponse
// @Param			id	path		URIID	true	"ID of the bank account"
// @Router			/v1/bank-accounts/{id} [get]
func GetBankAccount(c *gin.Context) {
	account, err := getOwned[models.BankAccount](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountResponse{
			Error: &e,
		})
		return
	}

	respondBankAccount(c, account)
}

// @Summary		Update bank account
// @Description	Updates a bank account. Only values to be updated need to be specified.
// @Tags			Bank Accounts
// @Accept			json
// @Produce		json
// @Success		200			{object}	BankAccountResponse
// @Failure		400			{object}	BankAccountResponse
// @Failure		403			{object}	BankAccountResponse
// @Failure		404			{object}	BankAccountResponse
// @Failure		500			{object}	BankAccountResponse
// @Param			id			path		URIID				true	"ID of the bank account"
// @Param			bankAccount	body		BankAccountEditable	true	"Bank account"
// @Router			/v1/bank-accounts/{id} [patch]
func UpdateBankAccount(c *gin.Context) {
	account, err := getOwned[models.BankAccount](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, BankAccountEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var data BankAccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountResponse{
			Error: &e,
		})
		return
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&account).Select("", updateFields...).Updates(data.model(account.UserID)).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BankAccountResponse{
				Error: &e,
			})
			return
		}
	}

	respondBankAccount(c, account)
}

// @Summary		Delete bank account
// @Description	Deletes a bank account together with all of its transactions
// @Tags			Bank Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the bank account"
// @Router			/v1/bank-accounts/{id} [delete]
func DeleteBankAccount(c *gin.Context) {
	account, err := getOwned[models.BankAccount](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.Transaction{BankAccountID: &account.ID}).Delete(&models.Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&account).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// respondBankAccount sends the account with its current balance.
func respondBankAccount(c *gin.Context, account models.BankAccount) {
	transactions, err := account.Transactions(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankAccountResponse{
			Error: &e,
		})
		return
	}

	data := newBankAccount(c, account, aggregate.Balance(account.InitialBalance, transactions))
	c.JSON(http.StatusOK, BankAccountResponse{Data: &data})
}
