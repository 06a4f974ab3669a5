package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.DELETE("/:id", DeleteBudget)
		r.OPTIONS("/:id/progress", OptionsBudgetProgress)
		r.GET("/:id/progress", GetBudgetProgress)
	}
}

// orderedItems preloads the budget items in the order they were created.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("budget_items.id ASC")
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	optionsOwned[models.Budget](c, httputil.OptionsGetDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/progress [options]
func OptionsBudgetProgress(c *gin.Context) {
	optionsOwned[models.Budget](c, httputil.OptionsGet)
}

// @Summary		Create budgets
// @Description	Creates budgets together with their items. The categories of all items are added to the categories of the user. The response code is the highest response code number that a single creation would have caused.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model(userID)

		// The budget and its items are created together or not at all
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&budget).Error
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		registerCategories(c, userID, budget.Categories()...)

		data := newBudget(c, budget)
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List budgets
// @Description	Returns a list of budgets with their items, the most recently created first
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model(auth.UserID(c))

	q := models.DB.
		Order("budgets.created_at DESC, budgets.id DESC").
		Where(&models.Budget{UserID: model.UserID}).
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 budgets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Preload("Items", orderedItems).Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget with its items
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		403	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ID of the budget"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	budget, err := getBudgetWithItems(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budget
// @Description	Deletes a budget together with its items
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the budget"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	budget, err := getOwned[models.Budget](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Select("Items").Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get budget progress
// @Description	Returns the spending progress for each item of the budget. All expenses from the start date to the end of the end date with the exact category of an item are counted as spent.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetProgressResponse
// @Failure		400	{object}	BudgetProgressResponse
// @Failure		403	{object}	BudgetProgressResponse
// @Failure		404	{object}	BudgetProgressResponse
// @Failure		500	{object}	BudgetProgressResponse
// @Param			id	path		URIID	true	"ID of the budget"
// @Router			/v1/budgets/{id}/progress [get]
func GetBudgetProgress(c *gin.Context) {
	budget, err := getBudgetWithItems(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &e,
		})
		return
	}

	var transactions []models.Transaction
	err = models.DB.
		Where(&models.Transaction{UserID: budget.UserID, Type: models.TransactionExpense}).
		Where("transactions.date >= ?", types.StartOfDay(budget.StartDate)).
		Where("transactions.date < ?", types.EndOfDayExclusive(budget.EndDate)).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetProgressResponse{
		Data: &BudgetProgress{
			Budget: BudgetSummary{
				ID:        budget.ID,
				Name:      budget.Name,
				StartDate: types.Date(budget.StartDate),
				EndDate:   types.Date(budget.EndDate),
			},
			Progress: aggregate.BudgetProgress(budget.Items, transactions),
		},
	})
}

// getBudgetWithItems loads the budget for the ID in the URI and its items.
func getBudgetWithItems(c *gin.Context) (models.Budget, error) {
	budget, err := getOwned[models.Budget](c)
	if err != nil {
		return budget, err
	}

	err = models.DB.Where(&models.BudgetItem{BudgetID: budget.ID}).Order("budget_items.id ASC").Find(&budget.Items).Error
	return budget, err
}
