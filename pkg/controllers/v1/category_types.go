package v1

import (
	"fmt"
	neturl "net/url"

	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type CategoryEditable struct {
	Name string `json:"name" example:"Groceries"` // Name of the category
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/9"`                            // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Groceries"` // Transactions with this category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name: model.Name,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%d", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, neturl.QueryEscape(model.Name)),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                     // List of categories
	Error *string    `json:"error" example:"there is no category matching your query"` // The error, if any occurred
}

type CategoryResponse struct {
	Error *string   `json:"error" example:"the category name must not be empty"` // The error, if any occurred
	Data  *Category `json:"data"`                                                // Data for the category
}
