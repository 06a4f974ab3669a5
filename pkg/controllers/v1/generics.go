package v1

import (
	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// ownedModel is a resource that belongs to a single user.
type ownedModel interface {
	models.Transaction | models.BankAccount | models.Budget | models.Category
	OwnerID() uint
}

// getOwned binds the ID from the URI and loads the resource for it.
//
// It returns models.ErrNotAuthorized when the resource belongs to a different
// user than the one making the request.
func getOwned[T ownedModel](c *gin.Context) (T, error) {
	var resource T

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return resource, err
	}

	err := models.DB.First(&resource, uri.ID).Error
	if err != nil {
		return resource, err
	}

	if resource.OwnerID() != auth.UserID(c) {
		return resource, models.ErrNotAuthorized
	}

	return resource, nil
}

// optionsOwned verifies that the resource exists and is owned by the
// requesting user before the allowed methods are sent.
func optionsOwned[T ownedModel](c *gin.Context, allow gin.HandlerFunc) {
	_, err := getOwned[T](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	allow(c)
}
