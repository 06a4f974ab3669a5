package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Category is a name used for transactions and budget items.
//
// It is only a lookup aid. Transactions reference categories by name,
// categories that have no Category are still valid.
type Category struct {
	DefaultModel
	UserID uint   `gorm:"uniqueIndex:category_user_name"`
	User   User   `json:"-"`
	Name   string `gorm:"uniqueIndex:category_user_name"`
}

var (
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
)

// OwnerID returns the ID of the user owning the category.
func (c Category) OwnerID() uint {
	return c.UserID
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}

// UpsertCategory creates the category with the given name for the user.
// If it already exists, only its update timestamp is changed.
func UpsertCategory(db *gorm.DB, userID uint, name string) (Category, error) {
	category := Category{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&category).Error
	if err != nil {
		return Category{}, err
	}

	// Read the resource back since the ID is not reliable for updates on conflict
	var stored Category
	err = db.Where(&Category{UserID: userID, Name: category.Name}).First(&stored).Error
	return stored, err
}

// RegisterCategories upserts all non-empty names as categories for the user.
func RegisterCategories(db *gorm.DB, userID uint, names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		_, err := UpsertCategory(db, userID, name)
		if err != nil {
			return err
		}
	}

	return nil
}
