package models

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// DefaultCategories are always present and cannot be deleted.
var DefaultCategories = []string{
	"Food", "Transport", "Utilities", "Salary", "Entertainment",
	"Shopping", "Rent", "Health", "Education", "Investments",
	"Gifts", "Other",
}

// Category is a transaction label. Transactions reference categories
// by name, not by ID, so deleting a category leaves existing
// transactions untouched.
type Category struct {
	DefaultModel
	Name      string `json:"name" example:"Food" gorm:"uniqueIndex:category_name"`
	Protected bool   `json:"protected" example:"true"` // Protected categories cannot be deleted
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrCategoryNameRequired
	}

	return nil
}

// BeforeDelete rejects deletion of protected categories regardless of
// any confirmation the caller may have collected.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var category Category
	err := tx.First(&category, c.ID).Error
	if err != nil {
		return err
	}

	if category.Protected {
		return ErrCategoryProtected
	}

	return nil
}

// CategoryNames returns all category names sorted lexicographically.
func CategoryNames(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Model(&Category{}).Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}

	collate.New(language.English).SortStrings(names)
	return names, nil
}

// seedDefaultCategories makes sure every default category exists and
// is protected. User-created categories are left alone.
func seedDefaultCategories(db *gorm.DB) error {
	for _, name := range DefaultCategories {
		var category Category
		err := db.Where(&Category{Name: name}).
			Attrs(Category{Protected: true}).
			FirstOrCreate(&category).Error
		if err != nil {
			return err
		}

		if !category.Protected {
			err = db.Model(&category).Update("protected", true).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}
