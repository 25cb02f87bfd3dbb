package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrTransactionNoDescription = errors.New("transactions must have a description")
	ErrTransactionNoDate        = errors.New("transactions must have a date")
	ErrTransactionNoCategory    = errors.New("transactions must have a category")
	ErrTransactionAmountZero    = errors.New("transaction amounts must not be zero")

	ErrTemplateNoRecurrence   = errors.New("recurring templates must have a recurrence of weekly or monthly")
	ErrTemplateEndBeforeStart = errors.New("the recurrence end date must not be before the start date")

	ErrBudgetLimitNotPositive = errors.New("budget limits must be larger than zero")
	ErrBudgetNotUnique        = errors.New("there is already a budget for this category and month")

	ErrCategoryNameRequired  = errors.New("categories must have a name")
	ErrCategoryNameNotUnique = errors.New("a category with this name already exists")
	ErrCategoryProtected     = errors.New("default categories cannot be deleted")
)
