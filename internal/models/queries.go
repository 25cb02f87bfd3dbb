package models

import (
	"github.com/expansepro/backend/internal/types"
	"gorm.io/gorm"
)

// Read helpers over the transaction collection. All of them return
// transactions in insertion order, which downstream aggregation relies
// on for deterministic tie-breaking; presentation layers sort at the
// boundary.

// TransactionsForDay returns all transactions dated exactly on the day.
func TransactionsForDay(db *gorm.DB, day types.Day) ([]Transaction, error) {
	var transactions []Transaction
	err := db.Where("date = ?", day).Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}

// TransactionsForMonth returns all transactions dated within the month.
func TransactionsForMonth(db *gorm.DB, month types.Month) ([]Transaction, error) {
	var transactions []Transaction
	err := db.Where("date >= ? AND date <= ?", month.First(), month.Last()).
		Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}

// TransactionsForYear returns all transactions dated within the year.
func TransactionsForYear(db *gorm.DB, year int) ([]Transaction, error) {
	var transactions []Transaction
	err := db.Where("date >= ? AND date <= ?", types.NewDay(year, 1, 1), types.NewDay(year, 12, 31)).
		Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}

// AllTransactions returns every transaction in insertion order.
func AllTransactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction
	err := db.Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}
