package v1

import (
	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	directionIncome  = "income"
	directionExpense = "expense"
)

// TransactionEditable holds all fields a client can set.
type TransactionEditable struct {
	Description string          `json:"description" example:"Lunch"`
	Amount      decimal.Decimal `json:"amount" example:"14.03"`
	Date        types.Day       `json:"date" example:"2024-03-10"`
	Category    string          `json:"category" example:"Food"`
	Direction   string          `json:"direction,omitempty" enums:"income,expense" example:"expense"` // Normalizes the sign of Amount. When empty, the sign is stored as sent.
}

func (editable TransactionEditable) model() models.Transaction {
	amount := editable.Amount
	switch editable.Direction {
	case directionExpense:
		amount = amount.Abs().Neg()
	case directionIncome:
		amount = amount.Abs()
	}

	return models.Transaction{
		Description: editable.Description,
		Amount:      amount,
		Date:        editable.Date,
		Category:    editable.Category,
	}
}

func newTransactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		Description: model.Description,
		Amount:      model.Amount,
		Date:        model.Date,
		Category:    model.Category,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/v1/transactions/d1397e86-a3f5-4f4c-a3b8-d482d0c812ae"`
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	return Transaction{
		Transaction: model,
		Links: TransactionLinks{
			Self: httputil.RequestPathV1(c) + "/transactions/" + model.ID.String(),
		},
	}
}

// TransactionQueryFilter narrows the transaction list down.
type TransactionQueryFilter struct {
	Month     string `form:"month"`     // Only transactions in this YYYY-MM month
	Category  string `form:"category"`  // Only transactions with this category
	Direction string `form:"direction"` // "income" or "expense"
}
