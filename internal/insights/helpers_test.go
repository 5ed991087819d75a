package insights

import (
	"time"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

// 2025-06-15 is a Sunday.
var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tx(typ core.TxType, amount int64, category string, y, m, d int) core.Transaction {
	return core.Transaction{
		Amount:   decimal.NewFromInt(amount),
		Type:     typ,
		Category: category,
		Date:     core.NewDate(y, m, d),
	}
}

func expense(amount int64, category string, y, m, d int) core.Transaction {
	return tx(core.Expense, amount, category, y, m, d)
}

func income(amount int64, y, m, d int) core.Transaction {
	return tx(core.Income, amount, "Salary", y, m, d)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
