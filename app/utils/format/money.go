package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var money = accounting.Accounting{Symbol: "$", Precision: 2}

// Money renders an amount for human-facing output such as emails.
func Money(amount decimal.Decimal) string {
	return money.FormatMoneyDecimal(amount)
}
