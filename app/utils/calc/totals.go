package calc

import (
	"github.com/shopspring/decimal"

	"github.com/bulanstore/bulan-api/app/configs"
)

var hundred = decimal.NewFromInt(100)

func TaxPercent() decimal.Decimal {
	percent, err := decimal.NewFromString(configs.LoadENV.TaxPercent)
	if err != nil {
		return decimal.Zero
	}
	return percent
}

func LineSubtotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

func CalculateTax(base, taxPercent decimal.Decimal) decimal.Decimal {
	return base.Mul(taxPercent).Div(hundred).Round(2)
}

func CalculateGrandTotal(base, taxAmount decimal.Decimal) decimal.Decimal {
	return base.Add(taxAmount).Round(2)
}
