package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

// Price renders a decimal amount the way templates display it, e.g. "$25.00".
func Price(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}
