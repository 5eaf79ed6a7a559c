package model

import "github.com/shopspring/decimal"

// Sign classifies a net amount.
type Sign string

const (
	SignProfit Sign = "Profit"
	SignLoss   Sign = "Loss"
)

// SignOf returns Profit for net >= 0 and Loss otherwise.
func SignOf(net decimal.Decimal) Sign {
	if net.IsNegative() {
		return SignLoss
	}
	return SignProfit
}

// Totals holds the statement-wide sums.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyEntry is one calendar month of the summary.
type MonthlyEntry struct {
	Label    string          `json:"month"` // "March 2024"
	Year     int             `json:"year"`
	Month    int             `json:"-"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Sign     Sign            `json:"sign"`
}
