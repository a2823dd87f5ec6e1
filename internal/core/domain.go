package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthNames holds the pt-BR short month labels used across charts and KPI labels.
var MonthNames = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

type (
	// Date is a day-precision calendar date.
	Date struct {
		time.Time
	}

	// ExpenseRow is one category line from the expenses export. Values is
	// indexed by calendar month, 0 = January. Rows are immutable once parsed.
	ExpenseRow struct {
		Category string
		Values   [12]decimal.Decimal
	}

	// FundRecord is one investment fund position at a given date. Balance is
	// the fund's own ledger balance; CurrentValue is the market value and is
	// what derivation consumes.
	FundRecord struct {
		Date         Date
		FundName     string
		Balance      decimal.Decimal
		CurrentValue decimal.Decimal
	}

	// AccountBalanceRecord is a point-in-time snapshot of the ordinary
	// account. Several snapshots may fall in the same month; the latest one
	// wins during derivation.
	AccountBalanceRecord struct {
		Date    Date
		Balance decimal.Decimal
	}

	// DashboardData holds the three parsed collections for the loaded
	// dataset. The collections are independent: replacing one leaves the
	// others untouched and no cross-validation happens between them.
	DashboardData struct {
		Expenses        []ExpenseRow
		Funds           []FundRecord
		AccountBalances []AccountBalanceRecord
	}

	// MonthlyFinancial is one derived month of the financial timeline.
	// Revenue and Balance are only meaningful when HasData is true; Expenses
	// comes from an independent source and is always meaningful.
	MonthlyFinancial struct {
		MonthIndex int             `json:"monthIndex"`
		Name       string          `json:"name"`
		Revenue    decimal.Decimal `json:"revenue"`
		Expenses   decimal.Decimal `json:"expenses"`
		Balance    decimal.Decimal `json:"balance"`
		TotalFunds decimal.Decimal `json:"totalFunds"`
		NetWorth   decimal.Decimal `json:"netWorth"`
		HasData    bool            `json:"hasData"`
	}
)

// NewDate builds a Date from a year, 1-based month and day, at midnight UTC.
// Out-of-range values normalize the same way time.Date does.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// MonthIndex returns the 0-based calendar month of the date.
func (d Date) MonthIndex() int {
	return int(d.Time.Month()) - 1
}

// InMonth reports whether the date falls within the given year and 0-based
// month index.
func (d Date) InMonth(year, monthIndex int) bool {
	return d.Year() == year && d.MonthIndex() == monthIndex
}
