package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeriveMonthlyFinancials produces the ordered monthly timeline for a target
// year from the three parsed collections. ref is the "now" used to cut off
// future months: a year after ref's year yields nothing, and ref's own year
// stops at ref's month. The deriver is a pure function and never fails;
// months without a balance snapshot come back with zero revenue/balance and
// HasData false.
//
// Revenue is never present in the sources. For months that do have a balance
// snapshot it is solved from the balance identity
//
//	ending = starting + revenue - expenses
//
// using the latest snapshot inside the month as ending balance and the latest
// snapshot dated at or before the end of the previous month as starting
// balance.
func DeriveMonthlyFinancials(data DashboardData, year int, ref time.Time) []MonthlyFinancial {
	var months []MonthlyFinancial
	for i := 0; i < 12; i++ {
		if year > ref.Year() {
			continue
		}
		if year == ref.Year() && i > int(ref.Month())-1 {
			continue
		}

		current, hasData := latestBalanceInMonth(data.AccountBalances, year, i)

		// End of the month preceding i; for January this lands on
		// December 31st of the previous year.
		prevEnd := time.Date(year, time.Month(i+1), 0, 0, 0, 0, 0, time.UTC)
		previous, _ := latestBalanceUpTo(data.AccountBalances, prevEnd)

		expenses := totalExpensesForMonth(data.Expenses, i)

		revenue := decimal.Zero
		if hasData {
			revenue = current.Sub(previous).Add(expenses)
		}

		totalFunds := decimal.Zero
		for _, f := range data.Funds {
			if f.Date.InMonth(year, i) {
				totalFunds = totalFunds.Add(f.CurrentValue)
			}
		}

		months = append(months, MonthlyFinancial{
			MonthIndex: i,
			Name:       MonthNames[i],
			Revenue:    revenue,
			Expenses:   expenses,
			Balance:    current,
			TotalFunds: totalFunds,
			NetWorth:   current.Add(totalFunds),
			HasData:    hasData,
		})
	}
	return months
}

// latestBalanceInMonth returns the balance of the latest-dated snapshot
// inside the given month, or zero and false when the month has none. Ties on
// the date keep the first record in source order.
func latestBalanceInMonth(records []AccountBalanceRecord, year, monthIndex int) (decimal.Decimal, bool) {
	var (
		best  AccountBalanceRecord
		found bool
	)
	for _, r := range records {
		if !r.Date.InMonth(year, monthIndex) {
			continue
		}
		if !found || r.Date.After(best.Date.Time) {
			best = r
			found = true
		}
	}
	if !found {
		return decimal.Zero, false
	}
	return best.Balance, true
}

// latestBalanceUpTo returns the balance of the latest-dated snapshot at or
// before the cutoff, regardless of which month or year it belongs to.
func latestBalanceUpTo(records []AccountBalanceRecord, cutoff time.Time) (decimal.Decimal, bool) {
	var (
		best  AccountBalanceRecord
		found bool
	)
	for _, r := range records {
		if r.Date.After(cutoff) {
			continue
		}
		if !found || r.Date.After(best.Date.Time) {
			best = r
			found = true
		}
	}
	if !found {
		return decimal.Zero, false
	}
	return best.Balance, true
}

// totalExpensesForMonth sums the month column across every category row.
// Expenses come from their own export, so the sum is meaningful even for
// months without a balance snapshot.
func totalExpensesForMonth(rows []ExpenseRow, monthIndex int) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Values[monthIndex])
	}
	return total
}
