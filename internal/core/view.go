package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthSelection picks between a single month and the whole-year
// "Acumulado" view. The zero value is the accumulated selection.
type MonthSelection struct {
	specific bool
	month    int
}

// Accumulated selects every valid month of the year.
func Accumulated() MonthSelection {
	return MonthSelection{}
}

// SpecificMonth selects a single 0-based month index.
func SpecificMonth(monthIndex int) MonthSelection {
	return MonthSelection{specific: true, month: monthIndex}
}

// IsAccumulated reports whether the whole year is selected.
func (s MonthSelection) IsAccumulated() bool {
	return !s.specific
}

// Month returns the selected month index; ok is false for the accumulated
// selection.
func (s MonthSelection) Month() (monthIndex int, ok bool) {
	return s.month, s.specific
}

type (
	// KPISet holds the four headline figures plus the period label shown
	// next to them.
	KPISet struct {
		Revenue  decimal.Decimal `json:"revenue"`
		Expenses decimal.Decimal `json:"expenses"`
		Balance  decimal.Decimal `json:"balance"`
		NetWorth decimal.Decimal `json:"netWorth"`
		Label    string          `json:"label"`
	}

	// EvolutionPoint is one month of the revenue-vs-expenses chart.
	EvolutionPoint struct {
		Name     string          `json:"name"`
		Revenue  decimal.Decimal `json:"revenue"`
		Expenses decimal.Decimal `json:"expenses"`
	}

	// BalancePoint is one month of the ordinary-account balance chart.
	BalancePoint struct {
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
	}

	// CategorySlice is one category of the expense composition breakdown.
	CategorySlice struct {
		Name  string          `json:"name"`
		Value decimal.Decimal `json:"value"`
	}

	// FundEntry is one fund of the fund composition ranking. Negative marks
	// funds holding a negative current value so the presentation can flag
	// them.
	FundEntry struct {
		Name         string          `json:"name"`
		CurrentValue decimal.Decimal `json:"currentValue"`
		Negative     bool            `json:"negative"`
	}

	// DashboardView bundles everything the presentation renders for one
	// (year, selection) pair.
	DashboardView struct {
		Year               int                `json:"year"`
		Months             []MonthlyFinancial `json:"months"`
		KPIs               KPISet             `json:"kpis"`
		Evolution          []EvolutionPoint   `json:"evolution"`
		BalanceEvolution   []BalancePoint     `json:"balanceEvolution"`
		ExpenseComposition []CategorySlice    `json:"expenseComposition"`
		FundComposition    []FundEntry        `json:"fundComposition"`
	}
)

// KPIs computes the headline figures for the selection. Accumulated mode sums
// revenue and expenses over months with data and takes balance and net worth
// from the last such month, since those are point-in-time snapshots, not
// flows. Single-month mode reads the one matching record, zeros when the
// month is absent from the series.
func KPIs(months []MonthlyFinancial, sel MonthSelection, year int) KPISet {
	if idx, ok := sel.Month(); ok {
		label := fmt.Sprintf("%d/%d", idx+1, year)
		if idx >= 0 && idx < 12 {
			label = fmt.Sprintf("%s/%d", MonthNames[idx], year)
		}
		kpi := KPISet{
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
			Balance:  decimal.Zero,
			NetWorth: decimal.Zero,
			Label:    label,
		}
		for _, m := range months {
			if m.MonthIndex == idx {
				kpi.Revenue = m.Revenue
				kpi.Expenses = m.Expenses
				kpi.Balance = m.Balance
				kpi.NetWorth = m.NetWorth
				break
			}
		}
		return kpi
	}

	kpi := KPISet{
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
		Balance:  decimal.Zero,
		NetWorth: decimal.Zero,
		Label:    fmt.Sprintf("Acumulado %d", year),
	}
	for _, m := range months {
		if !m.HasData {
			continue
		}
		kpi.Revenue = kpi.Revenue.Add(m.Revenue)
		kpi.Expenses = kpi.Expenses.Add(m.Expenses)
		kpi.Balance = m.Balance
		kpi.NetWorth = m.NetWorth
	}
	return kpi
}

// EvolutionSeries builds the revenue/expenses chart series. Months without a
// balance snapshot are omitted entirely rather than plotted as zero.
func EvolutionSeries(months []MonthlyFinancial) []EvolutionPoint {
	var points []EvolutionPoint
	for _, m := range months {
		if !m.HasData {
			continue
		}
		points = append(points, EvolutionPoint{Name: m.Name, Revenue: m.Revenue, Expenses: m.Expenses})
	}
	return points
}

// BalanceSeries builds the account-balance chart series, again restricted to
// months that actually have a snapshot.
func BalanceSeries(months []MonthlyFinancial) []BalancePoint {
	var points []BalancePoint
	for _, m := range months {
		if !m.HasData {
			continue
		}
		points = append(points, BalancePoint{Name: m.Name, Balance: m.Balance})
	}
	return points
}

// ExpenseComposition breaks expenses down per category for the selection.
// Accumulated mode sums each category only across months flagged with data,
// keeping the breakdown consistent with the months the charts display.
// Categories with a total of zero or less are excluded; the result is sorted
// by value, largest first.
func ExpenseComposition(rows []ExpenseRow, months []MonthlyFinancial, sel MonthSelection) []CategorySlice {
	var slices []CategorySlice
	if idx, ok := sel.Month(); ok {
		if idx < 0 || idx > 11 {
			return nil
		}
		for _, row := range rows {
			if v := row.Values[idx]; v.IsPositive() {
				slices = append(slices, CategorySlice{Name: row.Category, Value: v})
			}
		}
	} else {
		withData := make(map[int]bool, len(months))
		for _, m := range months {
			if m.HasData {
				withData[m.MonthIndex] = true
			}
		}
		for _, row := range rows {
			total := decimal.Zero
			for i, v := range row.Values {
				if withData[i] {
					total = total.Add(v)
				}
			}
			if total.IsPositive() {
				slices = append(slices, CategorySlice{Name: row.Category, Value: total})
			}
		}
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})
	return slices
}

// FundComposition ranks fund positions for the selection. Funds are
// snapshots, so accumulated mode shows the last month with data instead of
// summing; when no month has data the result is empty. The ranking is sorted
// by current value, largest first.
func FundComposition(funds []FundRecord, months []MonthlyFinancial, sel MonthSelection, year int) []FundEntry {
	target, ok := sel.Month()
	if !ok {
		target = -1
		for _, m := range months {
			if m.HasData {
				target = m.MonthIndex
			}
		}
	}
	if target < 0 {
		return nil
	}

	var entries []FundEntry
	for _, f := range funds {
		if !f.Date.InMonth(year, target) {
			continue
		}
		entries = append(entries, FundEntry{
			Name:         f.FundName,
			CurrentValue: f.CurrentValue,
			Negative:     f.CurrentValue.IsNegative(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CurrentValue.GreaterThan(entries[j].CurrentValue)
	})
	return entries
}

// AvailableYears lists the distinct years present in the dated collections,
// newest first. An empty dataset falls back to ref's year so the presentation
// always has something to select.
func AvailableYears(data DashboardData, ref time.Time) []int {
	seen := make(map[int]bool)
	for _, r := range data.AccountBalances {
		seen[r.Date.Year()] = true
	}
	for _, f := range data.Funds {
		seen[f.Date.Year()] = true
	}
	if len(seen) == 0 {
		seen[ref.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// BuildDashboardView derives the monthly series for the year and projects
// every KPI and chart for the selection in one pass.
func BuildDashboardView(data DashboardData, year int, sel MonthSelection, ref time.Time) DashboardView {
	months := DeriveMonthlyFinancials(data, year, ref)
	return DashboardView{
		Year:               year,
		Months:             months,
		KPIs:               KPIs(months, sel, year),
		Evolution:          EvolutionSeries(months),
		BalanceEvolution:   BalanceSeries(months),
		ExpenseComposition: ExpenseComposition(data.Expenses, months, sel),
		FundComposition:    FundComposition(data.Funds, months, sel, year),
	}
}
