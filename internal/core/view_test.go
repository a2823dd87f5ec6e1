package core

import (
	"testing"
	"time"
)

func TestKPIsAccumulated(t *testing.T) {
	months := DeriveMonthlyFinancials(fixtureData(), 2024, ref)
	kpi := KPIs(months, Accumulated(), 2024)

	// Jan: revenue = (1000-0)+200 = 1200; Feb: 800. March onward has no data.
	if !kpi.Revenue.Equal(dec("2000")) {
		t.Fatalf("expected accumulated revenue 2000, got %s", kpi.Revenue)
	}
	if !kpi.Expenses.Equal(dec("500")) {
		t.Fatalf("expected accumulated expenses 500, got %s", kpi.Expenses)
	}
	// Balance and net worth are snapshots from the last month with data.
	if !kpi.Balance.Equal(dec("1500")) {
		t.Fatalf("expected balance 1500, got %s", kpi.Balance)
	}
	if !kpi.NetWorth.Equal(dec("6500")) {
		t.Fatalf("expected net worth 6500, got %s", kpi.NetWorth)
	}
	if kpi.Label != "Acumulado 2024" {
		t.Fatalf("unexpected label %q", kpi.Label)
	}
}

func TestKPIsSingleMonth(t *testing.T) {
	months := DeriveMonthlyFinancials(fixtureData(), 2024, ref)

	kpi := KPIs(months, SpecificMonth(1), 2024)
	if !kpi.Revenue.Equal(dec("800")) || !kpi.Balance.Equal(dec("1500")) {
		t.Fatalf("unexpected February KPIs: %+v", kpi)
	}
	if kpi.Label != "Fev/2024" {
		t.Fatalf("unexpected label %q", kpi.Label)
	}

	// A month missing from the series reads as zeros.
	empty := KPIs(nil, SpecificMonth(6), 2024)
	if !empty.Revenue.IsZero() || !empty.Balance.IsZero() {
		t.Fatalf("expected zero KPIs for an absent month: %+v", empty)
	}
}

func TestEvolutionSeriesSkipsMonthsWithoutData(t *testing.T) {
	months := DeriveMonthlyFinancials(fixtureData(), 2024, ref)

	evo := EvolutionSeries(months)
	if len(evo) != 2 {
		t.Fatalf("expected 2 evolution points, got %d", len(evo))
	}
	if evo[0].Name != "Jan" || evo[1].Name != "Fev" {
		t.Fatalf("unexpected point names: %+v", evo)
	}

	bal := BalanceSeries(months)
	if len(bal) != 2 {
		t.Fatalf("expected 2 balance points, got %d", len(bal))
	}
	if !bal[1].Balance.Equal(dec("1500")) {
		t.Fatalf("expected 1500, got %s", bal[1].Balance)
	}
}

func TestExpenseCompositionAccumulated(t *testing.T) {
	data := fixtureData()
	data.Expenses = []ExpenseRow{
		expenseRow("Limpeza", "200", "300", "150"),
		expenseRow("Energia", "50", "75", "999"),
		expenseRow("Vazio"),
	}
	months := DeriveMonthlyFinancials(data, 2024, ref)

	slices := ExpenseComposition(data.Expenses, months, Accumulated())
	if len(slices) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(slices))
	}
	// Only Jan and Feb have data; March's values stay out of the sums.
	if slices[0].Name != "Limpeza" || !slices[0].Value.Equal(dec("500")) {
		t.Fatalf("unexpected first slice: %+v", slices[0])
	}
	if slices[1].Name != "Energia" || !slices[1].Value.Equal(dec("125")) {
		t.Fatalf("unexpected second slice: %+v", slices[1])
	}
}

func TestExpenseCompositionSingleMonth(t *testing.T) {
	data := fixtureData()
	data.Expenses = []ExpenseRow{
		expenseRow("Limpeza", "200", "300"),
		expenseRow("Energia", "50", "400"),
	}
	months := DeriveMonthlyFinancials(data, 2024, ref)

	slices := ExpenseComposition(data.Expenses, months, SpecificMonth(1))
	if len(slices) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(slices))
	}
	// Sorted descending by value.
	if slices[0].Name != "Energia" || !slices[0].Value.Equal(dec("400")) {
		t.Fatalf("unexpected ordering: %+v", slices)
	}
}

func TestFundCompositionRanking(t *testing.T) {
	data := DashboardData{
		Funds: []FundRecord{
			{Date: NewDate(2024, 5, 10), FundName: "Fundo B", CurrentValue: dec("-200")},
			{Date: NewDate(2024, 5, 10), FundName: "Fundo A", CurrentValue: dec("5000")},
			{Date: NewDate(2024, 4, 10), FundName: "Outro Mês", CurrentValue: dec("9999")},
		},
		AccountBalances: []AccountBalanceRecord{
			{Date: NewDate(2024, 5, 2), Balance: dec("100")},
		},
	}
	months := DeriveMonthlyFinancials(data, 2024, ref)

	// Accumulated resolves to the last month with data: May.
	entries := FundComposition(data.Funds, months, Accumulated(), 2024)
	if len(entries) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(entries))
	}
	if entries[0].Name != "Fundo A" || entries[1].Name != "Fundo B" {
		t.Fatalf("expected descending order, got %+v", entries)
	}
	if entries[0].Negative || !entries[1].Negative {
		t.Fatalf("expected only Fundo B flagged negative: %+v", entries)
	}
}

func TestFundCompositionNoValidMonth(t *testing.T) {
	data := DashboardData{
		Funds: []FundRecord{
			{Date: NewDate(2024, 5, 10), FundName: "Fundo A", CurrentValue: dec("5000")},
		},
	}
	months := DeriveMonthlyFinancials(data, 2024, ref)
	if entries := FundComposition(data.Funds, months, Accumulated(), 2024); len(entries) != 0 {
		t.Fatalf("expected empty composition without a valid month, got %+v", entries)
	}

	// A specific month still works without any balance snapshot.
	entries := FundComposition(data.Funds, months, SpecificMonth(4), 2024)
	if len(entries) != 1 || entries[0].Name != "Fundo A" {
		t.Fatalf("expected Fundo A for May, got %+v", entries)
	}
}

func TestAvailableYears(t *testing.T) {
	data := DashboardData{
		Funds: []FundRecord{
			{Date: NewDate(2023, 5, 10), FundName: "A", CurrentValue: dec("1")},
		},
		AccountBalances: []AccountBalanceRecord{
			{Date: NewDate(2024, 1, 1), Balance: dec("1")},
			{Date: NewDate(2022, 1, 1), Balance: dec("1")},
		},
	}
	years := AvailableYears(data, ref)
	if len(years) != 3 || years[0] != 2024 || years[1] != 2023 || years[2] != 2022 {
		t.Fatalf("expected [2024 2023 2022], got %v", years)
	}

	fallback := AvailableYears(DashboardData{}, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if len(fallback) != 1 || fallback[0] != 2026 {
		t.Fatalf("expected fallback to the reference year, got %v", fallback)
	}
}

func TestBuildDashboardView(t *testing.T) {
	view := BuildDashboardView(fixtureData(), 2024, Accumulated(), ref)
	if view.Year != 2024 {
		t.Fatalf("expected year 2024, got %d", view.Year)
	}
	if len(view.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(view.Months))
	}
	if !view.KPIs.Revenue.Equal(dec("2000")) {
		t.Fatalf("expected KPI revenue 2000, got %s", view.KPIs.Revenue)
	}
	if len(view.Evolution) != 2 || len(view.BalanceEvolution) != 2 {
		t.Fatalf("expected 2-point series, got %d/%d", len(view.Evolution), len(view.BalanceEvolution))
	}
	if len(view.FundComposition) != 1 {
		t.Fatalf("expected 1 fund entry, got %d", len(view.FundComposition))
	}
}
