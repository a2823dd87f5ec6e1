package core

import (
	"encoding/csv"
	"io"
	"strings"
)

// The exports are semicolon-separated with an optional header line. Header
// presence is a heuristic: when the first column of the first record contains
// the keyword (case-insensitive), that record is skipped, otherwise every
// record is data.
const (
	expensesHeaderKeyword = "categoria"
	datedHeaderKeyword    = "data"
)

// readRecords splits raw export text into field slices. Records with uneven
// column counts are kept as-is; unreadable records and blank lines are
// dropped so one bad line never aborts the whole parse.
func readRecords(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func hasHeader(records [][]string, keyword string) bool {
	if len(records) == 0 || len(records[0]) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(records[0][0]), keyword)
}

// ParseExpensesCSV parses the monthly category expenses export. Each line is
// `Categoria;Jan;...;Dez`; month columns are parsed as currency in order and
// the row is normalized to exactly 12 values, zero-filling missing trailing
// months. Lines with fewer than 2 columns are dropped.
func ParseExpensesCSV(text string) []ExpenseRow {
	records := readRecords(text)
	start := 0
	if hasHeader(records, expensesHeaderKeyword) {
		start = 1
	}

	var rows []ExpenseRow
	for _, rec := range records[start:] {
		if len(rec) < 2 {
			continue
		}
		row := ExpenseRow{Category: strings.TrimSpace(rec[0])}
		for j := 1; j < len(rec) && j <= 12; j++ {
			row.Values[j-1] = ParseCurrency(rec[j])
		}
		rows = append(rows, row)
	}
	return rows
}

// ParseFundsCSV parses the investment fund positions export, one
// `DD/MM/YYYY;Fundo;Saldo;ValorAtual` record per line. Lines with fewer than
// 4 columns or an unparseable date are dropped.
func ParseFundsCSV(text string) []FundRecord {
	records := readRecords(text)
	start := 0
	if hasHeader(records, datedHeaderKeyword) {
		start = 1
	}

	var funds []FundRecord
	for _, rec := range records[start:] {
		if len(rec) < 4 {
			continue
		}
		date, ok := ParseDate(rec[0])
		if !ok {
			continue
		}
		funds = append(funds, FundRecord{
			Date:         date,
			FundName:     strings.TrimSpace(rec[1]),
			Balance:      ParseCurrency(rec[2]),
			CurrentValue: ParseCurrency(rec[3]),
		})
	}
	return funds
}

// ParseBalancesCSV parses the ordinary-account snapshot export, one
// `DD/MM/YYYY;Saldo` record per line. Lines with fewer than 2 columns or an
// unparseable date are dropped.
func ParseBalancesCSV(text string) []AccountBalanceRecord {
	records := readRecords(text)
	start := 0
	if hasHeader(records, datedHeaderKeyword) {
		start = 1
	}

	var balances []AccountBalanceRecord
	for _, rec := range records[start:] {
		if len(rec) < 2 {
			continue
		}
		date, ok := ParseDate(rec[0])
		if !ok {
			continue
		}
		balances = append(balances, AccountBalanceRecord{
			Date:    date,
			Balance: ParseCurrency(rec[1]),
		})
	}
	return balances
}
