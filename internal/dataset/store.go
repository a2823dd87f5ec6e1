// Package dataset holds the in-memory aggregate of the three parsed
// collections. Each collection is independently replaceable: a new upload of
// one category fully swaps that category and leaves the other two alone.
package dataset

import (
	"os"
	"path/filepath"
	"sync"

	"condofin/internal/core"
	applog "condofin/internal/log"
)

// Seed file names looked up inside the data directory.
const (
	ExpensesFile = "despesas.csv"
	FundsFile    = "fundos.csv"
	BalancesFile = "saldos.csv"
)

// Store is the aggregate root for the loaded dataset. The version counter
// bumps on every replacement so derived-view caches can key on it.
type Store struct {
	mu      sync.RWMutex
	data    core.DashboardData
	version uint64
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// NewFromDir builds a store seeded from the CSV files in dir. Missing or
// unreadable files just leave that collection empty; the seed data is a
// convenience, not a requirement.
func NewFromDir(dir string, logger *applog.Logger) *Store {
	s := New()
	if text, ok := readSeed(dir, ExpensesFile); ok {
		n := s.ReplaceExpenses(text)
		logger.Info("Seeded expenses", applog.FieldRows, n)
	}
	if text, ok := readSeed(dir, FundsFile); ok {
		n := s.ReplaceFunds(text)
		logger.Info("Seeded funds", applog.FieldRows, n)
	}
	if text, ok := readSeed(dir, BalancesFile); ok {
		n := s.ReplaceBalances(text)
		logger.Info("Seeded balances", applog.FieldRows, n)
	}
	return s
}

// Snapshot returns the current collections together with the version they
// belong to. The collections are immutable once parsed, so sharing the
// backing slices with callers is safe.
func (s *Store) Snapshot() (core.DashboardData, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.version
}

// Version returns the current dataset version.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ReplaceExpenses parses text and swaps the expenses collection, returning
// the number of rows parsed.
func (s *Store) ReplaceExpenses(text string) int {
	rows := core.ParseExpensesCSV(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Expenses = rows
	s.version++
	return len(rows)
}

// ReplaceFunds parses text and swaps the fund collection.
func (s *Store) ReplaceFunds(text string) int {
	funds := core.ParseFundsCSV(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Funds = funds
	s.version++
	return len(funds)
}

// ReplaceBalances parses text and swaps the account-balance collection.
func (s *Store) ReplaceBalances(text string) int {
	balances := core.ParseBalancesCSV(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccountBalances = balances
	s.version++
	return len(balances)
}

func readSeed(dir, name string) (string, bool) {
	if dir == "" {
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	return string(b), true
}
