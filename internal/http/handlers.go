package http

import (
	"net/http"
	"time"

	"condofin/internal/core"
	applog "condofin/internal/log"
)

type yearsResponse struct {
	Years []int `json:"years"`
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, _ := s.store.Snapshot()
	writeJSON(w, http.StatusOK, yearsResponse{Years: core.AvailableYears(data, time.Now())})
}

// kpiDisplay carries the KPI figures preformatted in pt-BR currency, the way
// the dashboard shows them.
type kpiDisplay struct {
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
	NetWorth string `json:"netWorth"`
}

type dashboardResponse struct {
	core.DashboardView
	Display kpiDisplay `json:"display"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	year, sel := parseSelection(r, now)

	data, version := s.store.Snapshot()
	key := viewCacheKey(version, year, sel)

	view, hit := s.viewCache.Get(key)
	if !hit {
		view = core.BuildDashboardView(data, year, sel, now)
		s.viewCache.Set(key, view)
	}

	s.logger.DebugContext(r.Context(), "Dashboard view served",
		applog.FieldYear, year,
		applog.FieldVersion, version,
		"cache_hit", hit)

	writeJSON(w, http.StatusOK, dashboardResponse{
		DashboardView: view,
		Display: kpiDisplay{
			Revenue:  formatBRL(view.KPIs.Revenue),
			Expenses: formatBRL(view.KPIs.Expenses),
			Balance:  formatBRL(view.KPIs.Balance),
			NetWorth: formatBRL(view.KPIs.NetWorth),
		},
	})
}

type uploadResponse struct {
	Dataset string `json:"dataset"`
	Rows    int    `json:"rows"`
	Version uint64 `json:"version"`
}

func (s *Server) handleUploadExpenses(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, "expenses", s.store.ReplaceExpenses)
}

func (s *Server) handleUploadFunds(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, "funds", s.store.ReplaceFunds)
}

func (s *Server) handleUploadBalances(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, "balances", s.store.ReplaceBalances)
}

// handleUpload reads the CSV body and swaps exactly one collection. A body
// that parses to nothing is still accepted: the parsers recover what they can
// and an empty result replaces the collection all the same.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, name string, replace func(string) int) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	text, err := s.readUploadText(r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Upload body unreadable",
			applog.FieldDataset, name,
			applog.FieldError, err)
		http.Error(w, "Erro ao ler arquivo enviado.", http.StatusBadRequest)
		return
	}

	rows := replace(text)
	version := s.store.Version()

	s.logger.InfoContext(r.Context(), "Collection replaced",
		applog.FieldDataset, name,
		applog.FieldRows, rows,
		applog.FieldVersion, version)

	writeJSON(w, http.StatusOK, uploadResponse{Dataset: name, Rows: rows, Version: version})
}
