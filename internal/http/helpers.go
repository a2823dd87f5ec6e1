package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"condofin/internal/core"
)

// parseSelection extracts the year and month selection from query
// parameters. Missing or invalid values fall back to the reference year and
// the accumulated view; only month=0..11 selects a single month (the
// presentation sends -1 for "Acumulado").
func parseSelection(r *http.Request, ref time.Time) (int, core.MonthSelection) {
	year := ref.Year()
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}

	sel := core.Accumulated()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 0 && m <= 11 {
			sel = core.SpecificMonth(m)
		}
	}
	return year, sel
}

// readUploadText returns the CSV payload of an upload request: the "file"
// part when the request is multipart, the raw body otherwise. The body is
// capped at the configured upload limit.
func (s *Server) readUploadText(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()
		b, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// formatBRL renders an amount the way the dashboard displays currency,
// e.g. "R$ 39.476,27".
func formatBRL(d decimal.Decimal) string {
	v := d.InexactFloat64()
	return brl.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
