package calculationhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"lohnrechner/internal/domain/calculation"
	"lohnrechner/internal/money"
	"lohnrechner/internal/platform/metrics"
	"lohnrechner/internal/tax"
	"lohnrechner/internal/transport/http/api"
	"lohnrechner/internal/transport/http/middleware"
)

type Handler struct {
	Store   calculation.Store
	Metrics *metrics.Collector
}

func NewHandler(store calculation.Store, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tax", func(r chi.Router) {
		r.Get("/years", h.handleYears)
		r.Post("/calculations", h.handleCalculate)
		r.Get("/calculations", h.handleList)
		r.Get("/calculations/{calculationID}", h.handleGet)
		r.Get("/calculations/{calculationID}/statement", h.handleStatement)
	})
}

func (h *Handler) handleYears(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{"years": tax.SupportedYears()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var profile tax.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := tax.Calculate(profile)
	if err != nil {
		h.recordCalculation(false)
		if errors.Is(err, tax.ErrInvalidProfile) {
			api.Fail(w, http.StatusBadRequest, "invalid_profile", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		slog.Error("calculation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "calculation_failed", "calculation failed", middleware.GetRequestID(r.Context()))
		return
	}
	h.recordCalculation(true)

	record := calculation.Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Profile:   profile,
		Result:    result,
	}
	if err := h.Store.Insert(r.Context(), record); err != nil {
		slog.Error("calculation insert failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_failed", "failed to store calculation", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			api.Fail(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500", middleware.GetRequestID(r.Context()))
			return
		}
		limit = parsed
	}

	records, err := h.Store.List(r.Context(), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_failed", "failed to list calculations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	payload, err := buildStatementPDF(*record)
	if err != nil {
		slog.Error("statement render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "statement_failed", "failed to render statement", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "statement-"+record.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) loadRecord(w http.ResponseWriter, r *http.Request) (*calculation.Record, bool) {
	calculationID := chi.URLParam(r, "calculationID")
	record, err := h.Store.Get(r.Context(), calculationID)
	if errors.Is(err, calculation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "calculation not found", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_failed", "failed to load calculation", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return record, true
}

func (h *Handler) recordCalculation(ok bool) {
	if h.Metrics != nil {
		h.Metrics.RecordCalculation(ok)
	}
}

func buildStatementPDF(record calculation.Record) ([]byte, error) {
	monthlyGross, err := record.Profile.YearlySalary.Div(money.FromInt(12), 2, money.RoundDown)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Net Salary Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Calculation: %s", record.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Created: %s", record.CreatedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax year: %d, tax class %d", record.Profile.Year, record.Profile.TaxClass))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Yearly gross: %s EUR", record.Profile.YearlySalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Monthly gross: %s EUR", monthlyGross.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Monthly deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Wage tax: %s EUR", record.Result.Taxes.Lohnsteuer.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Solidarity surcharge: %s EUR", record.Result.Taxes.Soli.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Church tax: %s EUR", record.Result.Taxes.Kirchensteuer.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Health insurance: %s EUR", record.Result.SocialSecurity.KV.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pension insurance: %s EUR", record.Result.SocialSecurity.RV.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Unemployment insurance: %s EUR", record.Result.SocialSecurity.AV.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Care insurance: %s EUR", record.Result.SocialSecurity.PV.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s EUR", record.Result.Netto.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
