package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/service/report"
	"github.com/melbooking/melbooking_backend/internal/service/store"
)

type ReportHandler struct {
	svc    report.Service
	stores store.Service
}

func NewReportHandler(svc report.Service, stores store.Service) *ReportHandler {
	return &ReportHandler{svc: svc, stores: stores}
}

func wantsPDF(c fiber.Ctx) bool {
	return strings.EqualFold(c.Query("format"), "pdf")
}

// storeName labels PDF exports; the id is the fallback.
func (h *ReportHandler) storeName(c fiber.Ctx) string {
	storeID, _ := storeIDFromLocals(c)
	st, err := h.stores.Resolve(c.Context(), storeID.String())
	if err != nil {
		return storeID.String()
	}
	return st.Name
}

// GET /api/v1/admin/reports/income[?format=pdf]
func (h *ReportHandler) Income(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	inc, err := h.svc.WeeklyIncome(c.Context(), storeID)
	if err != nil {
		slog.ErrorContext(c.Context(), "weekly income", "store_id", storeID, "error", err)
		return internalError(c)
	}
	if !wantsPDF(c) {
		return ok(c, inc)
	}

	pdf, err := report.IncomePDF(h.storeName(c), inc)
	if err != nil {
		slog.ErrorContext(c.Context(), "render income pdf", "store_id", storeID, "error", err)
		return internalError(c)
	}
	return sendFile(c, "application/pdf", "weekly_income.pdf", pdf)
}

// GET /api/v1/admin/reports/payroll[?format=pdf]
func (h *ReportHandler) Payroll(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	pay, err := h.svc.WeeklyPayroll(c.Context(), storeID)
	if err != nil {
		slog.ErrorContext(c.Context(), "weekly payroll", "store_id", storeID, "error", err)
		return internalError(c)
	}
	if !wantsPDF(c) {
		return ok(c, pay)
	}

	pdf, err := report.PayrollPDF(h.storeName(c), pay)
	if err != nil {
		slog.ErrorContext(c.Context(), "render payroll pdf", "store_id", storeID, "error", err)
		return internalError(c)
	}
	return sendFile(c, "application/pdf", "weekly_payroll.pdf", pdf)
}
