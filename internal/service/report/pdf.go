package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

type table struct {
	title   string
	headers []string
	widths  []float64
	rows    [][]string
	// numeric columns start here and are right-aligned
	numFrom int
	days    []DayTotal
	total   float64
	label   string
}

// IncomePDF renders the weekly income summary on A4.
func IncomePDF(storeName string, inc *Income) ([]byte, error) {
	t := table{
		title:   fmt.Sprintf("%s - Weekly Income Summary", storeName),
		headers: []string{"Date", "Start", "Service", "Rate/hr", "Hours", "Add-on", "Total"},
		widths:  []float64{26, 22, 44, 22, 18, 22, 26},
		days:    inc.Days,
		total:   inc.Total,
		label:   "Total income (7 days)",
		numFrom: 3,
	}
	for _, l := range inc.Lines {
		t.rows = append(t.rows, []string{
			l.Date, l.StartTime, l.ServiceType, money(l.RatePerHour),
			fmt.Sprintf("%.2f", l.Hours), money(l.AddOnPrice), money(l.Total),
		})
	}
	return t.render()
}

// PayrollPDF renders the weekly therapist payment summary on A4.
func PayrollPDF(storeName string, pr *Payroll) ([]byte, error) {
	t := table{
		title:   fmt.Sprintf("%s - Therapist Payment Summary", storeName),
		headers: []string{"Date", "Therapist", "Rate/hr", "Hours", "Pay"},
		widths:  []float64{30, 60, 30, 30, 30},
		days:    pr.Days,
		total:   pr.Total,
		label:   "Total payroll (7 days)",
		numFrom: 2,
	}
	for _, l := range pr.Lines {
		t.rows = append(t.rows, []string{
			l.Date, l.Therapist, money(l.Rate), fmt.Sprintf("%.2f", l.Hours), money(l.Pay),
		})
	}
	return t.render()
}

func (t table) render() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(t.title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, t.title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 240)
	for i, h := range t.headers {
		pdf.CellFormat(t.widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(t.rows) == 0 {
		pdf.CellFormat(sum(t.widths), 8, "No bookings in the past 7 days.", "1", 1, "C", false, 0, "")
	}
	for _, row := range t.rows {
		for i, cell := range row {
			align := "L"
			if i >= t.numFrom {
				align = "R"
			}
			pdf.CellFormat(t.widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Daily summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, d := range t.days {
		pdf.CellFormat(40, 7, d.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, money(d.Total), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", t.label, money(t.total)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}
