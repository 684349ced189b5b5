// Package pdf renders printable closure reports.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/utils"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	defaultPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn        = &props.Color{Red: 22, Green: 163, Blue: 74}
	colorOut       = &props.Color{Red: 220, Green: 38, Blue: 38}
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var title = cases.Title(language.BrazilianPortuguese)

// ClosureReportRenderer builds the month closure PDF with maroto.
type ClosureReportRenderer struct{}

// NewClosureReportRenderer constructs the renderer.
func NewClosureReportRenderer() *ClosureReportRenderer { return &ClosureReportRenderer{} }

// RenderClosureReport returns the PDF bytes for report. association may be
// nil for global reports; it only drives the heading and colors.
func (r *ClosureReportRenderer) RenderClosureReport(_ context.Context, report *domain.ClosureReport, association *domain.Association) ([]byte, error) {
	heading := "Relatório de Fechamento"
	primary := defaultPrimary
	if association != nil {
		heading = association.Name
		if c, ok := parseHexColor(association.PrimaryColor); ok {
			primary = c
		}
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(heading+" - "+periodLabel(report.Month, report.Year), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(heading, report, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	m.AddRows(breakdownHeaderRow(primary))
	m.AddRows(breakdownRows(report.Breakdown)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate closure report: %w", err)
	}
	return doc.GetBytes(), nil
}

func periodLabel(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d/%d", month, year)
	}
	return title.String(monthNames[month-1]) + " de " + strconv.Itoa(year)
}

func statusLabel(status domain.ClosureStatus) string {
	if status == domain.ClosureClosed {
		return "FECHADO"
	}
	return "ABERTO"
}

func headerRow(heading string, report *domain.ClosureReport, primary *props.Color) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(heading, props.Text{Style: fontstyle.Bold, Size: 13, Color: primary, Top: 1}),
			text.New("Fechamento mensal de caixa", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(periodLabel(report.Month, report.Year), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New("Situação: "+statusLabel(report.Status), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func summaryRows(s domain.ReportSummary) []core.Row {
	item := func(label, value string, color *props.Color) core.Row {
		return row.New(7).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(value, props.Text{Size: 9, Top: 1, Align: align.Right, Style: fontstyle.Bold, Color: color})),
		)
	}
	return []core.Row{
		item("Saldo inicial", utils.FormatBRL(s.InitialBalance), nil),
		item("Total de entradas", utils.FormatBRL(s.TotalIn), colorIn),
		item("Total de saídas", utils.FormatBRL(s.TotalOut), colorOut),
		item("Saldo final", utils.FormatBRL(s.FinalBalance), nil),
	}
}

func breakdownHeaderRow(primary *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: primary, Top: 2}))
	}
	return row.New(8).Add(
		h("Categoria", 6, align.Left),
		h("Tipo", 2, align.Center),
		h("Valor", 4, align.Right),
	)
}

func breakdownRows(lines []domain.CategoryTotal) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma movimentação no período.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		kind, color := "Entrada", colorIn
		if l.Type == domain.EntryTypeOut {
			kind, color = "Saída", colorOut
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(kind, props.Text{Size: 8, Top: 1, Align: align.Center, Color: color})),
			col.New(4).Add(text.New(utils.FormatBRL(l.Amount), props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

// parseHexColor reads "#rrggbb" or "rrggbb".
func parseHexColor(s string) (*props.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}, true
}
