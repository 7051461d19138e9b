// Package pdf genera la ficha imprimible de un proyecto de licitación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Licitación + estado  │  % completado + fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTE 1: licitación adjudicada (equipo de proyecto)         │
//	│  PARTE 2: compras (finanzas)                                 │
//	│  PARTE 3: instalación (equipo de proyecto)                   │
//	│  FACTURA / PAGO                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: creador / último editor + QR con el ID              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/deeptec/tenders-api/internal/application/project"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/workflow"
)

var _ project.SheetGenerator = (*MarotoSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 0, Green: 128, Blue: 64}
	colorPending = &props.Color{Red: 190, Green: 110, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSheetGenerator implementa project.SheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateProjectSheet genera el PDF y devuelve sus bytes. createdBy / lastModifiedBy pueden ser nil.
func (g *MarotoSheetGenerator) GenerateProjectSheet(
	_ context.Context,
	p *entity.Project,
	createdBy, lastModifiedBy *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de proyecto", true).
		WithAuthor("DeepTec", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRows("PARTE 1 · LICITACIÓN ADJUDICADA", p.Part1Completed, p.Part1CompletedAt, [][2]string{
		{"Licitación", p.TenderName},
		{"Garantía de cumplimiento", string(p.PerformanceBond)},
		{"Contrato firmado", string(p.AgreementSigned)},
		{"Detalle del sitio", p.SiteDetails},
		{"Crear en sistema externo", string(p.CreateInExternal)},
		{"Nota", p.NotePart1},
	})...)
	m.AddRows(sectionRows("PARTE 2 · COMPRAS", p.Part2Completed, p.Part2CompletedAt, [][2]string{
		{"Revisión jefe de bodega", string(p.StoreManagerCheck)},
		{"Listo", yesNo(p.Ready)},
		{"Nota de compras", p.PurchasingNote},
		{"Nota", p.NotePart2},
	})...)
	m.AddRows(sectionRows("PARTE 3 · INSTALACIÓN", p.Part3Completed, p.Part3CompletedAt, [][2]string{
		{"Equipo", string(p.Team)},
		{"Estructura / panel", p.StructurePanel},
		{"Cronograma", p.Timeline},
		{"Nota de instalación", p.InstallationNote},
		{"Nota", p.NotePart3},
	})...)
	m.AddRows(sectionRows("FACTURA / PAGO", false, nil, [][2]string{
		{"Factura", string(p.InvoiceCreated)},
		{"Pago", string(p.Payment)},
	})...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p, createdBy, lastModifiedBy))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: licitación + estado (izq) y porcentaje + fecha de creación (der).
func headerRow(p *entity.Project) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(p.TenderName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+statusLabel(p.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d%% COMPLETADO", workflow.CompletionPercentage(p)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Creado: "+formatDate(&p.CreatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// sectionRows: título con marca de completitud y una fila por campo.
// Para factura/pago (sin flag) no se muestra marca.
func sectionRows(title string, done bool, doneAt *time.Time, fields [][2]string) []core.Row {
	mark, markColor := "", colorGray
	switch {
	case done:
		mark, markColor = "Completada "+formatDate(doneAt), colorDone
	case title != "FACTURA / PAGO":
		mark, markColor = "Pendiente", colorPending
	}
	rows := []core.Row{
		row.New(4),
		row.New(7).Add(
			col.New(8).Add(text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			})),
			col.New(4).Add(text.New(mark, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: markColor, Top: 1,
			})),
		),
	}
	for _, f := range fields {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(f[0], props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2})),
			col.New(8).Add(text.New(nonEmpty(f[1], "—"), props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

// footerRow: creador / último editor (izq) y QR con el ID del proyecto (der).
func footerRow(p *entity.Project, createdBy, lastModifiedBy *entity.User) core.Row {
	return row.New(30).Add(
		col.New(9).Add(
			text.New("Creado por: "+userLabel(createdBy, p.CreatedBy), props.Text{Size: 8, Top: 2}),
			text.New("Última modificación: "+userLabel(lastModifiedBy, p.LastModifiedBy)+
				" · "+formatDate(&p.UpdatedAt), props.Text{Size: 8, Top: 8}),
			text.New("ID: "+p.ID, props.Text{Size: 7, Top: 14, Color: colorGray}),
		),
		col.New(3).Add(code.NewQr(p.ID, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}

func statusLabel(s entity.ProjectStatus) string {
	switch s {
	case entity.StatusDraft:
		return "Borrador"
	case entity.StatusInProgress:
		return "En progreso"
	case entity.StatusCompleted:
		return "Completado"
	case entity.StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

func userLabel(u *entity.User, fallbackID string) string {
	if u != nil {
		return fmt.Sprintf("%s (%s)", u.Username, u.Role)
	}
	return nonEmpty(fallbackID, "—")
}
