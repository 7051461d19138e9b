package workflow_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/workflow"
)

const (
	creatorID = "00000000-0000-0000-0000-0000000000a1"
	financeID = "00000000-0000-0000-0000-0000000000b2"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func part1Fields() workflow.Fields {
	return workflow.Fields{TenderName: "Road Works", SiteDetails: "Site 9", CreateInExternal: "Yes"}
}

func part2Fields() workflow.Fields {
	return workflow.Fields{StoreManagerCheck: "No", PurchasingNote: "Order steel"}
}

func part3Fields() workflow.Fields {
	return workflow.Fields{SelectTeam: "Company", StructurePanel: "Panel A", Timeline: "6 weeks", InstallationNote: "Crane needed"}
}

func created(t *testing.T) *entity.Project {
	t.Helper()
	p, err := workflow.Submit(entity.SectionPart1, nil, part1Fields(), creatorID, t0)
	require.NoError(t, err)
	return p
}

func fieldNames(err error) []string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Part 1
// ──────────────────────────────────────────────────────────────────────────────

func TestPart1_CreaConDefaults(t *testing.T) {
	p := created(t)

	assert.Equal(t, "Road Works", p.TenderName)
	assert.Equal(t, "Site 9", p.SiteDetails)
	assert.Equal(t, entity.Yes, p.CreateInExternal)
	assert.Equal(t, entity.NA, p.PerformanceBond, "opcional ausente debe quedar N/A")
	assert.Equal(t, entity.NA, p.AgreementSigned)
	assert.Equal(t, entity.No, p.StoreManagerCheck)
	assert.Equal(t, entity.TeamCompany, p.Team)
	assert.Equal(t, entity.InvoiceNotYet, p.InvoiceCreated)
	assert.Equal(t, entity.PaymentNone, p.Payment)

	assert.True(t, p.Part1Completed)
	require.NotNil(t, p.Part1CompletedAt)
	assert.Equal(t, t0, *p.Part1CompletedAt)
	assert.False(t, p.Part2Completed)
	assert.False(t, p.Part3Completed)
	assert.Equal(t, entity.StatusInProgress, p.Status)
	assert.Equal(t, creatorID, p.CreatedBy)
	assert.Equal(t, creatorID, p.LastModifiedBy)
	assert.Equal(t, 33, workflow.CompletionPercentage(p))
}

func TestPart1_RecortaTextos(t *testing.T) {
	in := part1Fields()
	in.TenderName = "  Bridge  "
	in.NotePart1 = "  nota  "
	p, err := workflow.Submit(entity.SectionPart1, nil, in, creatorID, t0)
	require.NoError(t, err)
	assert.Equal(t, "Bridge", p.TenderName)
	assert.Equal(t, "nota", p.NotePart1)
}

func TestPart1_ReportaTodosLosErrores(t *testing.T) {
	_, err := workflow.Submit(entity.SectionPart1, nil, workflow.Fields{
		TenderName:       "   ",
		PerformanceBond:  "Maybe",
		CreateInExternal: "Perhaps",
	}, creatorID, t0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ElementsMatch(t, []string{
		workflow.FieldTenderName,
		workflow.FieldSiteDetails,
		workflow.FieldCreateInExternal,
		workflow.FieldPerformanceBond,
	}, fieldNames(err))
}

func TestPart1_EnumInvalidoIdentificaCampoYConjunto(t *testing.T) {
	in := part1Fields()
	in.CreateInExternal = "Maybe"
	_, err := workflow.Submit(entity.SectionPart1, nil, in, creatorID, t0)

	var enumErr *domain.InvalidEnumValueError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, workflow.FieldCreateInExternal, enumErr.Field)
	assert.Equal(t, "Maybe", enumErr.Value)
	assert.Equal(t, []string{"Yes", "No"}, enumErr.Accepted)
}

func TestPart1_EdicionConservaCreadorYTimestamp(t *testing.T) {
	p := created(t)
	later := t0.Add(time.Hour)
	in := part1Fields()
	in.TenderName = "Road Works II"

	next, err := workflow.Submit(entity.SectionPart1, p, in, financeID, later)
	require.NoError(t, err)

	assert.Equal(t, "Road Works II", next.TenderName)
	assert.Equal(t, creatorID, next.CreatedBy)
	assert.Equal(t, financeID, next.LastModifiedBy)
	assert.Equal(t, t0, *next.Part1CompletedAt, "el timestamp de completitud no se reinicia")
	assert.Equal(t, "Road Works", p.TenderName, "el valor original no debe mutarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Part 2 / Part 3
// ──────────────────────────────────────────────────────────────────────────────

func TestPart2_Completa(t *testing.T) {
	p := created(t)
	next, err := workflow.Submit(entity.SectionPart2, p, part2Fields(), financeID, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, next.Part2Completed)
	assert.Equal(t, "Order steel", next.PurchasingNote)
	assert.Equal(t, entity.No, next.StoreManagerCheck)
	assert.Equal(t, 67, workflow.CompletionPercentage(next))
	assert.Equal(t, entity.StatusInProgress, next.Status)
	assert.False(t, p.Part2Completed, "el valor original no debe mutarse")
}

func TestPart2_Monotono(t *testing.T) {
	p := created(t)
	first := t0.Add(time.Minute)
	p, err := workflow.Submit(entity.SectionPart2, p, part2Fields(), financeID, first)
	require.NoError(t, err)

	for i := 2; i < 5; i++ {
		in := part2Fields()
		in.Ready = i%2 == 0
		p, err = workflow.Submit(entity.SectionPart2, p, in, financeID, t0.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		assert.True(t, p.Part2Completed)
		assert.Equal(t, first, *p.Part2CompletedAt)
	}

	_, err = workflow.Submit(entity.SectionPart2, p, workflow.Fields{}, financeID, t0.Add(10*time.Hour))
	require.Error(t, err, "un envío inválido no cambia nada")
	assert.True(t, p.Part2Completed)
}

func TestPart2_Errores(t *testing.T) {
	_, err := workflow.Submit(entity.SectionPart2, created(t), workflow.Fields{StoreManagerCheck: "yes"}, financeID, t0)
	assert.ElementsMatch(t, []string{workflow.FieldStoreManagerCheck, workflow.FieldPurchasingNote}, fieldNames(err))
}

func TestPart3_EnumInvalido(t *testing.T) {
	in := part3Fields()
	in.SelectTeam = "InvalidValue"
	_, err := workflow.Submit(entity.SectionPart3, created(t), in, creatorID, t0)

	assert.Equal(t, []string{workflow.FieldSelectTeam}, fieldNames(err))
	var enumErr *domain.InvalidEnumValueError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, []string{"Company", "Subcontractor"}, enumErr.Accepted)
}

func TestPart3_CamposObligatorios(t *testing.T) {
	_, err := workflow.Submit(entity.SectionPart3, created(t), workflow.Fields{SelectTeam: "Subcontractor"}, creatorID, t0)
	assert.ElementsMatch(t, []string{
		workflow.FieldStructurePanel, workflow.FieldTimeline, workflow.FieldInstallationNote,
	}, fieldNames(err))
}

func TestFlujoCompleto_MarcaCompleted(t *testing.T) {
	p := created(t)
	p, err := workflow.Submit(entity.SectionPart3, p, part3Fields(), creatorID, t0)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, p.Status)
	assert.Equal(t, 67, workflow.CompletionPercentage(p))

	p, err = workflow.Submit(entity.SectionPart2, p, part2Fields(), financeID, t0)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, p.Status)
	assert.Equal(t, 100, workflow.CompletionPercentage(p))

	// Re-enviar una sección completa sigue permitido y no revierte el estado.
	p, err = workflow.Submit(entity.SectionPart1, p, part1Fields(), creatorID, t0)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, p.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Factura / pago
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoicePayment_NoAfectaEstadoNiFlags(t *testing.T) {
	p := created(t)
	next, err := workflow.Submit(entity.SectionInvoicePayment, p, workflow.Fields{
		InvoiceCreated: "Done", PaymentStatus: "80%",
	}, financeID, t0)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceDone, next.InvoiceCreated)
	assert.Equal(t, entity.Payment80, next.Payment)
	assert.Equal(t, p.Status, next.Status)
	assert.Equal(t, p.Part1Completed, next.Part1Completed)
	assert.False(t, next.Part2Completed)
	assert.False(t, next.Part3Completed)
	assert.Equal(t, financeID, next.LastModifiedBy)
}

func TestInvoicePayment_EnumsInvalidos(t *testing.T) {
	_, err := workflow.Submit(entity.SectionInvoicePayment, created(t), workflow.Fields{
		InvoiceCreated: "done", PaymentStatus: "50%",
	}, financeID, t0)
	assert.ElementsMatch(t, []string{workflow.FieldInvoiceCreated, workflow.FieldPaymentStatus}, fieldNames(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit / agregador
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SeccionInvalida(t *testing.T) {
	_, err := workflow.Submit(entity.Section("part9"), created(t), workflow.Fields{}, creatorID, t0)
	var secErr *domain.InvalidSectionError
	assert.True(t, errors.As(err, &secErr))
}

func TestSubmit_SinProyectoSoloPart1(t *testing.T) {
	_, err := workflow.Submit(entity.SectionPart2, nil, part2Fields(), financeID, t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompletionPercentage_ValoresPosibles(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		p := &entity.Project{
			Part1Completed: mask&1 != 0,
			Part2Completed: mask&2 != 0,
			Part3Completed: mask&4 != 0,
		}
		got := workflow.CompletionPercentage(p)
		assert.Contains(t, []int{0, 33, 67, 100}, got)
		assert.Equal(t, got, workflow.CompletionPercentage(p), "idempotente")
		assert.Equal(t, []int{0, 33, 67, 100}[workflow.CompletedParts(p)], got)
	}
}

func TestNextStatus(t *testing.T) {
	all := &entity.Project{Part1Completed: true, Part2Completed: true, Part3Completed: true}

	p := all.Clone()
	p.Status = entity.StatusInProgress
	assert.Equal(t, entity.StatusCompleted, workflow.NextStatus(p))

	p = all.Clone()
	p.Status = entity.StatusCancelled
	assert.Equal(t, entity.StatusCancelled, workflow.NextStatus(p), "cancelled no se toca")

	partial := &entity.Project{Part1Completed: true, Status: entity.StatusDraft}
	assert.Equal(t, entity.StatusInProgress, workflow.NextStatus(partial), "nunca queda en draft")
}
