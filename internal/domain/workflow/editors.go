package workflow

import (
	"strings"
	"time"

	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// Editor valida y aplica una actualización parcial a una sección.
// Nunca modifica current: devuelve un valor nuevo con la sección fusionada.
type Editor interface {
	Section() entity.Section
	Apply(current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error)
}

// EditorFor devuelve el editor de la sección.
func EditorFor(section entity.Section) (Editor, error) {
	switch section {
	case entity.SectionPart1:
		return Part1Editor{}, nil
	case entity.SectionPart2:
		return Part2Editor{}, nil
	case entity.SectionPart3:
		return Part3Editor{}, nil
	case entity.SectionInvoicePayment:
		return InvoicePaymentEditor{}, nil
	}
	return nil, &domain.InvalidSectionError{Section: string(section)}
}

// Submit ejecuta el editor de la sección y, salvo factura/pago, recalcula el estado.
// current nil solo es válido para part1 (creación).
func Submit(section entity.Section, current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error) {
	editor, err := EditorFor(section)
	if err != nil {
		return nil, err
	}
	if current == nil && section != entity.SectionPart1 {
		return nil, domain.ErrNotFound
	}
	next, err := editor.Apply(current, in, actorID, now)
	if err != nil {
		return nil, err
	}
	if section != entity.SectionInvoicePayment {
		next.Status = NextStatus(next)
	}
	return next, nil
}

// markCompleted marca la parte como completa; el timestamp se fija solo la primera vez.
func markCompleted(done *bool, at **time.Time, now time.Time) {
	*done = true
	if *at == nil {
		t := now
		*at = &t
	}
}

func stamp(p *entity.Project, actorID string, now time.Time) {
	p.LastModifiedBy = actorID
	p.UpdatedAt = now
}

// ── Part 1 ────────────────────────────────────────────────────────────────────

// Part1Editor creación/edición de la parte 1. Con current nil crea el proyecto.
type Part1Editor struct{}

func (Part1Editor) Section() entity.Section { return entity.SectionPart1 }

func (Part1Editor) Apply(current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error) {
	errs := &domain.ValidationError{}
	name := requireText(errs, FieldTenderName, in.TenderName, "el nombre de la licitación adjudicada")
	site := requireText(errs, FieldSiteDetails, in.SiteDetails, "el detalle del sitio")
	external := requireEnum(errs, FieldCreateInExternal, in.CreateInExternal, entity.YesNoValues())
	bond := optionalEnum(errs, FieldPerformanceBond, in.PerformanceBond, entity.NA, entity.YesNoNAValues())
	agreement := optionalEnum(errs, FieldAgreementSigned, in.AgreementSigned, entity.NA, entity.YesNoNAValues())
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	var next *entity.Project
	if current == nil {
		next = newProject(actorID, now)
	} else {
		next = current.Clone()
	}
	next.TenderName = name
	next.SiteDetails = site
	next.CreateInExternal = external
	next.PerformanceBond = bond
	next.AgreementSigned = agreement
	next.NotePart1 = strings.TrimSpace(in.NotePart1)
	markCompleted(&next.Part1Completed, &next.Part1CompletedAt, now)
	stamp(next, actorID, now)
	return next, nil
}

// newProject valores por defecto de un proyecto recién creado.
func newProject(actorID string, now time.Time) *entity.Project {
	return &entity.Project{
		PerformanceBond:   entity.NA,
		AgreementSigned:   entity.NA,
		StoreManagerCheck: entity.No,
		Team:              entity.TeamCompany,
		InvoiceCreated:    entity.InvoiceNotYet,
		Payment:           entity.PaymentNone,
		CreatedBy:         actorID,
		Status:            entity.StatusInProgress,
		CreatedAt:         now,
	}
}

// ── Part 2 ────────────────────────────────────────────────────────────────────

// Part2Editor sección de finanzas.
type Part2Editor struct{}

func (Part2Editor) Section() entity.Section { return entity.SectionPart2 }

func (Part2Editor) Apply(current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error) {
	if current == nil {
		return nil, domain.ErrNotFound
	}
	errs := &domain.ValidationError{}
	check := requireEnum(errs, FieldStoreManagerCheck, in.StoreManagerCheck, entity.YesNoValues())
	purchasing := requireText(errs, FieldPurchasingNote, in.PurchasingNote, "la nota de compras")
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	next := current.Clone()
	next.StoreManagerCheck = check
	next.Ready = in.Ready
	next.PurchasingNote = purchasing
	next.NotePart2 = strings.TrimSpace(in.NotePart2)
	markCompleted(&next.Part2Completed, &next.Part2CompletedAt, now)
	stamp(next, actorID, now)
	return next, nil
}

// ── Part 3 ────────────────────────────────────────────────────────────────────

// Part3Editor sección del equipo de proyecto (instalación).
type Part3Editor struct{}

func (Part3Editor) Section() entity.Section { return entity.SectionPart3 }

func (Part3Editor) Apply(current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error) {
	if current == nil {
		return nil, domain.ErrNotFound
	}
	errs := &domain.ValidationError{}
	team := requireEnum(errs, FieldSelectTeam, in.SelectTeam, entity.TeamValues())
	panel := requireText(errs, FieldStructurePanel, in.StructurePanel, "el panel de estructura")
	timeline := requireText(errs, FieldTimeline, in.Timeline, "el cronograma")
	install := requireText(errs, FieldInstallationNote, in.InstallationNote, "la nota de instalación en sitio")
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	next := current.Clone()
	next.Team = team
	next.StructurePanel = panel
	next.Timeline = timeline
	next.InstallationNote = install
	next.NotePart3 = strings.TrimSpace(in.NotePart3)
	markCompleted(&next.Part3Completed, &next.Part3CompletedAt, now)
	stamp(next, actorID, now)
	return next, nil
}

// ── Factura y pago ────────────────────────────────────────────────────────────

// InvoicePaymentEditor factura/pago: sin flag de completitud, editable siempre.
type InvoicePaymentEditor struct{}

func (InvoicePaymentEditor) Section() entity.Section { return entity.SectionInvoicePayment }

func (InvoicePaymentEditor) Apply(current *entity.Project, in Fields, actorID string, now time.Time) (*entity.Project, error) {
	if current == nil {
		return nil, domain.ErrNotFound
	}
	errs := &domain.ValidationError{}
	invoice := requireEnum(errs, FieldInvoiceCreated, in.InvoiceCreated, entity.InvoiceStatusValues())
	payment := requireEnum(errs, FieldPaymentStatus, in.PaymentStatus, entity.PaymentStatusValues())
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	next := current.Clone()
	next.InvoiceCreated = invoice
	next.Payment = payment
	stamp(next, actorID, now)
	return next, nil
}
