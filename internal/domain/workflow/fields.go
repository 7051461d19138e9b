// Package workflow contiene los editores de sección de un Project y el cálculo
// de completitud/estado. Todo es puro: no hay IO ni estado compartido.
package workflow

import (
	"strings"

	"github.com/deeptec/tenders-api/internal/domain"
)

// Nombres de campo tal como los ve el cliente (y aparecen en los errores de validación).
const (
	FieldTenderName        = "tender_name"
	FieldPerformanceBond   = "performance_bond"
	FieldAgreementSigned   = "agreement_signed"
	FieldSiteDetails       = "site_details"
	FieldCreateInExternal  = "create_in_external"
	FieldNotePart1         = "note_part1"
	FieldStoreManagerCheck = "store_manager_check"
	FieldReady             = "ready"
	FieldPurchasingNote    = "purchasing_note"
	FieldNotePart2         = "note_part2"
	FieldSelectTeam        = "select_team"
	FieldStructurePanel    = "structure_panel"
	FieldTimeline          = "timeline"
	FieldInstallationNote  = "installation_note"
	FieldNotePart3         = "note_part3"
	FieldInvoiceCreated    = "invoice_created"
	FieldPaymentStatus     = "payment_status"
)

// Fields conjunto de campos propuestos por el cliente. Cada editor lee solo los de su sección;
// los enumerados llegan como texto y se validan en el editor.
type Fields struct {
	TenderName       string
	PerformanceBond  string
	AgreementSigned  string
	SiteDetails      string
	CreateInExternal string
	NotePart1        string

	StoreManagerCheck string
	Ready             bool
	PurchasingNote    string
	NotePart2         string

	SelectTeam       string
	StructurePanel   string
	Timeline         string
	InstallationNote string
	NotePart3        string

	InvoiceCreated string
	PaymentStatus  string
}

type enum interface {
	~string
	Valid() bool
}

func acceptedStrings[T enum](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// requireEnum valida un enumerado obligatorio; vacío o fuera del conjunto es error.
func requireEnum[T enum](errs *domain.ValidationError, field, raw string, accepted []T) T {
	v := T(strings.TrimSpace(raw))
	if !v.Valid() {
		errs.AddEnum(field, raw, acceptedStrings(accepted))
	}
	return v
}

// optionalEnum valida un enumerado opcional; vacío toma def.
func optionalEnum[T enum](errs *domain.ValidationError, field, raw string, def T, accepted []T) T {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v := T(raw)
	if !v.Valid() {
		errs.AddEnum(field, raw, acceptedStrings(accepted))
	}
	return v
}

// requireText valida un texto obligatorio (se recorta antes).
func requireText(errs *domain.ValidationError, field, raw, label string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		errs.Add(field, label+" es obligatorio")
	}
	return v
}
