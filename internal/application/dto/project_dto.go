package dto

import "time"

// Part1Request creación / edición de la parte 1.
type Part1Request struct {
	TenderName       string `json:"tender_name" validate:"required"`
	PerformanceBond  string `json:"performance_bond" validate:"omitempty,oneof=Yes No N/A"`
	AgreementSigned  string `json:"agreement_signed" validate:"omitempty,oneof=Yes No N/A"`
	SiteDetails      string `json:"site_details" validate:"required"`
	CreateInExternal string `json:"create_in_external" validate:"required,oneof=Yes No"`
	NotePart1        string `json:"note_part1"`
}

// Part2Request sección de finanzas.
type Part2Request struct {
	StoreManagerCheck string `json:"store_manager_check" validate:"required,oneof=Yes No"`
	Ready             bool   `json:"ready"`
	PurchasingNote    string `json:"purchasing_note" validate:"required"`
	NotePart2         string `json:"note_part2"`
}

// Part3Request sección del equipo de proyecto.
type Part3Request struct {
	SelectTeam       string `json:"select_team" validate:"required,oneof=Company Subcontractor"`
	StructurePanel   string `json:"structure_panel" validate:"required"`
	Timeline         string `json:"timeline" validate:"required"`
	InstallationNote string `json:"installation_note" validate:"required"`
	NotePart3        string `json:"note_part3"`
}

// InvoicePaymentRequest factura y pago.
type InvoicePaymentRequest struct {
	InvoiceCreated string `json:"invoice_created" validate:"required,oneof=Done 'Not Yet'"`
	PaymentStatus  string `json:"payment_status" validate:"required,oneof=Done Half None 80% 20%"`
}

// SectionRequest unión de todos los campos, para PUT /projects/:id/sections/:section.
// Cada sección solo lee sus propios campos.
type SectionRequest struct {
	Part1Request
	Part2Request
	Part3Request
	InvoicePaymentRequest
}

// ProjectListRequest filtros del dashboard.
type ProjectListRequest struct {
	PageRequest
	Search string `query:"search"`
	Status string `query:"status"`
}

// ProjectResponse proyecto completo con creador / último editor resueltos.
type ProjectResponse struct {
	ID string `json:"id"`

	TenderName       string `json:"tender_name"`
	PerformanceBond  string `json:"performance_bond"`
	AgreementSigned  string `json:"agreement_signed"`
	SiteDetails      string `json:"site_details"`
	CreateInExternal string `json:"create_in_external"`
	NotePart1        string `json:"note_part1"`

	StoreManagerCheck string `json:"store_manager_check"`
	Ready             bool   `json:"ready"`
	PurchasingNote    string `json:"purchasing_note"`
	NotePart2         string `json:"note_part2"`

	SelectTeam       string `json:"select_team"`
	StructurePanel   string `json:"structure_panel"`
	Timeline         string `json:"timeline"`
	InstallationNote string `json:"installation_note"`
	NotePart3        string `json:"note_part3"`

	InvoiceCreated string `json:"invoice_created"`
	PaymentStatus  string `json:"payment_status"`

	CreatedBy      *UserSummary `json:"created_by"`
	LastModifiedBy *UserSummary `json:"last_modified_by,omitempty"`
	Status         string       `json:"status"`

	Part1Completed       bool       `json:"part1_completed"`
	Part2Completed       bool       `json:"part2_completed"`
	Part3Completed       bool       `json:"part3_completed"`
	Part1CompletedAt     *time.Time `json:"part1_completed_at,omitempty"`
	Part2CompletedAt     *time.Time `json:"part2_completed_at,omitempty"`
	Part3CompletedAt     *time.Time `json:"part3_completed_at,omitempty"`
	CompletionPercentage int        `json:"completion_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectListResponse lista paginada de proyectos.
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination PageResponse      `json:"pagination"`
}
