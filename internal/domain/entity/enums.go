package entity

// Section una de las cuatro partes de un Project con permiso de edición propio.
type Section string

const (
	SectionPart1          Section = "part1"
	SectionPart2          Section = "part2"
	SectionPart3          Section = "part3"
	SectionInvoicePayment Section = "invoice_payment"
)

// Sections devuelve las secciones en orden de flujo.
func Sections() []Section {
	return []Section{SectionPart1, SectionPart2, SectionPart3, SectionInvoicePayment}
}

// Valid indica si la sección es conocida.
func (s Section) Valid() bool {
	switch s {
	case SectionPart1, SectionPart2, SectionPart3, SectionInvoicePayment:
		return true
	}
	return false
}

// YesNo campo Sí/No obligatorio.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func (v YesNo) Valid() bool { return v == Yes || v == No }

// YesNoValues conjunto aceptado para YesNo.
func YesNoValues() []YesNo { return []YesNo{Yes, No} }

// YesNoNA campo Sí/No/No aplica.
type YesNoNA string

const (
	YesNA YesNoNA = "Yes"
	NoNA  YesNoNA = "No"
	NA    YesNoNA = "N/A"
)

func (v YesNoNA) Valid() bool {
	switch v {
	case YesNA, NoNA, NA:
		return true
	}
	return false
}

func YesNoNAValues() []YesNoNA { return []YesNoNA{YesNA, NoNA, NA} }

// Team quién ejecuta la instalación (Part 3).
type Team string

const (
	TeamCompany       Team = "Company"
	TeamSubcontractor Team = "Subcontractor"
)

func (v Team) Valid() bool { return v == TeamCompany || v == TeamSubcontractor }

func TeamValues() []Team { return []Team{TeamCompany, TeamSubcontractor} }

// InvoiceStatus estado de creación de la factura.
type InvoiceStatus string

const (
	InvoiceDone   InvoiceStatus = "Done"
	InvoiceNotYet InvoiceStatus = "Not Yet"
)

func (v InvoiceStatus) Valid() bool { return v == InvoiceDone || v == InvoiceNotYet }

func InvoiceStatusValues() []InvoiceStatus { return []InvoiceStatus{InvoiceDone, InvoiceNotYet} }

// PaymentStatus estado del cobro.
type PaymentStatus string

const (
	PaymentDone PaymentStatus = "Done"
	PaymentHalf PaymentStatus = "Half"
	PaymentNone PaymentStatus = "None"
	Payment80   PaymentStatus = "80%"
	Payment20   PaymentStatus = "20%"
)

func (v PaymentStatus) Valid() bool {
	switch v {
	case PaymentDone, PaymentHalf, PaymentNone, Payment80, Payment20:
		return true
	}
	return false
}

func PaymentStatusValues() []PaymentStatus {
	return []PaymentStatus{PaymentDone, PaymentHalf, PaymentNone, Payment80, Payment20}
}

// ProjectStatus estado global del Project.
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

func (v ProjectStatus) Valid() bool {
	switch v {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ProjectStatusValues() []ProjectStatus {
	return []ProjectStatus{StatusDraft, StatusInProgress, StatusCompleted, StatusCancelled}
}
