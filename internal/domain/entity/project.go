package entity

import "time"

// Project registro central del flujo de licitaciones. Cada sección la llena un
// equipo distinto; Part1 equivale a la creación.
type Project struct {
	ID string

	// Part 1 - creación del proyecto
	TenderName       string
	PerformanceBond  YesNoNA
	AgreementSigned  YesNoNA
	SiteDetails      string
	CreateInExternal YesNo // crear el proyecto en el sistema externo (Dislio)
	NotePart1        string

	// Part 2 - finanzas
	StoreManagerCheck YesNo
	Ready             bool
	PurchasingNote    string
	NotePart2         string

	// Part 3 - equipo de proyecto
	Team             Team
	StructurePanel   string
	Timeline         string
	InstallationNote string
	NotePart3        string

	// Factura y pago
	InvoiceCreated InvoiceStatus
	Payment        PaymentStatus

	CreatedBy      string // inmutable
	LastModifiedBy string
	Status         ProjectStatus

	Part1Completed   bool
	Part2Completed   bool
	Part3Completed   bool
	Part1CompletedAt *time.Time
	Part2CompletedAt *time.Time
	Part3CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone copia superficial; los *time.Time se reemplazan, nunca se mutan.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// AllPartsCompleted indica si las tres partes con flag de completitud están listas.
func (p *Project) AllPartsCompleted() bool {
	return p.Part1Completed && p.Part2Completed && p.Part3Completed
}
