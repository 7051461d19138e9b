package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/infrastructure/pdf"
)

func TestGenerateProjectSheet(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := &entity.Project{
		ID: "0b5c7d7e-7a4f-4a3e-9f55-1d2c3b4a5e6f", TenderName: "Road Works", SiteDetails: "Site 9",
		PerformanceBond: entity.NA, AgreementSigned: entity.NA, CreateInExternal: entity.Yes,
		StoreManagerCheck: entity.No, Team: entity.TeamCompany,
		InvoiceCreated: entity.InvoiceNotYet, Payment: entity.PaymentNone,
		CreatedBy: "u1", Status: entity.StatusInProgress,
		Part1Completed: true, Part1CompletedAt: &now, CreatedAt: now, UpdatedAt: now,
	}
	creator := &entity.User{ID: "u1", Username: "project", Role: entity.RoleProjectTeam}

	out, err := pdf.NewMarotoSheetGenerator().GenerateProjectSheet(context.Background(), p, creator, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
