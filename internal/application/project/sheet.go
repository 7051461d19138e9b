package project

import (
	"context"
	"fmt"
	"strings"
)

// SheetUseCase genera la ficha PDF de un proyecto.
type SheetUseCase struct {
	projects  *UseCase
	generator SheetGenerator
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(projects *UseCase, generator SheetGenerator) *SheetUseCase {
	return &SheetUseCase{projects: projects, generator: generator}
}

// Download devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si el proyecto no existe.
func (uc *SheetUseCase) Download(ctx context.Context, id string) ([]byte, string, error) {
	p, users, err := uc.projects.Load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateProjectSheet(ctx, p, users[p.CreatedBy], users[p.LastModifiedBy])
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return pdf, fmt.Sprintf("proyecto-%s.pdf", shortID(p.ID)), nil
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
