package workflow

import (
	"github.com/shopspring/decimal"

	"github.com/deeptec/tenders-api/internal/domain/entity"
)

const trackedParts = 3

// CompletedParts cuenta las partes con flag de completitud en true.
func CompletedParts(p *entity.Project) int {
	n := 0
	for _, done := range []bool{p.Part1Completed, p.Part2Completed, p.Part3Completed} {
		if done {
			n++
		}
	}
	return n
}

// CompletionPercentage 0, 33, 67 o 100. Redondeo half-up sobre 100*n/3.
func CompletionPercentage(p *entity.Project) int {
	return percentOf(CompletedParts(p))
}

func percentOf(completed int) int {
	pct := decimal.NewFromInt(int64(completed) * 100).
		Div(decimal.NewFromInt(trackedParts)).
		Round(0)
	return int(pct.IntPart())
}

// NextStatus estado que corresponde tras una escritura de sección.
// Solo avanza: completed cuando las tres partes están completas; cancelled no se toca.
func NextStatus(p *entity.Project) entity.ProjectStatus {
	switch p.Status {
	case entity.StatusCancelled, entity.StatusCompleted:
		return p.Status
	}
	if p.AllPartsCompleted() {
		return entity.StatusCompleted
	}
	return entity.StatusInProgress
}
