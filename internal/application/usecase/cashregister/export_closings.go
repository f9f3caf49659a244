package cashregister

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cash-register/backend/internal/application/adapter"
)

// ExportClosingsOutput is a rendered closings report.
type ExportClosingsOutput struct {
	ContentType string
	Filename    string
	Content     []byte
	Count       int
}

// ExportClosingsUseCase renders a closings history query into a document.
type ExportClosingsUseCase struct {
	listClosings *ListClosingsUseCase
	exporter     adapter.ClosingExporter
	clock        adapter.Clock
}

// NewExportClosingsUseCase creates a new ExportClosingsUseCase instance.
func NewExportClosingsUseCase(listClosings *ListClosingsUseCase, exporter adapter.ClosingExporter, clock adapter.Clock) *ExportClosingsUseCase {
	return &ExportClosingsUseCase{
		listClosings: listClosings,
		exporter:     exporter,
		clock:        clock,
	}
}

// Execute runs the history query with the same filters and exports the result.
func (uc *ExportClosingsUseCase) Execute(ctx context.Context, input ListClosingsInput) (*ExportClosingsOutput, error) {
	result, err := uc.listClosings.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.exporter.Export(&buf, result.Closings); err != nil {
		return nil, fmt.Errorf("failed to export closings: %w", err)
	}

	return &ExportClosingsOutput{
		ContentType: uc.exporter.ContentType(),
		Filename:    fmt.Sprintf("closings-%s.%s", uc.clock.Now().Format("20060102-150405"), uc.exporter.FileExtension()),
		Content:     buf.Bytes(),
		Count:       len(result.Closings),
	}, nil
}
