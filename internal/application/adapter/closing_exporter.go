package adapter

import (
	"io"

	"github.com/cash-register/backend/internal/domain/entity"
)

// ClosingExporter renders closings into a downloadable document.
type ClosingExporter interface {
	// ContentType is the MIME type of the produced document.
	ContentType() string

	// FileExtension is the extension for downloads, without the dot.
	FileExtension() string

	// Export writes the closings to w.
	Export(w io.Writer, closings []*entity.CashClosing) error
}
