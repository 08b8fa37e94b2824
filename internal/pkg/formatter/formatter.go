package formatter

import (
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
)

type Formatter interface {
	Format(title, body string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FileMeta carries the download headers for a rendered document.
type FileMeta struct {
	Filename    string
	ContentType string
}

// NewFileMeta derives a safe download filename from the document title.
func NewFileMeta(title string, f Formatter) *FileMeta {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, title)
	if name == "" {
		name = "export"
	}

	return &FileMeta{
		Filename:    name + f.FileExtension(),
		ContentType: f.ContentType(),
	}
}
