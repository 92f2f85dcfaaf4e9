package renderer

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"image/png"
	"io"

	digitorus_pdf "github.com/digitorus/pdf"
)

const (
	MimePNG = "image/png"
	MimeSVG = "image/svg+xml"
	MimePDF = "application/pdf"
)

// Backend is one rendering strategy. Implementations must treat the job as
// read-only and must honour ctx cancellation, tearing down any process or
// request they started.
type Backend interface {
	Name() string
	Render(ctx context.Context, job *Job) (*Output, error)
}

// Job is everything a backend needs for a single certificate. Assets are
// fetched once per render call and never cached by backends.
type Job struct {
	Config  TemplateConfig
	Context RenderContext
	Canvas  Size
	Scene   Scene
	Assets  Assets
}

type Output struct {
	Bytes    []byte
	MimeType string
}

// ValidateOutput rejects empty or structurally broken documents. A backend that
// returns without error but fails this check counts as a failed attempt.
func ValidateOutput(out *Output) error {
	if out == nil || len(out.Bytes) == 0 {
		return fmt.Errorf("%w: empty output", ErrInvalidOutput)
	}

	switch out.MimeType {
	case MimePNG:
		if _, err := png.Decode(bytes.NewReader(out.Bytes)); err != nil {
			return fmt.Errorf("%w: png: %v", ErrInvalidOutput, err)
		}
	case MimeSVG:
		if err := validateSVG(out.Bytes); err != nil {
			return fmt.Errorf("%w: svg: %v", ErrInvalidOutput, err)
		}
	case MimePDF:
		if err := validatePDF(out.Bytes); err != nil {
			return fmt.Errorf("%w: pdf: %v", ErrInvalidOutput, err)
		}
	default:
		return fmt.Errorf("%w: unsupported mime type %q", ErrInvalidOutput, out.MimeType)
	}
	return nil
}

func validateSVG(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if start, ok := token.(xml.StartElement); ok && !sawRoot {
			if start.Name.Local != "svg" {
				return fmt.Errorf("root element is <%s>", start.Name.Local)
			}
			sawRoot = true
		}
	}
	if !sawRoot {
		return errors.New("no root element")
	}
	return nil
}

func validatePDF(data []byte) (err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	reader, err := digitorus_pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	if reader.NumPage() == 0 {
		return errors.New("document has no pages")
	}
	return nil
}
