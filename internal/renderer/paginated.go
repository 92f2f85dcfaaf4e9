package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

const (
	pointsPerMM    = 72 / 25.4
	baselineOffset = 0.35
)

type PaginatedOptions struct {
	PageSize string
	Margin   float64
	Signer   *CertificateSigner
}

// PaginatedBackend prints the scene onto a paper page frame as PDF, one page
// per participant.
type PaginatedBackend struct {
	pageSize string
	margin   float64
	signer   *CertificateSigner
}

func NewPaginatedBackend(opts PaginatedOptions) *PaginatedBackend {
	b := &PaginatedBackend{
		pageSize: opts.PageSize,
		margin:   opts.Margin,
		signer:   opts.Signer,
	}
	if b.pageSize == "" {
		b.pageSize = DefaultPageSize
	}
	return b
}

func (b *PaginatedBackend) Name() string {
	return "paginated"
}

func (b *PaginatedBackend) Render(ctx context.Context, job *Job) (*Output, error) {
	return b.RenderPages(ctx, []*Job{job})
}

// RenderPages writes one page per job into a single document. All jobs are
// expected to share the same template.
func (b *PaginatedBackend) RenderPages(ctx context.Context, jobs []*Job) (*Output, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no pages to render")
	}

	frame := PageFrameFor(b.pageSize, jobs[0].Config.Orientation, b.margin)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: frame.Page.Width, Ht: frame.Page.Height},
	})
	pdf.SetCreator("easy-cert-render", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		b.drawPage(pdf, tr, frame, job.Scene, i)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to draw page %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	pdfBytes := buf.Bytes()

	if b.signer.IsEnabled() {
		documentID := jobs[0].Context.ParticipantID
		if len(jobs) > 1 || documentID == "" {
			documentID = uuid.NewString()
		}
		signed, err := b.signer.SignPDF(pdfBytes, documentID)
		if err != nil {
			slog.Warn("Paginated Signing skipped", "document_id", documentID, "error", err)
		} else {
			pdfBytes = signed
		}
	}

	return &Output{Bytes: pdfBytes, MimeType: MimePDF}, nil
}

func (b *PaginatedBackend) drawPage(pdf *gofpdf.Fpdf, tr func(string) string, frame PageFrame, scene Scene, page int) {
	canvas := scene.Canvas
	scale := frame.Scale(canvas)

	for _, el := range scene.Visible() {
		center := frame.Map(el.Center, canvas)
		w, h := el.Width*scale, el.Height*scale

		pdf.SetAlpha(el.Opacity, "Normal")
		if el.Rotation != 0 {
			pdf.TransformBegin()
			pdf.TransformRotate(-el.Rotation, center.X, center.Y)
		}

		switch el.Kind {
		case KindRect:
			style := ""
			if el.Filled {
				pdf.SetFillColor(int(el.Fill.R), int(el.Fill.G), int(el.Fill.B))
				style += "F"
			}
			if el.StrokeWidth > 0 {
				pdf.SetDrawColor(int(el.Stroke.R), int(el.Stroke.G), int(el.Stroke.B))
				pdf.SetLineWidth(el.StrokeWidth * scale)
				style += "D"
			}
			if style != "" {
				pdf.Rect(center.X-w/2, center.Y-h/2, w, h, style)
			}
		case KindCircle:
			pdf.SetFillColor(int(el.Fill.R), int(el.Fill.G), int(el.Fill.B))
			pdf.Circle(center.X, center.Y, w/2, "F")
		case KindText:
			drawText(pdf, tr, frame, canvas, scene.Font, el)
		case KindImage:
			name := fmt.Sprintf("%s-%d", el.Role, page)
			imageType := strings.ToUpper(el.ImageType)
			if imageType == "JPEG" {
				imageType = "JPG"
			}
			options := gofpdf.ImageOptions{ImageType: imageType}
			if pdf.Err() {
				break
			}
			if info := pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(el.Image)); info == nil || pdf.Err() {
				slog.Warn("Paginated Image skipped", "role", el.Role, "page", page+1, "error", pdf.Error())
				pdf.ClearError()
				break
			}
			pdf.ImageOptions(name, center.X-w/2, center.Y-h/2, w, h, false, options, 0, "")
		}

		if el.Rotation != 0 {
			pdf.TransformEnd()
		}
	}
	pdf.SetAlpha(1, "Normal")
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, frame PageFrame, canvas Size, font FontFamily, el Element) {
	style := ""
	if el.Bold {
		style += "B"
	}
	if el.Italic {
		style += "I"
	}
	scale := frame.Scale(canvas)
	sizeMM := el.FontSize * scale
	pdf.SetFont(font.face().pdf, style, sizeMM*pointsPerMM)
	pdf.SetTextColor(int(el.Fill.R), int(el.Fill.G), int(el.Fill.B))

	for i, at := range el.LineCenters() {
		line := tr(el.Lines[i])
		p := frame.Map(at, canvas)
		width := pdf.GetStringWidth(line)
		pdf.Text(p.X-width/2, p.Y+sizeMM*baselineOffset, line)
	}
}
