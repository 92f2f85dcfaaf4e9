package renderer

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// VectorBackend draws the scene as an SVG document in-process. It has no
// external dependency and is meant to be the last entry of a fallback chain.
type VectorBackend struct{}

func NewVectorBackend() *VectorBackend {
	return &VectorBackend{}
}

func (b *VectorBackend) Name() string {
	return "vector"
}

func (b *VectorBackend) Render(ctx context.Context, job *Job) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Output{Bytes: []byte(SVGDocument(job.Scene)), MimeType: MimeSVG}, nil
}

// SVGDocument serialises a scene. All user-supplied text is XML-escaped.
func SVGDocument(scene Scene) string {
	var b strings.Builder
	w, h := num(scene.Canvas.Width), num(scene.Canvas.Height)

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", w, h, w, h)

	font := escapeXML(scene.Font.face().css)
	for _, el := range scene.Elements {
		switch el.Kind {
		case KindRect:
			writeSVGRect(&b, el)
		case KindCircle:
			fmt.Fprintf(&b, `  <circle data-role="%s" cx="%s" cy="%s" r="%s" fill="%s"%s/>`+"\n",
				escapeXML(el.Role), num(el.Center.X), num(el.Center.Y), num(el.Width/2), el.Fill.Hex(), opacityAttr(el.Opacity))
		case KindText:
			writeSVGText(&b, el, font)
		case KindImage:
			mime := "image/png"
			if el.ImageType == "jpeg" {
				mime = "image/jpeg"
			}
			corner := el.TopLeft()
			fmt.Fprintf(&b, `  <image data-role="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" xlink:href="data:%s;base64,%s"%s/>`+"\n",
				escapeXML(el.Role), num(corner.X), num(corner.Y), num(el.Width), num(el.Height),
				mime, base64.StdEncoding.EncodeToString(el.Image), opacityAttr(el.Opacity))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeSVGRect(b *strings.Builder, el Element) {
	corner := el.TopLeft()
	paint := `fill="none"`
	if el.Filled {
		paint = fmt.Sprintf(`fill="%s"`, el.Fill.Hex())
	}
	if el.StrokeWidth > 0 {
		paint += fmt.Sprintf(` stroke="%s" stroke-width="%s"`, el.Stroke.Hex(), num(el.StrokeWidth))
	}
	fmt.Fprintf(b, `  <rect data-role="%s" x="%s" y="%s" width="%s" height="%s" %s%s/>`+"\n",
		escapeXML(el.Role), num(corner.X), num(corner.Y), num(el.Width), num(el.Height), paint, opacityAttr(el.Opacity))
}

func writeSVGText(b *strings.Builder, el Element, font string) {
	weight, style := "normal", "normal"
	if el.Bold {
		weight = "bold"
	}
	if el.Italic {
		style = "italic"
	}
	transform := ""
	if el.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(el.Rotation), num(el.Center.X), num(el.Center.Y))
	}

	fmt.Fprintf(b, `  <text data-role="%s" font-family="%s" font-size="%s" font-weight="%s" font-style="%s" fill="%s" text-anchor="middle" dominant-baseline="central"%s%s>`,
		escapeXML(el.Role), font, num(el.FontSize), weight, style, el.Fill.Hex(), opacityAttr(el.Opacity), transform)
	for i, at := range el.LineCenters() {
		fmt.Fprintf(b, `<tspan x="%s" y="%s">%s</tspan>`, num(at.X), num(at.Y), escapeXML(el.Lines[i]))
	}
	b.WriteString("</text>\n")
}

func opacityAttr(opacity float64) string {
	if opacity >= 1 {
		return ""
	}
	return fmt.Sprintf(` opacity="%s"`, num(opacity))
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
