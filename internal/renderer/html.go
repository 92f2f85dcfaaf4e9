package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
)

const certificateHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Certificate</title>
  <style>
    * { box-sizing: border-box; margin: 0; padding: 0; }
    html, body { width: {{.Width}}px; height: {{.Height}}px; overflow: hidden; }
    body { position: relative; font-family: {{.Font}}; background: {{.Background}}; }
    .el { position: absolute; }
    .text { white-space: nowrap; text-align: center; }
    .text span { display: block; }
  </style>
</head>
<body>
{{- range .Elements}}
  {{- if .Src}}
  <img class="el" data-role="{{.Role}}" style="{{.Style}}" src="{{.Src}}" alt="{{.Role}}" />
  {{- else if .Lines}}
  <div class="el text" data-role="{{.Role}}" style="{{.Style}}">{{range .Lines}}<span>{{.}}</span>{{end}}</div>
  {{- else}}
  <div class="el" data-role="{{.Role}}" style="{{.Style}}"></div>
  {{- end}}
{{- end}}
</body>
</html>
`

var certificateHTML = template.Must(template.New("certificate").Parse(certificateHTMLTemplate))

type htmlDocument struct {
	Width      float64
	Height     float64
	Font       template.CSS
	Background template.CSS
	Elements   []htmlElement
}

type htmlElement struct {
	Role  string
	Style template.CSS
	Lines []string
	Src   template.URL
}

// HTMLDocument lays the scene out as absolutely positioned boxes, each
// centered on its anchor. Styles are assembled only from numbers, parsed
// colors and the fixed font table; text goes through html/template escaping.
func HTMLDocument(scene Scene) (string, error) {
	doc := htmlDocument{
		Width:      scene.Canvas.Width,
		Height:     scene.Canvas.Height,
		Font:       template.CSS(scene.Font.face().css),
		Background: template.CSS(scene.Background.Hex()),
	}

	for _, el := range scene.Elements {
		view := htmlElement{Role: el.Role, Style: template.CSS(elementStyle(el))}
		switch el.Kind {
		case KindText:
			view.Lines = el.Lines
		case KindImage:
			mime := "image/png"
			if el.ImageType == "jpeg" {
				mime = "image/jpeg"
			}
			view.Src = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(el.Image))
		}
		doc.Elements = append(doc.Elements, view)
	}

	var buf bytes.Buffer
	if err := certificateHTML.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute certificate template: %w", err)
	}
	return buf.String(), nil
}

func elementStyle(el Element) string {
	var rules []string
	add := func(format string, args ...any) {
		rules = append(rules, fmt.Sprintf(format, args...))
	}

	add("left:%spx", num(el.Center.X))
	add("top:%spx", num(el.Center.Y))

	transform := "translate(-50%,-50%)"
	if el.Rotation != 0 {
		transform += fmt.Sprintf(" rotate(%sdeg)", num(el.Rotation))
	}
	add("transform:%s", transform)

	if el.Opacity < 1 {
		add("opacity:%s", num(el.Opacity))
	}

	switch el.Kind {
	case KindText:
		add("font-size:%spx", num(el.FontSize))
		add("line-height:%spx", num(el.LineHeight))
		add("color:%s", el.Fill.Hex())
		if el.Bold {
			add("font-weight:bold")
		}
		if el.Italic {
			add("font-style:italic")
		}
	case KindRect, KindCircle, KindImage:
		add("width:%spx", num(el.Width))
		add("height:%spx", num(el.Height))
		if el.Filled && el.Kind != KindImage {
			add("background:%s", el.Fill.Hex())
		}
		if el.StrokeWidth > 0 {
			add("border:%spx solid %s", num(el.StrokeWidth), el.Stroke.Hex())
		}
		if el.Kind == KindCircle {
			add("border-radius:50%%")
		}
		if el.Kind == KindImage {
			add("object-fit:contain")
		}
	}

	return strings.Join(rules, ";")
}
