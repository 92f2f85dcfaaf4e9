package renderer

import (
	"math"
	"strings"
	"unicode/utf8"
)

type ElementKind int

const (
	KindRect ElementKind = iota
	KindCircle
	KindText
	KindImage
)

func (k ElementKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Element is one drawable item of a certificate in canvas units. Every element
// is anchored at its center; backends only translate these values into their
// own placement primitives.
type Element struct {
	Kind   ElementKind
	Role   string
	Center Point
	Width  float64
	Height float64

	Lines      []string
	FontSize   float64
	LineHeight float64
	Bold       bool
	Italic     bool

	Fill        Color
	Filled      bool
	Stroke      Color
	StrokeWidth float64

	Opacity  float64
	Rotation float64 // degrees, clockwise

	Image     []byte
	ImageType string // "png" or "jpeg"
}

// LineCenters returns the center point of every text line.
func (e Element) LineCenters() []Point {
	n := len(e.Lines)
	centers := make([]Point, n)
	for i := range centers {
		centers[i] = Point{
			X: e.Center.X,
			Y: e.Center.Y + (float64(i)-float64(n-1)/2)*e.LineHeight,
		}
	}
	return centers
}

// TopLeft is the corner of the element's box.
func (e Element) TopLeft() Point {
	return Point{X: e.Center.X - e.Width/2, Y: e.Center.Y - e.Height/2}
}

// Scene is the fully resolved layout of one certificate.
type Scene struct {
	Canvas     Size
	Font       FontFamily
	Background Color
	Elements   []Element
}

// Visible drops elements that cannot contribute a pixel.
func (s Scene) Visible() []Element {
	visible := make([]Element, 0, len(s.Elements))
	for _, el := range s.Elements {
		if el.Opacity <= 0 {
			continue
		}
		visible = append(visible, el)
	}
	return visible
}

func (s Scene) Find(role string) (Element, bool) {
	for _, el := range s.Elements {
		if el.Role == role {
			return el, true
		}
	}
	return Element{}, false
}

const (
	lineHeightRatio = 1.25
	charWidthRatio  = 0.55
	textWidthRatio  = 0.8
	frameInset      = 24.0
	defaultLogoSize = 96.0
	qrSizeRatio     = 0.14
)

var footerPosition = Position{X: 50, Y: 92}

// BuildScene resolves every element of the template against its canvas. Text is
// substituted here with the given policy so that all backends print the same
// strings.
func BuildScene(cfg TemplateConfig, rctx RenderContext, policy FormatPolicy, assets Assets) Scene {
	canvas := cfg.Canvas()
	primary := colorOr(cfg.PrimaryColor, black)
	secondary := colorOr(cfg.SecondaryColor, black)
	background := colorOr(cfg.BackgroundColor, white)
	border := colorOr(cfg.BorderColor, black)
	center := Point{X: canvas.Width / 2, Y: canvas.Height / 2}

	scene := Scene{Canvas: canvas, Font: cfg.FontFamily, Background: background}
	add := func(el Element) {
		scene.Elements = append(scene.Elements, el)
	}

	add(Element{
		Kind: KindRect, Role: "background", Center: center,
		Width: canvas.Width, Height: canvas.Height,
		Fill: background, Filled: true, Opacity: 1,
	})

	for _, el := range styleDecorations(cfg, canvas, primary, secondary) {
		add(el)
	}

	if cfg.ShowBorder && cfg.BorderWidth > 0 {
		add(Element{
			Kind: KindRect, Role: "border", Center: center,
			Width: canvas.Width - 2*frameInset, Height: canvas.Height - 2*frameInset,
			Stroke: border, StrokeWidth: cfg.BorderWidth, Opacity: 1,
		})
	}

	if cfg.ShowWatermark {
		size := math.Min(canvas.Width, canvas.Height) / 6
		if el, ok := textElement("watermark", policy.Substitute(cfg.WatermarkText, rctx), center, size, canvas.Width*0.9, secondary); ok {
			el.Bold = true
			el.Rotation = -30
			el.Opacity = cfg.WatermarkOpacity
			add(el)
		}
	}

	maxWidth := canvas.Width * textWidthRatio

	titleAt := Resolve(cfg.TitlePosition, canvas)
	title, hasTitle := textElement("title", policy.Substitute(cfg.Title, rctx), titleAt, cfg.TitleFontSize, maxWidth, primary)
	if hasTitle {
		title.Bold = true
		add(title)
	}

	if cfg.Subtitle != "" {
		size := cfg.BodyFontSize * 1.1
		at := titleAt
		if hasTitle {
			at.Y += title.Height/2 + size*lineHeightRatio*0.75
		} else {
			at.Y += size * lineHeightRatio
		}
		at.Y = math.Min(at.Y, canvas.Height-size)
		if el, ok := textElement("subtitle", policy.Substitute(cfg.Subtitle, rctx), at, size, maxWidth, secondary); ok {
			el.Italic = true
			add(el)
		}
	}

	if el, ok := textElement("name", rctx.UserName, Resolve(cfg.NamePosition, canvas), cfg.NameFontSize, maxWidth, primary); ok {
		el.Bold = true
		el.Italic = cfg.Template == StyleElegant
		add(el)
	}

	if el, ok := textElement("body", policy.Substitute(cfg.BodyText, rctx), Resolve(cfg.BodyPosition, canvas), cfg.BodyFontSize, maxWidth, secondary); ok {
		add(el)
	}

	if cfg.Footer != "" {
		if el, ok := textElement("footer", policy.Substitute(cfg.Footer, rctx), Resolve(footerPosition, canvas), cfg.BodyFontSize*0.75, maxWidth, secondary); ok {
			add(el)
		}
	}

	if len(assets.Logo) > 0 && cfg.LogoPosition != nil {
		size := cfg.LogoSize
		if size <= 0 {
			size = defaultLogoSize
		}
		add(Element{
			Kind: KindImage, Role: "logo", Center: Resolve(*cfg.LogoPosition, canvas),
			Width: size, Height: size, Opacity: 1,
			Image: assets.Logo, ImageType: assets.LogoType,
		})
	}

	if len(assets.QRCode) > 0 && cfg.QRCodePosition != nil {
		size := math.Round(math.Min(canvas.Width, canvas.Height) * qrSizeRatio)
		add(Element{
			Kind: KindImage, Role: "qrcode", Center: Resolve(*cfg.QRCodePosition, canvas),
			Width: size, Height: size, Opacity: 1,
			Image: assets.QRCode, ImageType: "png",
		})
	}

	return scene
}

func styleDecorations(cfg TemplateConfig, canvas Size, primary, secondary Color) []Element {
	switch cfg.Template {
	case StyleModern:
		bar := math.Round(canvas.Height * 0.025)
		return []Element{
			{
				Kind: KindRect, Role: "accent", Center: Point{X: canvas.Width / 2, Y: bar / 2},
				Width: canvas.Width, Height: bar, Fill: primary, Filled: true, Opacity: 1,
			},
			{
				Kind: KindRect, Role: "accent", Center: Point{X: canvas.Width / 2, Y: canvas.Height - bar/4},
				Width: canvas.Width, Height: bar / 2, Fill: secondary, Filled: true, Opacity: 1,
			},
		}
	case StyleClassic:
		if !cfg.ShowBorder {
			return nil
		}
		inset := frameInset + cfg.BorderWidth + 8
		return []Element{{
			Kind: KindRect, Role: "rule", Center: Point{X: canvas.Width / 2, Y: canvas.Height / 2},
			Width: canvas.Width - 2*inset, Height: canvas.Height - 2*inset,
			Stroke: secondary, StrokeWidth: math.Max(1, cfg.BorderWidth/3), Opacity: 1,
		}}
	case StyleElegant:
		const diameter = 16.0
		inset := frameInset + 18
		corners := []Point{
			{X: inset, Y: inset},
			{X: canvas.Width - inset, Y: inset},
			{X: inset, Y: canvas.Height - inset},
			{X: canvas.Width - inset, Y: canvas.Height - inset},
		}
		ornaments := make([]Element, 0, len(corners))
		for _, c := range corners {
			ornaments = append(ornaments, Element{
				Kind: KindCircle, Role: "ornament", Center: c,
				Width: diameter, Height: diameter, Fill: secondary, Filled: true, Opacity: 1,
			})
		}
		return ornaments
	}
	return nil
}

func textElement(role, text string, at Point, size, maxWidth float64, fill Color) (Element, bool) {
	lines := wrapText(text, size, maxWidth)
	if len(lines) == 0 {
		return Element{}, false
	}
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, estimateWidth(line, size))
	}
	lineHeight := size * lineHeightRatio
	return Element{
		Kind: KindText, Role: role, Center: at,
		Width: width, Height: lineHeight * float64(len(lines)),
		Lines: lines, FontSize: size, LineHeight: lineHeight,
		Fill: fill, Filled: true, Opacity: 1,
	}, true
}

func estimateWidth(line string, size float64) float64 {
	return float64(utf8.RuneCountInString(line)) * size * charWidthRatio
}

// wrapText breaks text on explicit newlines and then greedily on words so that
// no line is estimated wider than maxWidth. Single words longer than the limit
// stay on their own line.
func wrapText(text string, size, maxWidth float64) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if estimateWidth(candidate, size) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
