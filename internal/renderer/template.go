package renderer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type TemplateStyle string

const (
	StyleModern  TemplateStyle = "modern"
	StyleClassic TemplateStyle = "classic"
	StyleElegant TemplateStyle = "elegant"
)

type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

type FontFamily string

const (
	FontArial      FontFamily = "arial"
	FontHelvetica  FontFamily = "helvetica"
	FontGeorgia    FontFamily = "georgia"
	FontTimes      FontFamily = "times"
	FontCourier    FontFamily = "courier"
	FontMontserrat FontFamily = "montserrat"
	FontPlayfair   FontFamily = "playfair"
)

// fontFace is how one font family is spelled by each backend.
type fontFace struct {
	css    string
	pdf    string
	remote string
}

var fontFaces = map[FontFamily]fontFace{
	FontArial:      {css: `Arial, "Helvetica Neue", sans-serif`, pdf: "Helvetica", remote: "Arial"},
	FontHelvetica:  {css: `Helvetica, Arial, sans-serif`, pdf: "Helvetica", remote: "Helvetica"},
	FontGeorgia:    {css: `Georgia, "Times New Roman", serif`, pdf: "Times", remote: "Georgia"},
	FontTimes:      {css: `"Times New Roman", Times, serif`, pdf: "Times", remote: "Times New Roman"},
	FontCourier:    {css: `"Courier New", Courier, monospace`, pdf: "Courier", remote: "Courier New"},
	FontMontserrat: {css: `Montserrat, Arial, sans-serif`, pdf: "Helvetica", remote: "Montserrat"},
	FontPlayfair:   {css: `"Playfair Display", Georgia, serif`, pdf: "Times", remote: "Playfair Display"},
}

func (f FontFamily) face() fontFace {
	if face, ok := fontFaces[f]; ok {
		return face
	}
	return fontFaces[FontArial]
}

// Position is a center anchor expressed in percent of the canvas.
type Position struct {
	X float64 `json:"x" validate:"gte=0,lte=100"`
	Y float64 `json:"y" validate:"gte=0,lte=100"`
}

// TemplateConfig describes the appearance and content of a certificate.
// It is owned by the caller and treated as read-only for the whole render.
type TemplateConfig struct {
	ID      string `json:"id"`
	EventID string `json:"eventId"`

	Template        TemplateStyle `json:"template" validate:"required,oneof=modern classic elegant"`
	Orientation     Orientation   `json:"orientation" validate:"required,oneof=landscape portrait"`
	PrimaryColor    string        `json:"primaryColor" validate:"required,iscolor"`
	SecondaryColor  string        `json:"secondaryColor" validate:"required,iscolor"`
	BackgroundColor string        `json:"backgroundColor" validate:"required,iscolor"`
	BorderColor     string        `json:"borderColor" validate:"required,iscolor"`
	FontFamily      FontFamily    `json:"fontFamily" validate:"required,oneof=arial helvetica georgia times courier montserrat playfair"`
	TitleFontSize   float64       `json:"titleFontSize" validate:"gt=0"`
	NameFontSize    float64       `json:"nameFontSize" validate:"gt=0"`
	BodyFontSize    float64       `json:"bodyFontSize" validate:"gt=0"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	BodyText string `json:"bodyText"`
	Footer   string `json:"footer,omitempty"`

	TitlePosition  Position  `json:"titlePosition"`
	NamePosition   Position  `json:"namePosition"`
	BodyPosition   Position  `json:"bodyPosition"`
	LogoPosition   *Position `json:"logoPosition,omitempty"`
	QRCodePosition *Position `json:"qrCodePosition,omitempty"`

	ShowBorder       bool    `json:"showBorder"`
	BorderWidth      float64 `json:"borderWidth" validate:"gte=0"`
	ShowWatermark    bool    `json:"showWatermark"`
	WatermarkText    string  `json:"watermarkText"`
	WatermarkOpacity float64 `json:"watermarkOpacity" validate:"gte=0,lte=1"`
	LogoURL          string  `json:"logoUrl,omitempty" validate:"omitempty,url"`
	LogoSize         float64 `json:"logoSize" validate:"gte=0"`
	IncludeQRCode    bool    `json:"includeQRCode"`
	QRCodeText       string  `json:"qrCodeText,omitempty"`
}

var validate = newTemplateValidator()

func newTemplateValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every invariant of the config and reports all violations at once.
func (c TemplateConfig) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &ConfigInvalidError{Problems: []string{err.Error()}}
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	if c.LogoURL != "" && c.LogoPosition == nil {
		problems = append(problems, "logoPosition is required when logoUrl is set")
	}
	if c.IncludeQRCode && c.QRCodePosition == nil {
		problems = append(problems, "qrCodePosition is required when includeQRCode is set")
	}

	if len(problems) > 0 {
		return &ConfigInvalidError{Problems: problems}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	case "iscolor":
		return field + " must be a valid color"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

// Canvas returns the reference canvas for the config's orientation.
func (c TemplateConfig) Canvas() Size {
	return CanvasFor(c.Orientation)
}
