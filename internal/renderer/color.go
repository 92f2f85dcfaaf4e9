package renderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triple; alpha is carried separately as element opacity.
type Color struct {
	R, G, B uint8
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare is the hex form without the leading '#'.
func (c Color) HexBare() string {
	return c.Hex()[1:]
}

// parseColor understands the CSS forms accepted by validation: #rgb, #rrggbb,
// rgb(), rgba(), hsl() and hsla(). Alpha is ignored.
func parseColor(value string) (Color, bool) {
	s := strings.ToLower(strings.TrimSpace(value))

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6, 8:
			hex = hex[:6]
		default:
			return Color{}, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
	}

	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	fn := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) < 3 {
		return Color{}, false
	}

	switch fn {
	case "rgb", "rgba":
		var out [3]uint8
		for i := 0; i < 3; i++ {
			part := strings.TrimSpace(parts[i])
			var v float64
			var err error
			if strings.HasSuffix(part, "%") {
				v, err = strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
				v = v * 255 / 100
			} else {
				v, err = strconv.ParseFloat(part, 64)
			}
			if err != nil {
				return Color{}, false
			}
			out[i] = clampByte(v)
		}
		return Color{R: out[0], G: out[1], B: out[2]}, true
	case "hsl", "hsla":
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		sat, errS := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[1]), "%"), 64)
		light, errL := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[2]), "%"), 64)
		if errH != nil || errS != nil || errL != nil {
			return Color{}, false
		}
		return hslToRGB(h, sat/100, light/100), true
	}
	return Color{}, false
}

func hslToRGB(h, s, l float64) Color {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	if s == 0 {
		v := clampByte(l * 255)
		return Color{R: v, G: v, B: v}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return Color{
		R: clampByte(hueToChannel(p, q, h+1.0/3) * 255),
		G: clampByte(hueToChannel(p, q, h) * 255),
		B: clampByte(hueToChannel(p, q, h-1.0/3) * 255),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// colorOr parses value and falls back to def when it cannot be understood.
func colorOr(value string, def Color) Color {
	if c, ok := parseColor(value); ok {
		return c
	}
	return def
}

var (
	black = Color{}
	white = Color{R: 255, G: 255, B: 255}
)
