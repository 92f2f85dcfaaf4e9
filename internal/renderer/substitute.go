package renderer

import (
	"regexp"
	"time"
)

// RenderContext carries the per-participant values used to fill placeholders.
// Every field is optional.
type RenderContext struct {
	ParticipantID  string     `json:"participantId,omitempty"`
	UserName       string     `json:"userName"`
	EventName      string     `json:"eventName"`
	EventDate      *time.Time `json:"eventDate,omitempty"`
	EventStartTime *time.Time `json:"eventStartTime,omitempty"`
	EventEndTime   *time.Time `json:"eventEndTime,omitempty"`
}

const (
	DefaultDateLayout = "January 2, 2006"
	DefaultTimeLayout = "15:04"
)

// FormatPolicy is the single date/time formatting rule shared by every backend,
// so one instant always prints the same text whichever backend renders it.
type FormatPolicy struct {
	Location   *time.Location
	DateLayout string
	TimeLayout string
}

func DefaultFormatPolicy() FormatPolicy {
	return FormatPolicy{
		Location:   time.UTC,
		DateLayout: DefaultDateLayout,
		TimeLayout: DefaultTimeLayout,
	}
}

func (p FormatPolicy) normalized() FormatPolicy {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.DateLayout == "" {
		p.DateLayout = DefaultDateLayout
	}
	if p.TimeLayout == "" {
		p.TimeLayout = DefaultTimeLayout
	}
	return p
}

func (p FormatPolicy) Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	p = p.normalized()
	return t.In(p.Location).Format(p.DateLayout)
}

func (p FormatPolicy) Time(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	p = p.normalized()
	return t.In(p.Location).Format(p.TimeLayout)
}

// TimeRange renders "start - end", or whichever side is known.
func (p FormatPolicy) TimeRange(start, end *time.Time) string {
	s, e := p.Time(start), p.Time(end)
	switch {
	case s != "" && e != "":
		return s + " - " + e
	case s != "":
		return s
	default:
		return e
	}
}

var tokenPattern = regexp.MustCompile(`\{([A-Za-z]+)\}`)

// Substitute replaces the recognized placeholder tokens in text. Unknown tokens
// are kept verbatim and missing context values become empty strings. Replacement
// values are never expanded again.
func (p FormatPolicy) Substitute(text string, rctx RenderContext) string {
	if text == "" {
		return text
	}

	values := map[string]string{
		"userName":       rctx.UserName,
		"eventName":      rctx.EventName,
		"eventDate":      p.Date(rctx.EventDate),
		"eventTime":      p.TimeRange(rctx.EventStartTime, rctx.EventEndTime),
		"eventStartTime": p.Time(rctx.EventStartTime),
		"eventEndTime":   p.Time(rctx.EventEndTime),
	}

	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		if value, ok := values[token[1:len(token)-1]]; ok {
			return value
		}
		return token
	})
}

// Substitute applies the default format policy.
func Substitute(text string, rctx RenderContext) string {
	return DefaultFormatPolicy().Substitute(text, rctx)
}
