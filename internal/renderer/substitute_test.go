package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2025, time.March, 14, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestSubstitute(t *testing.T) {
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		rctx RenderContext
		want string
	}{
		{
			name: "name and event",
			text: "Hello {userName}, for {eventName}",
			rctx: RenderContext{UserName: "Ana", EventName: "Workshop"},
			want: "Hello Ana, for Workshop",
		},
		{
			name: "missing values become empty",
			text: "Hello {userName}, for {eventName}",
			rctx: RenderContext{UserName: "Ana"},
			want: "Hello Ana, for ",
		},
		{
			name: "unknown token kept verbatim",
			text: "{userName} {unknownToken} {}",
			rctx: RenderContext{UserName: "Ana"},
			want: "Ana {unknownToken} {}",
		},
		{
			name: "date and times",
			text: "{eventDate} {eventStartTime}-{eventEndTime}",
			rctx: RenderContext{EventDate: &date, EventStartTime: at(9, 0), EventEndTime: at(17, 30)},
			want: "March 14, 2025 09:00-17:30",
		},
		{
			name: "event time range",
			text: "{eventTime}",
			rctx: RenderContext{EventStartTime: at(9, 0), EventEndTime: at(17, 30)},
			want: "09:00 - 17:30",
		},
		{
			name: "event time with start only",
			text: "{eventTime}",
			rctx: RenderContext{EventStartTime: at(9, 0)},
			want: "09:00",
		},
		{
			name: "substituted values are not expanded again",
			text: "{userName}",
			rctx: RenderContext{UserName: "{eventName}", EventName: "Workshop"},
			want: "{eventName}",
		},
		{
			name: "no tokens",
			text: "Certificate of Completion",
			want: "Certificate of Completion",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.rctx))
		})
	}
}

func TestSubstitute_IsIdempotentWithoutTokensInValues(t *testing.T) {
	rctx := RenderContext{UserName: "Ana", EventName: "Workshop", EventStartTime: at(10, 15)}
	text := "{userName} attended {eventName} at {eventTime} {other}"

	once := Substitute(text, rctx)
	assert.Equal(t, once, Substitute(once, rctx))
}

func TestFormatPolicy_Location(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	policy := FormatPolicy{Location: bangkok, DateLayout: "2 Jan 2006", TimeLayout: "3:04 PM"}
	rctx := RenderContext{EventDate: at(20, 0), EventStartTime: at(20, 0)}

	assert.Equal(t, "15 Mar 2025 3:00 AM", policy.Substitute("{eventDate} {eventStartTime}", rctx))
}

func TestFormatPolicy_ZeroValueUsesDefaults(t *testing.T) {
	rctx := RenderContext{EventDate: at(8, 0)}
	assert.Equal(t, "March 14, 2025", FormatPolicy{}.Substitute("{eventDate}", rctx))
}
