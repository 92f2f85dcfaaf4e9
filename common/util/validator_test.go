package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRender struct {
	Backends []string `validate:"required,min=1,unique,dive,oneof=engine vector"`
	Workers  int      `validate:"gte=0,lte=64"`
	Remote   string   `validate:"omitempty,url"`
}

type testConfig struct {
	Port   *string     `validate:"required"`
	Render *testRender `validate:"required"`
}

func port() *string {
	p := ":8000"
	return &p
}

func TestValidateStruct_ValidData(t *testing.T) {
	cfg := testConfig{
		Port:   port(),
		Render: &testRender{Backends: []string{"engine", "vector"}, Workers: 4, Remote: "https://res.example.com"},
	}

	assert.NoError(t, ValidateStruct(cfg))
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  testConfig
	}{
		{name: "missing port", cfg: testConfig{Render: &testRender{Backends: []string{"vector"}}}},
		{name: "missing render", cfg: testConfig{Port: port()}},
		{name: "empty backends", cfg: testConfig{Port: port(), Render: &testRender{}}},
		{name: "unknown backend", cfg: testConfig{Port: port(), Render: &testRender{Backends: []string{"canvas"}}}},
		{name: "duplicate backend", cfg: testConfig{Port: port(), Render: &testRender{Backends: []string{"vector", "vector"}}}},
		{name: "negative workers", cfg: testConfig{Port: port(), Render: &testRender{Backends: []string{"vector"}, Workers: -1}}},
		{name: "bad url", cfg: testConfig{Port: port(), Render: &testRender{Backends: []string{"vector"}, Remote: "not a url"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.cfg)
			require.Error(t, err)
			assert.NotEmpty(t, GetValidationErrors(err))
		})
	}
}

func TestGetValidationErrors_Messages(t *testing.T) {
	tests := []struct {
		name string
		cfg  testConfig
		want string
	}{
		{
			name: "required",
			cfg:  testConfig{Render: &testRender{Backends: []string{"vector"}}},
			want: "testConfig.Port is required",
		},
		{
			name: "oneof",
			cfg:  testConfig{Port: port(), Render: &testRender{Backends: []string{"canvas"}}},
			want: "testConfig.Render.Backends[0] must be one of [engine vector]",
		},
		{
			name: "gte",
			cfg:  testConfig{Port: port(), Render: &testRender{Backends: []string{"vector"}, Workers: -2}},
			want: "testConfig.Render.Workers must be >= 0",
		},
		{
			name: "lte",
			cfg:  testConfig{Port: port(), Render: &testRender{Backends: []string{"vector"}, Workers: 65}},
			want: "testConfig.Render.Workers must be <= 64",
		},
		{
			name: "unique",
			cfg:  testConfig{Port: port(), Render: &testRender{Backends: []string{"vector", "vector"}}},
			want: "testConfig.Render.Backends must not contain duplicates",
		},
		{
			name: "url",
			cfg:  testConfig{Port: port(), Render: &testRender{Backends: []string{"vector"}, Remote: "nope"}},
			want: "testConfig.Render.Remote must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := GetValidationErrors(ValidateStruct(tt.cfg))
			assert.Contains(t, messages, tt.want)
		})
	}
}

func TestGetValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(errors.New("plain error")))
	assert.Empty(t, GetValidationErrors(nil))
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	assert.Error(t, err)
	assert.Empty(t, GetValidationErrors(err))
}
