package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type squadronRow struct {
	Name      string `json:"name" yaml:"name"`
	Available int    `json:"available" yaml:"available"`
}

func format(t *testing.T, name string, opts FormatterOptions, data any) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	f, err := NewFormatter(name, &opts)
	require.NoError(t, err)
	err = f.Format(data)
	return buf.String(), err
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{FormatText, FormatJSON, FormatYAML, ""} {
		_, err := NewFormatter(name, nil)
		assert.NoError(t, err, name)
	}
	_, err := NewFormatter("xml", nil)
	assert.ErrorContains(t, err, "unknown format: xml")
}

func TestJSONFormatter(t *testing.T) {
	row := squadronRow{Name: "VFA-113", Available: 8}

	out, err := format(t, FormatJSON, FormatterOptions{}, row)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "VFA-113"`)
	assert.Contains(t, out, `"available": 8`)

	out, err = format(t, FormatJSON, FormatterOptions{Compact: true}, row)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"VFA-113","available":8}`+"\n", out)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := format(t, FormatYAML, FormatterOptions{}, []squadronRow{{Name: "VF-41", Available: 10}})
	require.NoError(t, err)
	assert.Equal(t, "- name: VF-41\n  available: 10\n", out)
}

type greeting struct{ name string }

func (g greeting) Render(styles Styles) string {
	return styles.Title.Render("hello " + g.name)
}

type stringer struct{}

func (stringer) String() string { return "from stringer" }

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		want    string
		wantErr bool
	}{
		{name: "string", data: "hello world", want: "hello world"},
		{name: "renderer", data: greeting{name: "viper"}, want: "hello viper"},
		{name: "stringer", data: stringer{}, want: "from stringer"},
		{name: "no text form", data: squadronRow{Name: "VF-41"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := format(t, FormatText, FormatterOptions{NoColor: true}, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}
