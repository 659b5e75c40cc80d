package serializer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("IsUnknown(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

type sample struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(sample{Name: "ct100", Value: 42.5}))

	var got sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample{Name: "ct100", Value: 42.5}, got)
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(sample{Name: "ct100", Value: 42.5}))

	var got sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample{Name: "ct100", Value: 42.5}, got)
}

type fakeTable struct {
	rows [][]string
}

func (f fakeTable) TableHeader() []string { return []string{"ID", "CPU"} }
func (f fakeTable) TableRows() [][]string { return f.rows }

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(fakeTable{rows: [][]string{{"100", "50.0"}}}))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "100")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(fakeTable{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestWriter_TableUnsupportedValue(t *testing.T) {
	w := NewWriter(FormatTable, &bytes.Buffer{})
	assert.Error(t, w.Serialize(sample{}))
}

func TestWriter_UnknownFormat(t *testing.T) {
	w := NewWriter(Format("xml"), &bytes.Buffer{})
	assert.Error(t, w.Serialize(sample{}))
}

func TestWriter_CloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := NewFileWriterOrStdout(FormatJSON, path)

	require.NoError(t, w.Serialize(sample{Name: "ct100", Value: 42.5}))
	require.NoError(t, w.Close())

	// A second close must not fail differently than a normal double close.
	assert.Error(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got sample
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sample{Name: "ct100", Value: 42.5}, got)
}

func TestWriter_CloseStdoutNoop(t *testing.T) {
	w := NewWriter(FormatJSON, &bytes.Buffer{})
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
