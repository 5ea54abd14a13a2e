package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	ID       string   `json:"id"`
	Featured bool     `json:"featured"`
	Year     int      `json:"year"`
	Type     []string `json:"type"`
	Client   *string  `json:"client"`
}

func TestWriteEDN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample{ID: "x", Featured: true, Year: 2026, Type: []string{"UI", "Brand"}}, "edn", false))
	require.Equal(t, `{:client nil :featured true :id "x" :type ["UI" "Brand"] :year 2026}`+"\n", buf.String())
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, map[string]any{"a": []any{}, "b": 1.5}, true))
	require.Equal(t, "{\n  :a []\n  :b 1.5\n}\n", buf.String())
}

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample{ID: "x", Type: []string{"UI"}}, "yaml", false))
	out := buf.String()
	require.Contains(t, out, "id: x\n")
	require.Contains(t, out, "type:\n  - UI\n")
}

func TestWriteJSON_NoHTMLEscape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]string{"s": "a & b <c>"}, "json", false))
	require.Equal(t, `{"s":"a & b <c>"}`, strings.TrimSpace(buf.String()))
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	require.ErrorContains(t, Write(&bytes.Buffer{}, 1, "toml", false), "unknown format")
}
