// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tips

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, Encode(&buf, Default(), format))

			decoded, err := Decode(&buf, format)
			require.NoError(t, err)

			if diff := cmp.Diff(Default().Table(), decoded.Table()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeJSONLayout(t *testing.T) {
	t.Parallel()

	c := MustNew(Table{"ctx": {
		{Title: "with link", Content: "c", Closable: true, Link: &Link{Label: "Docs", URL: "https://example.com"}},
		{Title: "no link", Content: "c"},
	}})

	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, c, FormatJSON))

	var raw map[string][]map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw["ctx"], 2)

	assert.Equal(t, map[string]any{
		"title":    "with link",
		"content":  "c",
		"closable": true,
		"link":     map[string]any{"label": "Docs", "url": "https://example.com"},
	}, raw["ctx"][0])

	_, hasLink := raw["ctx"][1]["link"]
	assert.False(t, hasLink, "absent link must be omitted")
	assert.Equal(t, false, raw["ctx"][1]["closable"])
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	const doc = `
labelingInterface:
  - title: Shortcuts
    content: "Press ? to list every hotkey."
    closable: false
  - title: Did you know?
    content: Regions can be duplicated.
    closable: true
    link:
      label: Learn more
      url: https://labelstud.io/guide/labeling
`

	c, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)

	got := c.Lookup("labelingInterface")
	require.Len(t, got, 2)
	assert.Equal(t, "Shortcuts", got[0].Title)
	assert.Nil(t, got[0].Link)
	assert.False(t, got[0].Closable)
	require.NotNil(t, got[1].Link)
	assert.Equal(t, "https://labelstud.io/guide/labeling", got[1].Link.URL)
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		input   string
		wantErr error
	}{
		{
			name:   "unknown JSON field",
			format: FormatJSON,
			input:  `{"ctx": [{"title": "t", "content": "c", "closable": true, "priority": 1}]}`,
		},
		{
			name:   "unknown YAML field",
			format: FormatYAML,
			input:  "ctx:\n  - title: t\n    content: c\n    priority: 1\n",
		},
		{
			name:   "malformed JSON",
			format: FormatJSON,
			input:  `{"ctx": [`,
		},
		{
			name:    "invalid tip",
			format:  FormatJSON,
			input:   `{"ctx": [{"title": "", "content": "c", "closable": true}]}`,
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "relative URL",
			format:  FormatYAML,
			input:   "ctx:\n  - title: t\n    content: c\n    link:\n      label: l\n      url: /guide\n",
			wantErr: ErrInvalidLinkURL,
		},
		{
			name:    "duplicate JSON context",
			format:  FormatJSON,
			input:   `{"a": [{"title": "1", "content": "c"}], "a": [{"title": "2", "content": "c"}]}`,
			wantErr: ErrDuplicateKey,
		},
		{
			name:   "duplicate YAML context",
			format: FormatYAML,
			input:  "a:\n  - title: \"1\"\n    content: c\na:\n  - title: \"2\"\n    content: c\n",
		},
		{
			name:   "JSON array at top level",
			format: FormatJSON,
			input:  `[{"title": "t", "content": "c"}]`,
		},
		{
			name:   "truncated JSON object",
			format: FormatJSON,
			input:  `{"a": [{"title": "t", "content": "c"}]`,
		},
		{
			name:    "unknown format",
			format:  Format("toml"),
			input:   `ctx = []`,
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.Nil(t, c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.ErrorIs(t, Encode(&buf, Default(), Format("xml")), ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"json":  FormatJSON,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		" yml ": FormatYAML,
	}

	for name, want := range tests {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"tips.json":         FormatJSON,
		"/etc/tips/a.YAML":  FormatYAML,
		"./deploy/tips.yml": FormatYAML,
	}

	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("tips.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
