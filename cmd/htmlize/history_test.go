// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/htmlize/pkg/types"
)

func TestFormatHistoryOutputTable(t *testing.T) {
	results := []types.Conversion{
		{
			SourcePath:  "/docs/guide.md",
			Title:       "Guide",
			Status:      types.ConversionDone,
			ConvertedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		},
		{
			SourcePath: "/docs/broken.md",
			Status:     types.ConversionFailed,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, formatHistoryOutput(&buf, results, false))

	out := buf.String()
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "/docs/guide.md")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "2 results")
}

func TestFormatHistoryOutputEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatHistoryOutput(&buf, nil, false))
	assert.Equal(t, "No conversions found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatHistoryOutput(&buf, nil, true))
	assert.JSONEq(t, "[]", buf.String())
}

func TestFormatHistoryOutputJSON(t *testing.T) {
	results := []types.Conversion{{SourcePath: "a.md", Status: types.ConversionDone}}

	var buf bytes.Buffer
	require.NoError(t, formatHistoryOutput(&buf, results, true))

	var decoded []types.Conversion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, results[0].SourcePath, decoded[0].SourcePath)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("a", 20) + "/file.md"
	got := truncate(long, 12)
	assert.Len(t, got, 12)
	assert.True(t, strings.HasSuffix(got, "/file.md"))
	assert.True(t, strings.HasPrefix(got, "..."))
}

func TestTruncateMultibyte(t *testing.T) {
	got := truncate("notes/Größe.md", 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "...röße.md", got)
	assert.Equal(t, "ÄÖÜ", truncate("ÄÖÜ", 3))
}
