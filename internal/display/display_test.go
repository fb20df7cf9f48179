package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lss-dev/lss/internal/traverse"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"by":      FormatBytes,
		"Bytes":   FormatBytes,
		"bi":      FormatBinary,
		"binary":  FormatBinary,
		"kb":      FormatDecimal,
		"TB":      FormatDecimal,
		"decimal": FormatDecimal,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("parsecs")
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "123456", FormatSize(123456, FormatBytes))
	assert.Equal(t, "1.0 KiB", FormatSize(1024, FormatBinary))
	assert.Equal(t, "1.0 kB", FormatSize(1000, FormatDecimal))
}

func TestPermissions(t *testing.T) {
	dir := &traverse.Entry{Kind: traverse.KindDirectory, Meta: traverse.Metadata{Mode: 0o755}}
	assert.Equal(t, "drwxr-xr-x", Permissions(dir))

	file := &traverse.Entry{Kind: traverse.KindFile, Meta: traverse.Metadata{Mode: 0o644}}
	assert.Equal(t, "-rw-r--r--", Permissions(file))

	link := &traverse.Entry{Kind: traverse.KindSymlink, Meta: traverse.Metadata{Mode: 0o777}}
	assert.Equal(t, "lrwxrwxrwx", Permissions(link))

	other := &traverse.Entry{Kind: traverse.KindOther, Meta: traverse.Metadata{Mode: 0o600}}
	assert.Equal(t, "?rw-------", Permissions(other))
}

func testEntries() []*traverse.Entry {
	return []*traverse.Entry{
		{Name: "big", Size: 300, Kind: traverse.KindFile},
		{Name: "alpha", Size: 100, Kind: traverse.KindDirectory},
		{Name: "mid", Size: 200, Kind: traverse.KindSymlink},
	}
}

func TestSort(t *testing.T) {
	entries := testEntries()

	bySize := Sort(entries, SortBySize, false)
	assert.Equal(t, []string{"alpha", "mid", "big"}, names(bySize))

	byName := Sort(entries, SortByName, false)
	assert.Equal(t, []string{"alpha", "big", "mid"}, names(byName))

	reversed := Sort(entries, SortBySize, true)
	assert.Equal(t, []string{"big", "mid", "alpha"}, names(reversed))

	// The caller's slice is never reordered.
	assert.Equal(t, []string{"big", "alpha", "mid"}, names(entries))
}

func names(entries []*traverse.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, testEntries(), FormatBytes)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5, "header, rule, one row per entry")
	assert.Contains(t, lines[0], "Permissions")
	assert.Contains(t, lines[0], "Name")
	assert.True(t, strings.HasPrefix(lines[1], "---"))
	assert.Contains(t, buf.String(), "alpha")
	assert.Contains(t, buf.String(), "300")

	for _, line := range lines[2:] {
		assert.Equal(t, len(lines[0]), len(line), "every row is padded to the same width")
	}
}
