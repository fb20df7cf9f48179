// Package display renders the final listing: sorting, column-width layout,
// permission strings, and human-readable sizes. It consumes resolved
// entries from the traversal engine and never writes a partial table.
package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/lss-dev/lss/internal/traverse"
)

// Format selects how byte sizes are rendered.
type Format string

const (
	FormatBytes   Format = "bytes"
	FormatDecimal Format = "decimal"
	FormatBinary  Format = "binary"
)

// ParseFormat accepts the legacy short forms as well as full names.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "by", "bytes":
		return FormatBytes, nil
	case "bi", "binary":
		return FormatBinary, nil
	case "kb", "mb", "gb", "tb", "decimal":
		return FormatDecimal, nil
	}
	return "", fmt.Errorf("unknown size format: %s (want bytes, decimal, or binary)", s)
}

// FormatSize renders size in the chosen format.
func FormatSize(size uint64, f Format) string {
	switch f {
	case FormatBytes:
		return strconv.FormatUint(size, 10)
	case FormatBinary:
		return humanize.IBytes(size)
	default:
		return humanize.Bytes(size)
	}
}

// Permissions renders the mode column in ls style: a type rune followed by
// the nine rwx bits.
func Permissions(e *traverse.Entry) string {
	var b strings.Builder
	switch e.Kind {
	case traverse.KindDirectory:
		b.WriteByte('d')
	case traverse.KindSymlink:
		b.WriteByte('l')
	case traverse.KindFile:
		b.WriteByte('-')
	default:
		b.WriteByte('?')
	}
	perm := e.Meta.Mode.Perm()
	for i := 8; i >= 0; i-- {
		if perm&(1<<uint(i)) != 0 {
			b.WriteByte("rwx"[(8-i)%3])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// SortMode selects the listing order.
type SortMode string

const (
	SortBySize SortMode = "size"
	SortByName SortMode = "name"
	SortByType SortMode = "type"
)

// Sort returns a sorted copy of entries; the input is left untouched.
func Sort(entries []*traverse.Entry, mode SortMode, reverse bool) []*traverse.Entry {
	sorted := make([]*traverse.Entry, len(entries))
	copy(sorted, entries)

	less := func(a, b *traverse.Entry) bool { return a.Size < b.Size }
	switch mode {
	case SortByName:
		less = func(a, b *traverse.Entry) bool { return a.Name < b.Name }
	case SortByType:
		less = func(a, b *traverse.Entry) bool { return a.Kind < b.Kind }
	}
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	if reverse {
		sorted = lo.Reverse(sorted)
	}
	return sorted
}

var header = []string{"Permissions", "Links", "UID", "GID", "Size", "Type", "Name"}

// Render writes the aligned header and one row per entry. Column widths are
// computed from the realized cell text plus two spaces of gutter; nothing
// is written before every row has been resolved.
func Render(w io.Writer, entries []*traverse.Entry, f Format) {
	rows := lo.Map(entries, func(e *traverse.Entry, _ int) []string {
		return []string{
			Permissions(e),
			strconv.FormatUint(e.Meta.Nlink, 10),
			strconv.FormatUint(uint64(e.Meta.UID), 10),
			strconv.FormatUint(uint64(e.Meta.GID), 10),
			FormatSize(e.Size, f),
			string(e.Kind),
			e.Name,
		}
	})

	widths := lo.Map(header, func(h string, col int) int {
		cells := lo.Map(rows, func(r []string, _ int) int { return len(r[col]) })
		return lo.Max(append(cells, len(h))) + 2
	})

	writeRow := func(cells []string) {
		for col, cell := range cells {
			fmt.Fprintf(w, "%-*s", widths[col], cell)
		}
		fmt.Fprintln(w)
	}

	writeRow(header)
	fmt.Fprintln(w, strings.Repeat("-", lo.Sum(widths)))
	for _, r := range rows {
		writeRow(r)
	}
}
