package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// Text items whose Y coordinates differ by no more than this many
	// points belong to the same line.
	rowTolerance = 3.0
	// A horizontal gap wider than this fraction of the font size marks
	// a word boundary.
	wordSpaceMultiplier = 0.3
)

// composeLines rebuilds reading-order lines from positioned text
// items: items are grouped into rows by Y coordinate, rows are ordered
// top to bottom, and items within a row left to right.
func composeLines(texts []pdf.Text) string {
	items := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" || t.S == "\n" {
			continue
		}
		items = append(items, t)
	}
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, row := range groupRows(items) {
		if i > 0 {
			b.WriteByte('\n')
		}
		sort.SliceStable(row, func(a, c int) bool { return row[a].X < row[c].X })
		for j, t := range row {
			if j > 0 {
				gap := t.X - (row[j-1].X + row[j-1].W)
				if gap > wordSpaceMultiplier*t.FontSize {
					b.WriteByte(' ')
				}
			}
			b.WriteString(t.S)
		}
	}
	return b.String()
}

// groupRows buckets text items into rows by Y coordinate. PDF Y
// coordinates grow bottom to top, so rows are sorted by descending Y.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		items      []pdf.Text
	}

	var buckets []*bucket
	for _, t := range texts {
		var home *bucket
		for _, bk := range buckets {
			if t.Y >= bk.yMin-rowTolerance && t.Y <= bk.yMax+rowTolerance {
				home = bk
				break
			}
		}
		if home == nil {
			buckets = append(buckets, &bucket{yMin: t.Y, yMax: t.Y, items: []pdf.Text{t}})
			continue
		}
		home.items = append(home.items, t)
		if t.Y < home.yMin {
			home.yMin = t.Y
		}
		if t.Y > home.yMax {
			home.yMax = t.Y
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdf.Text, len(buckets))
	for i, bk := range buckets {
		rows[i] = bk.items
	}
	return rows
}
