package report

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// reasoningLimit caps the judge reasoning shown in detailed result tables.
const reasoningLimit = 80

// newMarkdownTable creates a table writer that renders GitHub-style markdown
// tables: pipe borders on the sides, no top or bottom rule, headers kept in
// the case they were given.
func newMarkdownTable(w io.Writer, headers []string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}

	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// renderTable writes a complete markdown table into the builder, followed by
// a blank line.
func renderTable(b *strings.Builder, headers []string, rows [][]string) {
	table := newMarkdownTable(b, headers)
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
	b.WriteString("\n")
}

var cellSanitizer = strings.NewReplacer(
	"\n", " ",
	"\r", " ",
	"|", "\\|",
)

// sanitizeCell makes free text safe inside a markdown table cell. Judge
// reasoning regularly contains newlines and the occasional pipe.
func sanitizeCell(s string) string {
	return cellSanitizer.Replace(s)
}

// truncate shortens s to limit runes, appending the ellipsis marker whole so
// it is never split mid-marker.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
