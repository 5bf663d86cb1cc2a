// Package list builds the resolved-cell rows and lipgloss styles that
// a terminal renderer needs to draw the `atma list` output. It does no
// terminal I/O itself; rendering the styled rows to a screen is the
// external collaborator's job.
package list

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/eval"
	"github.com/atma-editor/atma/palette"
)

// Mode is the `--mode` flag of spec §6.
type Mode int

const (
	ModeGrid Mode = iota
	ModeLines
	ModeList
)

// ColorStyle is the `--color-style` flag.
type ColorStyle int

const (
	ColorTile ColorStyle = iota
	ColorNone
	ColorText
)

// TextStyle is the `--text-style` flag.
type TextStyle int

const (
	TextStyleNone TextStyle = iota
	TextHex6
	TextHex3
	TextRGB
)

// RuleStyle is the `--rule-style` flag.
type RuleStyle int

const (
	RuleColored RuleStyle = iota
	RuleNone
	RulePlain
)

// Options bundles every `atma list` rendering flag.
type Options struct {
	Mode        Mode
	ColorStyle  ColorStyle
	TextStyle   TextStyle
	RuleStyle   RuleStyle
	MaxWidth    int
	MaxColumns  int
	MaxHeight   int
	NoColor     bool
}

// DefaultOptions matches a plain 256-color terminal with no explicit
// size constraints.
func DefaultOptions() Options {
	return Options{Mode: ModeGrid, ColorStyle: ColorTile, TextStyle: TextHex6, RuleStyle: RuleColored}
}

// Row is one resolved cell ready to render: its index, optional name,
// optional position, resolved color (or an error if evaluation
// failed), and the tile/text lipgloss styles for it.
type Row struct {
	Index    uint32
	Name     string
	HasName  bool
	Pos      palette.Position
	HasPos   bool
	Color    color.Color
	EvalErr  error
	Tile     lipgloss.Style
	TextLine lipgloss.Style
}

// Build resolves every index, in order, into a Row using opts to
// choose styling, per spec §6's `list` flags.
func Build(p *palette.Palette, indices []uint32, opts Options) []Row {
	r := eval.NewResolver(p)
	rows := make([]Row, 0, len(indices))
	for _, idx := range indices {
		row := Row{Index: idx}
		if name, ok := p.NameOf(idx); ok {
			row.Name, row.HasName = name, true
		}
		if pos, ok := p.PositionOf(idx); ok {
			row.Pos, row.HasPos = pos, true
		}

		ev := eval.NewEvaluator(r)
		c, err := ev.EvalIndex(idx)
		row.Color = c
		row.EvalErr = err

		row.Tile = tileStyle(c, err, opts)
		row.TextLine = textStyle(c, err, opts)
		rows = append(rows, row)
	}
	return rows
}

func tileStyle(c color.Color, err error, opts Options) lipgloss.Style {
	s := lipgloss.NewStyle()
	if opts.NoColor || opts.ColorStyle == ColorNone || err != nil {
		return s
	}
	return s.Background(lipgloss.Color(c.Hex())).Foreground(contrastForeground(c))
}

func textStyle(c color.Color, err error, opts Options) lipgloss.Style {
	s := lipgloss.NewStyle()
	if opts.NoColor || opts.ColorStyle != ColorText || err != nil {
		return s
	}
	return s.Foreground(lipgloss.Color(c.Hex()))
}

// contrastForeground picks black or white text, whichever reads better
// against c, using the sRGB relative luminance threshold.
func contrastForeground(c color.Color) lipgloss.Color {
	r, g, b := c.RGB01Values()
	lum := 0.2126*r + 0.7152*g + 0.0722*b
	if lum > 0.55 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

// FormatText renders a Row's color as the string the `--text-style`
// flag asks for.
func FormatText(row Row, style TextStyle) string {
	if row.EvalErr != nil {
		return "?"
	}
	switch style {
	case TextHex6:
		return row.Color.Hex()
	case TextHex3:
		return shortHex(row.Color.Hex())
	case TextRGB:
		r, g, b := row.Color.RGB255Values()
		return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
	default:
		return ""
	}
}

func shortHex(hex string) string {
	if len(hex) != 7 {
		return hex
	}
	if hex[1] == hex[2] && hex[3] == hex[4] && hex[5] == hex[6] {
		return string([]byte{'#', hex[1], hex[3], hex[5]})
	}
	return hex
}

// RuleLine renders a separator line for ModeLines, styled per
// RuleStyle.
func RuleLine(width int, style RuleStyle) string {
	if style == RuleNone || width <= 0 {
		return ""
	}
	ch := "─"
	if style == RulePlain {
		ch = "-"
	}
	line := ""
	for i := 0; i < width; i++ {
		line += ch
	}
	return line
}

// LabelFor formats a Row's leading label (name, position or bare
// index) the way the grid/list modes show it, per spec §6's output
// contract of showing whichever metadata is bound.
func LabelFor(row Row) string {
	switch {
	case row.HasName:
		return row.Name
	case row.HasPos:
		return fmt.Sprintf(":%d.%d.%d", row.Pos.Page, row.Pos.Line, row.Pos.Column)
	default:
		return fmt.Sprintf(":%d", row.Index)
	}
}
