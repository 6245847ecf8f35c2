package heppi

import "strings"

// Phrase is one entry of the greeting sequence. When Lines is empty the Text
// is laid out on a single line; otherwise each entry of Lines is its own row,
// top to bottom, and all rows ignite together.
type Phrase struct {
	Text  string   `yaml:"text"`
	Lines []string `yaml:"lines,omitempty"`
}

// DefaultPhrases is the greeting shown when no configuration overrides it.
var DefaultPhrases = []Phrase{
	{Text: "MERRY"},
	{Text: "CHRISTMAS"},
	{Text: "I LOVE YOU", Lines: []string{"I LOVE", "YOU"}},
}

// Multiline reports whether the phrase renders on more than one row.
func (p Phrase) Multiline() bool {
	return len(p.Lines) > 1
}

// Rows returns the display rows of the phrase.
func (p Phrase) Rows() []string {
	if len(p.Lines) > 0 {
		return p.Lines
	}
	return []string{p.Text}
}

// Glyphs returns the runes of each row with spaces removed. Spaces occupy no
// burst slot.
func (p Phrase) Glyphs() [][]rune {
	rows := p.Rows()
	out := make([][]rune, len(rows))
	for i, row := range rows {
		for _, r := range row {
			if r == ' ' || r == '\t' {
				continue
			}
			out[i] = append(out[i], r)
		}
	}
	return out
}

// glyphCount returns the number of non-space runes across all rows.
func (p Phrase) glyphCount() int {
	n := 0
	for _, row := range p.Glyphs() {
		n += len(row)
	}
	return n
}

func (p Phrase) String() string {
	if len(p.Lines) > 0 {
		return strings.Join(p.Lines, " / ")
	}
	return p.Text
}
