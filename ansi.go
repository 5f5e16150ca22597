package img2ascii

import (
	"io"
	"strings"
	"unicode/utf8"
)

const (
	ESC   = "\u001b"
	Reset = ESC + "[0m"
)

// ColorChar is one output character with an optional foreground color.
// FG is ignored unless Colored is set.
type ColorChar struct {
	Rune    rune
	FG      RGB
	Colored bool
}

// Invisible reports whether the character would draw nothing on a
// black terminal: a colored space whose color is pure black.
func (c ColorChar) Invisible() bool {
	return c.Colored && c.Rune == ' ' && c.FG.IsBlack()
}

// String returns the encoded character. Colored characters are wrapped
// in a 24-bit foreground escape and a reset.
func (c ColorChar) String() string {
	return string(c.appendTo(nil))
}

func (c ColorChar) appendTo(dst []byte) []byte {
	if !c.Colored {
		return utf8.AppendRune(dst, c.Rune)
	}
	dst = c.FG.appendForeground(dst)
	dst = utf8.AppendRune(dst, c.Rune)
	return append(dst, Reset...)
}

// AsciiArt is the converted image, one slice of characters per row.
type AsciiArt [][]ColorChar

// Width returns the number of characters per row.
func (a AsciiArt) Width() int {
	if len(a) == 0 {
		return 0
	}
	return len(a[0])
}

// Height returns the number of rows.
func (a AsciiArt) Height() int {
	return len(a)
}

// appendRow encodes one row, dropping invisible cells.
func (a AsciiArt) appendRow(dst []byte, row []ColorChar) []byte {
	for _, c := range row {
		if c.Invisible() {
			continue
		}
		dst = c.appendTo(dst)
	}
	return dst
}

// String assembles the art: characters are concatenated and rows are
// separated by a single newline, with none after the last row.
func (a AsciiArt) String() string {
	var sb strings.Builder
	var buf []byte
	for y, row := range a {
		if y > 0 {
			sb.WriteByte('\n')
		}
		buf = a.appendRow(buf[:0], row)
		sb.Write(buf)
	}
	return sb.String()
}

// WriteTo writes the same bytes as String to w.
func (a AsciiArt) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var buf []byte
	for y, row := range a {
		buf = buf[:0]
		if y > 0 {
			buf = append(buf, '\n')
		}
		buf = a.appendRow(buf, row)
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
