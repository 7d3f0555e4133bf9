package gutachten

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractionContext owns the open PDF handle for one extraction run and
// caches derived views of the document (positioned fragments, reconstructed
// lines, plain text). It is constructed by the caller and passed into the
// strategies explicitly; there is no process-wide engine state.
type ExtractionContext struct {
	path   string
	file   *os.File
	reader *pdf.Reader

	fragments map[int][]pdf.Text
	rects     map[int][]pdf.Rect
	lines     map[int][]string
	plainText string
	plainSet  bool
}

// OpenDocument opens a PDF for extraction. The returned context must be
// closed by the caller.
func OpenDocument(path string) (*ExtractionContext, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &ExtractionContext{
		path:      path,
		file:      f,
		reader:    reader,
		fragments: make(map[int][]pdf.Text),
		rects:     make(map[int][]pdf.Rect),
		lines:     make(map[int][]string),
	}, nil
}

// Close releases the underlying file handle.
func (c *ExtractionContext) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

// Path returns the path of the document being extracted.
func (c *ExtractionContext) Path() string { return c.path }

// PageCount returns the number of pages in the document.
func (c *ExtractionContext) PageCount() int { return c.reader.NumPage() }

// Fragments returns the positioned text fragments of a page (1-based).
// Pages that cannot be parsed yield an empty slice rather than an error;
// a broken page must not abort the surrounding strategy.
func (c *ExtractionContext) Fragments(pageNum int) []pdf.Text {
	if frags, ok := c.fragments[pageNum]; ok {
		return frags
	}
	c.loadPage(pageNum)
	return c.fragments[pageNum]
}

// Rects returns the ruling rectangles of a page (1-based). Thin rectangles
// are how bordered tables draw their grid lines.
func (c *ExtractionContext) Rects(pageNum int) []pdf.Rect {
	if rects, ok := c.rects[pageNum]; ok {
		return rects
	}
	c.loadPage(pageNum)
	return c.rects[pageNum]
}

func (c *ExtractionContext) loadPage(pageNum int) {
	c.fragments[pageNum] = nil
	c.rects[pageNum] = nil

	defer func() {
		// Malformed content streams can panic deep inside the parser.
		recover() //nolint:errcheck
	}()

	page := c.reader.Page(pageNum)
	if page.V.IsNull() {
		return
	}
	content := page.Content()

	frags := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		t.S = decodeCell(t.S)
		frags = append(frags, t)
	}
	c.fragments[pageNum] = frags
	c.rects[pageNum] = content.Rect
}

// Lines reconstructs the text lines of a page from its positioned fragments,
// top to bottom, fragments within a line ordered left to right.
func (c *ExtractionContext) Lines(pageNum int) []string {
	if lines, ok := c.lines[pageNum]; ok {
		return lines
	}
	lines := joinLines(groupByLine(c.Fragments(pageNum)))
	c.lines[pageNum] = lines
	return lines
}

// AllLines returns the reconstructed lines of every page in page order.
func (c *ExtractionContext) AllLines() []string {
	var all []string
	for p := 1; p <= c.PageCount(); p++ {
		all = append(all, c.Lines(p)...)
	}
	return all
}

// PlainText returns the whole document text as extracted by the PDF library,
// used by the last-resort fallback when positioned extraction yields nothing.
func (c *ExtractionContext) PlainText() string {
	if c.plainSet {
		return c.plainText
	}
	c.plainSet = true

	var sb strings.Builder
	for p := 1; p <= c.reader.NumPage(); p++ {
		page := c.reader.Page(p)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(decodeCell(text))
		sb.WriteString("\n")
	}
	c.plainText = sb.String()
	return c.plainText
}

// lineYTolerance is the vertical distance within which fragments are
// considered part of the same text line.
const lineYTolerance = 2.0

type textLine struct {
	y     float64
	frags []pdf.Text
}

func groupByLine(frags []pdf.Text) []textLine {
	var lines []textLine
	for _, f := range frags {
		placed := false
		for i := range lines {
			if abs(lines[i].y-f.Y) <= lineYTolerance {
				lines[i].frags = append(lines[i].frags, f)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, textLine{y: f.Y, frags: []pdf.Text{f}})
		}
	}
	// PDF coordinates grow upward; top of the page first.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })
	for i := range lines {
		sort.Slice(lines[i].frags, func(a, b int) bool {
			return lines[i].frags[a].X < lines[i].frags[b].X
		})
	}
	return lines
}

// joinLines concatenates the fragments of each line, inserting a space only
// where the horizontal gap indicates a word boundary. Some producers emit
// one fragment per glyph, so unconditional space-joining would shred words.
func joinLines(lines []textLine) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		var prevEnd float64
		for i, f := range line.frags {
			if i > 0 {
				gap := f.X - prevEnd
				switch {
				case gap > 6*wordGap(f.FontSize):
					// wide gap: preserve it as a column separator for the
					// text-table reconstruction downstream
					sb.WriteString("  ")
				case gap > wordGap(f.FontSize):
					sb.WriteString(" ")
				}
			}
			sb.WriteString(f.S)
			prevEnd = f.X + f.W
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return fontSize * 0.21
}

// decodeCell returns s unchanged when it is valid UTF-8 and otherwise
// reinterprets its bytes as Latin-1, matching the extraction retry policy
// for documents produced with legacy encodings.
func decodeCell(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range []byte(s) {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
