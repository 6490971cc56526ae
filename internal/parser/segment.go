package parser

import (
	"regexp"
	"strconv"
	"strings"

	"gayish/internal/model"
)

// lineScorePatterns extract the sub-score from a block header line,
// first match wins: "+3分" then "3分" then "+3".
var lineScorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+(\d+)分`),
	regexp.MustCompile(`(\d+)分`),
	regexp.MustCompile(`\+(\d+)`),
}

// blockHeaders are the four recognized level markers, checked in this order
// on every line. A line matches a header when it contains the title, the
// "LV.N" notation, or starts with the bare ordinal.
var blockHeaders = []struct {
	level  int
	title  string
	marker string
	prefix string
}{
	{1, model.TitleBasic, "LV.1", "1."},
	{2, model.TitleAdvanced, "LV.2", "2."},
	{3, model.TitleSoul, "LV.3", "3."},
	{4, model.TitleBonus, "LV.4", "4."},
}

// highlightKeywords mark the soul block as the narrative centerpiece when
// present on its header line.
var highlightKeywords = []string{"Gay", "最", "关键"}

// openBlock is the segmenter's accumulator for the block currently being
// read. It is reset on every header transition and flushed either there or
// at end of input.
type openBlock struct {
	level       int
	title       string
	score       int
	quote       string
	analysis    []string
	isHighlight bool
}

func (b *openBlock) close() model.ScoreBreakdown {
	return model.ScoreBreakdown{
		Level:       b.level,
		Title:       b.title,
		Score:       b.score,
		Quote:       b.quote,
		Analysis:    strings.Join(b.analysis, " "),
		IsHighlight: b.isHighlight,
	}
}

// Segment splits free-form model output into ordered score blocks. Blocks
// appear in discovery order; a header with no body still yields a block
// with an empty rationale.
func Segment(text string) []model.ScoreBreakdown {
	var out []model.ScoreBreakdown
	var open *openBlock

	flush := func() {
		if open != nil {
			out = append(out, open.close())
			open = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		header, isHeader := matchHeader(trimmed)
		if isHeader {
			flush()
			open = &openBlock{
				level: header.level,
				title: header.title,
				score: extractLineScore(trimmed),
			}
			if header.level == 3 {
				open.isHighlight = containsAny(trimmed, highlightKeywords)
			}
		}

		if open == nil {
			continue
		}

		// Quote: first enclosed segment wins on this line, last quote
		// line wins for the block.
		if strings.Contains(trimmed, `"`) {
			parts := strings.Split(trimmed, `"`)
			if len(parts) >= 3 {
				open.quote = parts[1]
			}
		}

		if !isHeader && isRationaleLine(trimmed) {
			open.analysis = append(open.analysis, trimmed)
		}
	}
	flush()

	return out
}

func matchHeader(line string) (struct {
	level  int
	title  string
	marker string
	prefix string
}, bool) {
	for _, h := range blockHeaders {
		if strings.Contains(line, h.title) || strings.Contains(line, h.marker) || strings.HasPrefix(line, h.prefix) {
			return h, true
		}
	}
	return blockHeaders[0], false
}

// isRationaleLine keeps lines that carry explanation text: non-empty, not a
// header, and not carrying the generic score token. Excluding 得分 also
// drops legitimate sentences that merely mention scores; that matches the
// upstream prompt contract and stays deliberate.
func isRationaleLine(line string) bool {
	if line == "" {
		return false
	}
	for _, h := range blockHeaders {
		if strings.HasPrefix(line, h.prefix) {
			return false
		}
	}
	if strings.Contains(line, "LV.") || strings.Contains(line, "得分") {
		return false
	}
	return true
}

func extractLineScore(line string) int {
	for _, re := range lineScorePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
