package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// totalScorePatterns are tried in order against the whole text; the first
// capture wins. Labeled forms outrank the bare "N/10" ratio so an explicit
// 总分 line beats a ratio mentioned elsewhere.
var totalScorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`总分[：:]\s*(\d+)`),
	regexp.MustCompile(`评分[：:]\s*(\d+)`),
	regexp.MustCompile(`得分[：:]\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*/\s*10`),
}

// ExtractTotalScore pulls the total score out of free-form model output.
// Returns a value in [0,10]; 0 means not found. Labeled captures above 10
// clamp to 10.
func ExtractTotalScore(text string) int {
	for _, re := range totalScorePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if score > 10 {
			score = 10
		}
		return score
	}

	// Nothing labeled: take the first standalone digit run in [1,10],
	// scanning left to right. The range filter keeps unrelated numbers
	// (dates, counts) from being mistaken for a score.
	for _, run := range splitDigitRuns(text) {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		if n >= 1 && n <= 10 {
			return n
		}
	}

	return 0
}

// splitDigitRuns returns the maximal decimal-digit substrings of text in
// encounter order.
func splitDigitRuns(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r < '0' || r > '9'
	})
}
