package parser

import "strings"

// summaryMarkers flag a line as the closing remark while scanning; the last
// marked line wins.
var summaryMarkers = []string{"总结", "评语", "最终"}

// summaryKeywords drive the fallback scan over the whole text when no
// single line was marked.
var summaryKeywords = []string{"总结", "评语", "最终", "综上"}

// DefaultSummary is used when no closing remark can be located at all.
const DefaultSummary = "这对话确实很有意思！"

// ExtractSummary locates the closing remark of the model's reply. Never
// returns an empty string.
func ExtractSummary(text string) string {
	var summary string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if containsAny(trimmed, summaryMarkers) {
			summary = trimmed
		}
	}
	if summary != "" {
		return summary
	}

	// No marked line: take up to three lines starting at the first
	// keyword occurrence anywhere in the text.
	for _, keyword := range summaryKeywords {
		idx := strings.Index(text, keyword)
		if idx < 0 {
			continue
		}
		lines := strings.Split(text[idx:], "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		return strings.Join(lines, " ")
	}

	return DefaultSummary
}
