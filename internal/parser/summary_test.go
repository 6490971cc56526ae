package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummary_MarkedLineWins(t *testing.T) {
	text := "正文第一行\n总结：挺有意思的对话。\n还有后续"
	assert.Equal(t, "总结：挺有意思的对话。", ExtractSummary(text))
}

func TestExtractSummary_LastMarkedLineWins(t *testing.T) {
	text := "评语：第一版\n中间内容\n最终：这才是结论。"
	assert.Equal(t, "最终：这才是结论。", ExtractSummary(text))
}

func TestExtractSummary_KeywordFallbackTakesThreeLines(t *testing.T) {
	// 综上 is only a fallback keyword, never a line marker, so the scan
	// starts mid-text and joins at most three lines.
	text := "开头\n综上所述这段对话\n很有看头\n第三行\n第四行不该出现"
	got := ExtractSummary(text)
	assert.Equal(t, "综上所述这段对话 很有看头 第三行", got)
}

func TestExtractSummary_Default(t *testing.T) {
	assert.Equal(t, DefaultSummary, ExtractSummary("完全没有收尾标记的文本"))
	assert.Equal(t, DefaultSummary, ExtractSummary(""))
}
