// Package parser turns the free-form reply of the analysis model into the
// structured result the app renders. The model may or may not honor the
// requested format, so every extraction is a cascade of heuristics with a
// deterministic fallback at the end: callers always get something
// renderable.
package parser

import "gayish/internal/model"

// Parse interprets raw model output. When either the total score or the
// block list cannot be recovered, the whole interpretation is discarded and
// the fixed reference result is returned instead of a partial structure
// (all-or-nothing: a bare score with no blocks is not renderable either).
func Parse(text string) *model.AnalysisResult {
	totalScore := ExtractTotalScore(text)
	breakdown := Segment(text)

	if totalScore == 0 || len(breakdown) == 0 {
		return model.ReferenceResult()
	}

	return &model.AnalysisResult{
		TotalScore: totalScore,
		LevelTitle: model.LevelTitleFor(totalScore),
		Breakdown:  breakdown,
		Summary:    ExtractSummary(text),
	}
}
