package service

import "gayish/internal/model"

// Broadcaster pushes completed analyses to live feed subscribers. The ws
// hub implements it; services stay transport-agnostic.
type Broadcaster interface {
	BroadcastAnalysis(result *model.AnalysisResult)
}
