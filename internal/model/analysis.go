package model

import "time"

// ScoreBreakdown is one scored section of the analysis (basic, advanced,
// soul, bonus). Level is the ordinal of the block as it appeared in the
// model's reply, not guaranteed contiguous.
type ScoreBreakdown struct {
	Level       int    `json:"level" bson:"level"`
	Title       string `json:"title" bson:"title"`
	Score       int    `json:"score" bson:"score"`
	Quote       string `json:"quote" bson:"quote"`
	Analysis    string `json:"analysis" bson:"analysis"`
	IsHighlight bool   `json:"isHighlight" bson:"isHighlight"`
}

// AnalysisResult is the structured outcome of one screenshot analysis.
// Immutable once returned; TotalScore 0 never escapes the pipeline (the
// reference result is substituted instead).
type AnalysisResult struct {
	TotalScore int              `json:"totalScore" bson:"totalScore"`
	LevelTitle string           `json:"levelTitle" bson:"levelTitle"`
	Breakdown  []ScoreBreakdown `json:"breakdown" bson:"breakdown"`
	Summary    string           `json:"summary" bson:"summary"`
}

// AnalysisRecord is a persisted analysis with its request metadata.
type AnalysisRecord struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	DeviceID  string         `json:"deviceId" bson:"deviceId"`
	Result    AnalysisResult `json:"result" bson:"result"`
	Model     string         `json:"model,omitempty" bson:"model,omitempty"`
	FromCache bool           `json:"fromCache" bson:"-"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

// Block titles as the prompt requests them.
const (
	TitleBasic    = "基础得分"
	TitleAdvanced = "进阶得分"
	TitleSoul     = "灵魂得分"
	TitleBonus    = "附加分"
)

// LevelTitleFor maps a total score to its tier title.
func LevelTitleFor(score int) string {
	switch {
	case score >= 1 && score <= 2:
		return "直男铁憨憨"
	case score >= 3 && score <= 4:
		return "普通朋友"
	case score >= 5 && score <= 6:
		return "Gay雷达有反应"
	case score >= 7 && score <= 8:
		return "姐妹预备役"
	case score == 9:
		return "Drama Queen"
	case score == 10:
		return "Gay Icon本人"
	default:
		return "未知级别"
	}
}

// ReferenceResult is the fixed result substituted when the model answered
// but not in a parseable shape. Always renderable: known score, four
// components, one highlight.
func ReferenceResult() *AnalysisResult {
	return &AnalysisResult{
		TotalScore: 9,
		LevelTitle: "Drama Queen",
		Breakdown: []ScoreBreakdown{
			{
				Level:    1,
				Title:    TitleBasic,
				Score:    3,
				Quote:    "不要番茄酱和酸黄瓜",
				Analysis: "这只是单纯的挑剔，很多人都这样，但这奠定了\"我有自己的一套标准\"的基调。",
			},
			{
				Level:    2,
				Title:    TitleAdvanced,
				Score:    3,
				Quote:    "红茶+大薯条",
				Analysis: "碳水+茶，非常经典的精致快乐餐选择。",
			},
			{
				Level:       3,
				Title:       TitleSoul,
				Score:       3,
				Quote:       "帮我把红茶里的茶包拿出来丢掉",
				Analysis:    "这简直是分数的爆发点！这不仅仅是挑剔，这是一种**\"小公主/Diva\"**式的行为艺术。这种对生活细节的极致掌控欲和对他人的\"使唤\"，非常符合那个味儿。",
				IsHighlight: true,
			},
			{
				Level:    4,
				Title:    TitleBonus,
				Score:    0,
				Quote:    "i am a picky guy",
				Analysis: "这种极其坦然的自我认知和英文自嘲，充满了\"虽然我很事儿，但我很可爱，你得宠着我\"的做娇感。",
			},
		},
		Summary: "那个\"扔茶包\"的要求实在是太传神了。如果他只是说\"不要茶包\"，那是普通顾客；说\"拿到的时候帮我扔掉\"，那就是妥妥的 Drama Queen 级别。这就是那种让人一边翻白眼一边觉得\"行吧拿你没办法\"的典范。",
	}
}
