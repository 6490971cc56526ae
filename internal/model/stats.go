package model

import "time"

// UserStats tracks one device's analysis history.
type UserStats struct {
	DeviceID             string    `json:"deviceId" bson:"_id"`
	TestCount            int       `json:"testCount" bson:"testCount"`
	HighestScore         int       `json:"highestScore" bson:"highestScore"`
	AverageScore         float64   `json:"averageScore" bson:"averageScore"`
	ShareCount           int       `json:"shareCount" bson:"shareCount"`
	UnlockedAchievements []string  `json:"unlockedAchievements" bson:"unlockedAchievements"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AddTestResult folds a new score into the running stats.
func (s *UserStats) AddTestResult(score int) {
	s.TestCount++
	if score > s.HighestScore {
		s.HighestScore = score
	}
	s.AverageScore = (s.AverageScore*float64(s.TestCount-1) + float64(score)) / float64(s.TestCount)
}

// HasAchievement reports whether the achievement id is already unlocked.
func (s *UserStats) HasAchievement(id string) bool {
	for _, a := range s.UnlockedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

// Achievement is one unlockable badge. RequiredScore and RequiredCount are
// pointers because some achievements unlock on other conditions (sharing).
type Achievement struct {
	ID            string     `json:"id" bson:"_id"`
	Title         string     `json:"title" bson:"title"`
	Description   string     `json:"description" bson:"description"`
	Emoji         string     `json:"emoji" bson:"emoji"`
	RequiredScore *int       `json:"requiredScore,omitempty" bson:"requiredScore,omitempty"`
	RequiredCount *int       `json:"requiredCount,omitempty" bson:"requiredCount,omitempty"`
	IsUnlocked    bool       `json:"isUnlocked" bson:"-"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty" bson:"-"`
}

// AchievementShareFirst unlocks on the first poster share rather than on a
// score or count condition.
const AchievementShareFirst = "share_first"

func intPtr(v int) *int { return &v }

// AllAchievements is the fixed achievement catalog.
func AllAchievements() []Achievement {
	return []Achievement{
		{ID: "first_test", Title: "初次体验", Description: "完成第一次测试", Emoji: "🎯", RequiredCount: intPtr(1)},
		{ID: "score_5", Title: "Gay雷达启动", Description: "获得5分或以上", Emoji: "📡", RequiredScore: intPtr(5)},
		{ID: "score_7", Title: "姐妹预备役", Description: "获得7分或以上", Emoji: "💅", RequiredScore: intPtr(7)},
		{ID: "score_9", Title: "Drama Queen", Description: "获得9分", Emoji: "👑", RequiredScore: intPtr(9)},
		{ID: "score_10", Title: "Gay Icon", Description: "获得满分10分", Emoji: "🌟", RequiredScore: intPtr(10)},
		{ID: "test_3", Title: "测试狂魔", Description: "完成3次测试", Emoji: "🔥", RequiredCount: intPtr(3)},
		{ID: "test_10", Title: "资深玩家", Description: "完成10次测试", Emoji: "⭐", RequiredCount: intPtr(10)},
		{ID: AchievementShareFirst, Title: "分享达人", Description: "第一次分享海报", Emoji: "📤"},
	}
}
