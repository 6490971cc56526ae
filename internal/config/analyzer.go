package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultPrompt is the instruction sent with every screenshot. The format
// it requests is what internal/parser expects back, but the model is not
// trusted to honor it.
const DefaultPrompt = `这对话有多 gayyyyyyyyish. it's a joke

请分析这张聊天截图，给我一个 1 到 10 分的打分，并详细分析每个得分点。

请严格按照以下格式返回：

1. 基础得分 (+X分): "引用对话内容"
   分析说明

2. 进阶得分 (+X分): "引用对话内容"
   分析说明

3. 灵魂得分 (+X分): "引用对话内容"
   分析说明（这是最Gay的部分）

4. 附加分 (+X分): "引用对话内容"
   分析说明

总结：最终评语

请用中文回答，要幽默风趣，充满娱乐性。`

// AnalyzerConfig holds the upstream analysis endpoint settings.
type AnalyzerConfig struct {
	// Endpoint is the serverless proxy that forwards to Gemini and
	// returns the {success, text, model, error} envelope.
	Endpoint string

	// Prompt overrides DefaultPrompt when set.
	Prompt string

	// TimeoutMS is the hard window for one analysis call. 60s matches
	// the proxy platform's function limit.
	TimeoutMS int
}

// DefaultAnalyzerConfig reads the analyzer configuration from the
// environment.
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		Endpoint:  os.Getenv("ANALYZE_ENDPOINT"),
		Prompt:    getEnvOrDefault("ANALYZE_PROMPT", DefaultPrompt),
		TimeoutMS: getEnvIntOrDefault("ANALYZE_TIMEOUT_MS", 60000),
	}
}

// IsEnabled returns true if an upstream endpoint is configured.
func (c *AnalyzerConfig) IsEnabled() bool {
	return c.Endpoint != ""
}

// Timeout returns the request window as a duration.
func (c *AnalyzerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
