package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"gayish/internal/config"
	"gayish/internal/model"
	"gayish/internal/parser"
)

// AnalyzerService runs the full interpretation pipeline: one upstream call
// with a hard timeout, envelope validation, then text parsing. Stateless;
// one instance serves all requests.
type AnalyzerService struct {
	config *config.AnalyzerConfig
	client *http.Client
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(cfg *config.AnalyzerConfig) *AnalyzerService {
	return &AnalyzerService{
		config: cfg,
		// The per-call context carries the deadline; the client itself
		// stays unbounded so config changes don't need a new client.
		client: &http.Client{},
	}
}

// envelope is the transport wrapper returned by the upstream proxy,
// distinct from the free-form text it carries.
type envelope struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
}

type analyzeRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
	Prompt   string `json:"prompt"`
}

// Analyze interprets a chat screenshot. Returns the structured result and
// the upstream model identifier (diagnostics only). Network and envelope
// failures surface as *AnalysisError; an answer in the wrong shape does
// not — the parser substitutes the reference result for those.
func (s *AnalyzerService) Analyze(ctx context.Context, imageData []byte, mimeType string) (*model.AnalysisResult, string, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(imageData)); err != nil {
		return nil, "", newError(KindImageEncoding)
	}

	if !s.config.IsEnabled() {
		log.Println("ANALYZE_ENDPOINT not set, returning reference result")
		return model.ReferenceResult(), "mock", nil
	}

	rawText, modelID, err := s.callUpstream(ctx, imageData, mimeType)
	if err != nil {
		return nil, "", err
	}

	return parser.Parse(rawText), modelID, nil
}

// callUpstream posts the encoded image to the proxy and validates the
// response envelope. The context deadline is the timeout race: whichever
// finishes first — the call or the timer — cancels the other.
func (s *AnalyzerService) callUpstream(ctx context.Context, imageData []byte, mimeType string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout())
	defer cancel()

	if mimeType == "" {
		mimeType = "image/jpeg" // what the app sends when it doesn't say
	}

	reqBody, err := json.Marshal(analyzeRequest{
		Image:    base64.StdEncoding.EncodeToString(imageData),
		MimeType: mimeType,
		Prompt:   s.config.Prompt,
	})
	if err != nil {
		return "", "", newError(KindMalformedEnvelope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", "", newError(KindTransport)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			log.Printf("analysis timed out after %s", time.Since(start).Round(time.Millisecond))
			return "", "", newError(KindTimeout)
		}
		return "", "", newError(KindTransport)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can fire mid-body just as well as mid-dial
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			log.Printf("analysis timed out after %s", time.Since(start).Round(time.Millisecond))
			return "", "", newError(KindTimeout)
		}
		return "", "", newError(KindTransport)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("upstream returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
		return "", "", classifyStatus(resp.StatusCode)
	}

	return validateEnvelope(body)
}

// validateEnvelope checks the transport wrapper and hands back the raw
// text for parsing. success=true with empty text is a violation of the
// envelope contract, not a crash.
func validateEnvelope(body []byte) (string, string, error) {
	if len(body) == 0 {
		return "", "", newError(KindMalformedEnvelope)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", "", newError(KindMalformedEnvelope)
	}

	if !env.Success || env.Text == "" {
		e := newError(KindUpstreamError)
		if env.Error != "" {
			e.Message = env.Error
		}
		return "", "", e
	}

	return env.Text, env.Model, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
