package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"clipforge/internal/types"
)

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

const requestTimeout = 90 * time.Second

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = "anthropic/claude-3.5-sonnet"
	}
	baseURL = normalizeBaseURL(baseURL)
	return &Adapter{key: apiKey, model: model, baseURL: baseURL, client: &http.Client{Timeout: 5 * time.Minute}}
}

// Summarize sends the caption text for summarization and platform copy.
// One shot, no internal retry: any transport or parse failure is returned to
// the caller, whose retry policy decides whether to go again.
func (a *Adapter) Summarize(ctx context.Context, captionText string) (types.Summary, error) {
	if strings.TrimSpace(captionText) == "" {
		return types.Summary{}, errors.New("openrouter: caption text is empty")
	}

	payload := map[string]any{
		"model":  a.model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": buildPrompt(captionText)},
		},
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name": "clipforge_summary",
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"summary":     map[string]any{"type": "string"},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"hashtags":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []string{"summary", "title", "description", "hashtags"},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return types.Summary{}, fmt.Errorf("marshal request: %w", err)
	}
	url := a.baseURL + "/api/v1/chat/completions"

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return types.Summary{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return types.Summary{}, fmt.Errorf("openrouter timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return types.Summary{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return types.Summary{}, fmt.Errorf("openrouter status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return types.Summary{}, fmt.Errorf("openrouter status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.Summary{}, err
	}
	if len(raw.Choices) == 0 {
		return types.Summary{}, errors.New("openrouter: no choices in response")
	}

	content, err := messageContentToString(raw.Choices[0].Message.Content)
	if err != nil {
		return types.Summary{}, err
	}

	clean, err := extractJSONObject(content)
	if err != nil {
		return types.Summary{}, err
	}

	var out struct {
		Summary     string   `json:"summary"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Hashtags    []string `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return types.Summary{}, fmt.Errorf("openrouter: decode summary: %w", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return types.Summary{}, errors.New("openrouter: empty summary in response")
	}

	return types.Summary{
		Summary:     strings.TrimSpace(out.Summary),
		Title:       strings.TrimSpace(out.Title),
		Description: strings.TrimSpace(out.Description),
		Hashtags:    out.Hashtags,
	}, nil
}

func buildPrompt(captionText string) string {
	return "Summarize this video transcript and write social media copy for it. " +
		"Return strictly valid JSON (no markdown, no code fences) matching the provided schema: " +
		"a short summary, a catchy title, a one-paragraph description, and 3-8 hashtags." +
		"\n\nTranscript:\n" + captionText
}

func messageContentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []any:
		// Some providers return an array of {type,text} parts.
		var b strings.Builder
		for _, it := range x {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["text"].(string); ok {
				b.WriteString(t)
			}
		}
		s := b.String()
		if strings.TrimSpace(s) == "" {
			return "", errors.New("openrouter: empty content")
		}
		return s, nil
	default:
		return "", fmt.Errorf("openrouter: unexpected content type %T", v)
	}
}

// extractJSONObject pulls the first balanced top-level JSON object out of
// possibly decorated model output (prose, markdown fences, trailing chatter).
func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("openrouter: empty content")
	}

	start := strings.Index(t, "{")
	if start < 0 {
		return "", fmt.Errorf("openrouter: could not locate JSON object in: %q", truncate(t, 200))
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(t); i++ {
		c := t[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return t[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("openrouter: unbalanced JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
