package pipeline

import (
	"context"
	"os"

	"clipforge/internal/captions"
	"clipforge/internal/retry"
	"clipforge/internal/types"
)

// summarizeAttempts bounds retries against the text-generation service.
// There is no backoff; exhaustion propagates and aborts that one video.
const summarizeAttempts = 3

// AnalyzeAll summarizes every transcribed video.
func (p *Pipeline) AnalyzeAll(ctx context.Context) error {
	names, err := namesWithFiles(p.Layout.CaptionsDir(), ".srt")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("no caption files to analyze")
		return nil
	}
	for _, name := range names {
		if err := p.Analyze(ctx, name); err != nil {
			p.Log.Error("analyze failed", "video", name, "error", err)
		}
	}
	return nil
}

// Analyze sends the caption text for summarization and writes the summary
// JSON next to the other per-video artifacts.
func (p *Pipeline) Analyze(ctx context.Context, name string) error {
	out := p.Layout.SummaryFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	raw, err := os.ReadFile(p.Layout.CaptionsFile(name))
	if err != nil {
		return err
	}
	text := captions.Text(captions.Parse(string(raw)).Segments)
	if text == "" {
		p.Log.Warn("captions are empty, nothing to analyze", "video", name)
		return nil
	}

	p.Log.Info("summarizing", "video", name)
	summary, err := retry.Do(ctx, summarizeAttempts, func(ctx context.Context) (types.Summary, error) {
		return p.Text.Summarize(ctx, text)
	})
	if err != nil {
		return err
	}
	summary.SourceName = name
	summary.CreatedAt = p.now()
	return writeJSON(out, summary)
}
