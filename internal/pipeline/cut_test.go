package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/types"
)

func writeHighlights(t *testing.T, p *Pipeline, name string, highlights ...types.CaptionSegment) {
	t.Helper()
	mustWriteFile(t, filepath.Join(p.Layout.VideoDir(name), name+".mp4"), "video")
	set := types.HighlightSet{SourceName: name, Highlights: highlights}
	if err := writeJSON(p.Layout.HighlightsFile(name), set); err != nil {
		t.Fatal(err)
	}
}

func readClipsMetadata(t *testing.T, p *Pipeline, name string) types.ClipsMetadata {
	t.Helper()
	var meta types.ClipsMetadata
	if err := readJSON(p.Layout.ClipsMetadataFile(name), &meta); err != nil {
		t.Fatal(err)
	}
	return meta
}

func TestCut_DurationAndMetadata(t *testing.T) {
	p, video, _ := newTestPipeline(t)
	writeHighlights(t, p, "talk",
		segment(1, "00:00:10.000", "00:00:15.000", "the good part"),
	)

	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatalf("cut: %v", err)
	}

	meta := readClipsMetadata(t, p, "talk")
	if meta.TotalClips != 1 || len(meta.Clips) != 1 {
		t.Fatalf("expected 1 clip, got %+v", meta)
	}
	clip := meta.Clips[0]
	if clip.Duration != "5.0s" {
		t.Fatalf("expected duration 5.0s, got %q", clip.Duration)
	}
	if clip.File != "talk_highlight_01.mp4" {
		t.Fatalf("unexpected clip file: %q", clip.File)
	}
	if clip.Text != "the good part" {
		t.Fatalf("unexpected clip text: %q", clip.Text)
	}
	if len(video.cutCalls) != 1 {
		t.Fatalf("expected 1 encoder invocation, got %d", len(video.cutCalls))
	}
}

func TestCut_PartialFailureKeepsBatchAlive(t *testing.T) {
	p, video, _ := newTestPipeline(t)
	writeHighlights(t, p, "talk",
		segment(1, "00:00:00.000", "00:00:05.000", "one"),
		segment(2, "00:00:10.000", "00:00:20.000", "two"),
		segment(3, "00:00:30.000", "00:00:31.000", "three"),
	)
	video.cutErr = func(out string) error {
		if strings.Contains(out, "_02") {
			return errors.New("encoder exited non-zero")
		}
		return nil
	}

	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatalf("batch must not raise on a single clip failure: %v", err)
	}

	meta := readClipsMetadata(t, p, "talk")
	if meta.TotalClips != 2 {
		t.Fatalf("expected 2 surviving clips, got %d", meta.TotalClips)
	}
	for _, c := range meta.Clips {
		if c.ID == 2 {
			t.Fatalf("failed clip must be omitted from metadata, got %+v", meta.Clips)
		}
	}
}

func TestCut_NonPositiveDurationRejectedPerClip(t *testing.T) {
	p, video, _ := newTestPipeline(t)
	writeHighlights(t, p, "talk",
		segment(1, "00:00:10.000", "00:00:10.000", "zero"),
		segment(2, "00:00:20.000", "00:00:15.000", "negative"),
		segment(3, "00:00:30.000", "00:00:32.500", "fine"),
	)

	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatalf("cut: %v", err)
	}

	meta := readClipsMetadata(t, p, "talk")
	if meta.TotalClips != 1 || meta.Clips[0].ID != 3 {
		t.Fatalf("expected only the valid clip to survive, got %+v", meta)
	}
	if meta.Clips[0].Duration != "2.5s" {
		t.Fatalf("expected duration 2.5s, got %q", meta.Clips[0].Duration)
	}
	// The encoder must never see a non-positive window.
	if len(video.cutCalls) != 1 {
		t.Fatalf("expected 1 encoder invocation, got %d", len(video.cutCalls))
	}
}

func TestCut_CommaSeparatorAccepted(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	writeHighlights(t, p, "talk",
		segment(1, "00:00:10,000", "00:00:15,000", "comma times"),
	)
	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatalf("cut: %v", err)
	}
	if got := readClipsMetadata(t, p, "talk").Clips[0].Duration; got != "5.0s" {
		t.Fatalf("expected 5.0s, got %q", got)
	}
}

func TestCut_SkipsWithoutOverwriteConsent(t *testing.T) {
	p, video, prompter := newTestPipeline(t)
	p.AskOverwrite = true
	writeHighlights(t, p, "talk",
		segment(1, "00:00:00.000", "00:00:05.000", "one"),
	)

	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if len(video.cutCalls) != 1 {
		t.Fatalf("expected first run to cut, got %d calls", len(video.cutCalls))
	}

	// Decline the overwrite prompt: re-running must have zero side effects.
	prompter.answers = []string{"n"}
	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if len(video.cutCalls) != 1 {
		t.Fatalf("expected no re-invocation after declined overwrite, got %d", len(video.cutCalls))
	}
	if len(prompter.questions) != 1 {
		t.Fatalf("expected exactly one overwrite prompt, got %d", len(prompter.questions))
	}

	// Consent re-runs the batch.
	prompter.answers = []string{"y"}
	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if len(video.cutCalls) != 2 {
		t.Fatalf("expected re-invocation after consent, got %d", len(video.cutCalls))
	}
}

func TestCut_SilentSkipWhenNotAsking(t *testing.T) {
	p, video, prompter := newTestPipeline(t)
	writeHighlights(t, p, "talk",
		segment(1, "00:00:00.000", "00:00:05.000", "one"),
	)
	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if err := p.Cut(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if len(video.cutCalls) != 1 {
		t.Fatalf("expected silent skip on re-run, got %d calls", len(video.cutCalls))
	}
	if len(prompter.questions) != 0 {
		t.Fatalf("expected no prompt in silent mode, got %v", prompter.questions)
	}
}
