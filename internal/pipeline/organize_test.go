package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOrganize_GathersArtifacts(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	mustWriteFile(t, filepath.Join(p.Layout.UploadsDir(), "talk.mp4"), "video")
	mustWriteFile(t, p.Layout.CaptionsFile("talk"), talkSRT)
	mustWriteFile(t, p.Layout.SummaryFile("talk"), "{}")

	if err := p.Organize(context.Background(), "talk"); err != nil {
		t.Fatalf("organize: %v", err)
	}

	dir := p.Layout.VideoDir("talk")
	for _, f := range []string{"talk.mp4", "talk.srt", "talk.json"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Fatalf("expected %s in video folder: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(p.Layout.UploadsDir(), "talk.mp4")); err == nil {
		t.Fatal("expected upload to be moved out of uploads")
	}
}

func TestOrganize_ConsentedRerunRefreshesCopies(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	mustWriteFile(t, filepath.Join(p.Layout.UploadsDir(), "talk.mp4"), "video")
	mustWriteFile(t, p.Layout.CaptionsFile("talk"), "captions v1")
	mustWriteFile(t, p.Layout.SummaryFile("talk"), "{}")

	if err := p.Organize(context.Background(), "talk"); err != nil {
		t.Fatalf("organize: %v", err)
	}

	// The upload is gone now; a consented re-run must still succeed and pick
	// up the newer captions.
	mustWriteFile(t, p.Layout.CaptionsFile("talk"), "captions v2")
	p.AskOverwrite = true
	prompter.answers = []string{"y"}
	if err := p.Organize(context.Background(), "talk"); err != nil {
		t.Fatalf("consented re-run: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(p.Layout.VideoDir("talk"), "talk.srt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "captions v2" {
		t.Fatalf("expected refreshed captions copy, got %q", string(b))
	}
	if _, err := findVideoFile(p.Layout.VideoDir("talk")); err != nil {
		t.Fatalf("organized video must survive the re-run: %v", err)
	}
}
