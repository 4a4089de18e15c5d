package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/types"
)

const talkSRT = `1
00:00:01,000 --> 00:00:04,000
First thought.

2
00:00:05,000 --> 00:00:09,000
Second thought.

3
00:00:10,000 --> 00:00:14,000
Third thought.
`

func writeOrganized(t *testing.T, p *Pipeline, name string) {
	t.Helper()
	mustWriteFile(t, filepath.Join(p.Layout.VideoDir(name), name+".mp4"), "video")
	mustWriteFile(t, filepath.Join(p.Layout.VideoDir(name), name+".srt"), talkSRT)
}

func TestSelectHighlights_WritesDedupedAscendingSet(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	writeOrganized(t, p, "talk")
	prompter.answers = []string{"3,1,3"}

	if err := p.SelectHighlights(context.Background(), "talk"); err != nil {
		t.Fatalf("select: %v", err)
	}

	var set types.HighlightSet
	if err := readJSON(p.Layout.HighlightsFile("talk"), &set); err != nil {
		t.Fatal(err)
	}
	if set.SourceName != "talk" || set.RequestID == "" {
		t.Fatalf("unexpected set header: %+v", set)
	}
	if len(set.Highlights) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(set.Highlights))
	}
	if set.Highlights[0].ID != 1 || set.Highlights[1].ID != 3 {
		t.Fatalf("expected ascending deduplicated ids, got %+v", set.Highlights)
	}
	if set.Highlights[1].Text != "Third thought." {
		t.Fatalf("unexpected highlight text: %q", set.Highlights[1].Text)
	}
}

func TestSelectHighlights_SkipSentinelLeavesNoFile(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	writeOrganized(t, p, "talk")
	prompter.answers = []string{"Skip"}

	if err := p.SelectHighlights(context.Background(), "talk"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := os.Stat(p.Layout.HighlightsFile("talk")); err == nil {
		t.Fatal("skip must not write a highlights file")
	}
}

func TestSelectHighlights_InvalidAnswerLeavesNoFile(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	writeOrganized(t, p, "talk")
	prompter.answers = []string{"99,abc"}

	if err := p.SelectHighlights(context.Background(), "talk"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := os.Stat(p.Layout.HighlightsFile("talk")); err == nil {
		t.Fatal("an empty selection must not write a highlights file")
	}
}

func TestApprove_PreservesOrderAndRepeats(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	meta := types.ClipsMetadata{
		SourceName: "talk",
		TotalClips: 3,
		Clips: []types.Clip{
			{ID: 1, File: "talk_highlight_01.mp4", Duration: "5.0s", Text: "one"},
			{ID: 2, File: "talk_highlight_02.mp4", Duration: "6.0s", Text: "two"},
			{ID: 3, File: "talk_highlight_03.mp4", Duration: "7.0s", Text: "three"},
		},
	}
	mustMkdirAll(t, p.Layout.VideoDir("talk"))
	if err := writeJSON(p.Layout.ClipsMetadataFile("talk"), meta); err != nil {
		t.Fatal(err)
	}
	prompter.answers = []string{"2,1,2"}

	if err := p.Approve(context.Background(), "talk"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var approved types.ApprovedSelection
	if err := readJSON(p.Layout.ApprovedFile("talk"), &approved); err != nil {
		t.Fatal(err)
	}
	wantOrder := []int{2, 1, 2}
	if len(approved.Order) != len(wantOrder) {
		t.Fatalf("unexpected order: %v", approved.Order)
	}
	for i, v := range wantOrder {
		if approved.Order[i] != v {
			t.Fatalf("order[%d] = %d, want %d", i, approved.Order[i], v)
		}
	}
	if len(approved.Clips) != len(approved.Order) {
		t.Fatalf("clips and order lengths must match: %d vs %d", len(approved.Clips), len(approved.Order))
	}
	if approved.Clips[0].ID != 2 || approved.Clips[1].ID != 1 || approved.Clips[2].ID != 2 {
		t.Fatalf("unexpected clip sequence: %+v", approved.Clips)
	}
	if approved.SourceFolder != p.Layout.VideoDir("talk") {
		t.Fatalf("unexpected source folder: %q", approved.SourceFolder)
	}
}

func TestApprove_SkipSentinelLeavesNoFile(t *testing.T) {
	p, _, prompter := newTestPipeline(t)
	meta := types.ClipsMetadata{
		SourceName: "talk",
		TotalClips: 1,
		Clips:      []types.Clip{{ID: 1, File: "talk_highlight_01.mp4", Duration: "5.0s"}},
	}
	mustMkdirAll(t, p.Layout.VideoDir("talk"))
	if err := writeJSON(p.Layout.ClipsMetadataFile("talk"), meta); err != nil {
		t.Fatal(err)
	}
	prompter.answers = []string{"skip"}

	if err := p.Approve(context.Background(), "talk"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p.Layout.ApprovedFile("talk")); err == nil {
		t.Fatal("skip must not write an approval file")
	}
}
