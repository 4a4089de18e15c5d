package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"clipforge/internal/captions"
	"clipforge/internal/render"
	"clipforge/internal/selection"
	"clipforge/internal/types"
)

// SelectHighlightsAll walks every organized video and asks the operator
// which caption segments to promote to highlights.
func (p *Pipeline) SelectHighlightsAll(ctx context.Context) error {
	names, err := p.organizedNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("no organized videos to select highlights for")
		return nil
	}
	for _, name := range names {
		if err := p.SelectHighlights(ctx, name); err != nil {
			p.Log.Error("highlight selection failed", "video", name, "error", err)
		}
	}
	return nil
}

// SelectHighlights shows the parsed caption segments and records the
// operator's set-selection as the video's highlight set. An empty selection
// or the skip sentinel leaves no file behind; the stage simply did not run.
func (p *Pipeline) SelectHighlights(_ context.Context, name string) error {
	out := p.Layout.HighlightsFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	raw, err := os.ReadFile(filepath.Join(p.Layout.VideoDir(name), name+".srt"))
	if err != nil {
		return err
	}
	parsed := captions.Parse(string(raw))
	if len(parsed.Segments) == 0 {
		p.Log.Warn("no caption segments, nothing to select from", "video", name)
		return nil
	}
	if parsed.SkippedBlocks > 0 {
		p.Log.Debug("skipped malformed caption blocks", "video", name, "count", parsed.SkippedBlocks)
	}

	rows := make([][]string, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		rows = append(rows, []string{fmt.Sprint(seg.ID), seg.Start, seg.End, seg.Text})
	}
	fmt.Fprintln(p.out(), render.Table([]string{"#", "Start", "End", "Text"}, rows))

	answer, err := p.Prompt.Prompt(fmt.Sprintf("Segments to cut for %q (e.g. 1,3,5-7 or all; skip to pass):", name))
	if err != nil {
		return err
	}
	if selection.IsSkip(answer) {
		p.Log.Info("highlight selection skipped by operator", "video", name)
		return nil
	}
	ids := selection.ParseSet(answer, len(parsed.Segments))
	if len(ids) == 0 {
		p.Log.Info("no valid selection, nothing saved", "video", name)
		return nil
	}

	set := types.HighlightSet{
		RequestID:  uuid.NewString(),
		SourceName: name,
		CreatedAt:  p.now(),
	}
	for _, id := range ids {
		set.Highlights = append(set.Highlights, parsed.Segments[id-1])
	}
	p.Log.Info("highlights selected", "video", name, "count", len(set.Highlights))
	return writeJSON(out, set)
}
