package pipeline

import (
	"context"
	"fmt"

	"clipforge/internal/render"
	"clipforge/internal/selection"
	"clipforge/internal/types"
)

// ApproveAll asks the operator to curate a final order for every cut batch.
func (p *Pipeline) ApproveAll(ctx context.Context) error {
	names, err := p.organizedNames()
	if err != nil {
		return err
	}
	ready := names[:0]
	for _, name := range names {
		if p.snap().Exists(p.Layout.ClipsMetadataFile(name)) {
			ready = append(ready, name)
		}
	}
	if len(ready) == 0 {
		p.Log.Info("no cut batches to approve")
		return nil
	}
	for _, name := range ready {
		if err := p.Approve(ctx, name); err != nil {
			p.Log.Error("approve failed", "video", name, "error", err)
		}
	}
	return nil
}

// Approve records the operator's ordered clip selection. The order may
// repeat or omit clips; it is preserved exactly as typed.
func (p *Pipeline) Approve(_ context.Context, name string) error {
	out := p.Layout.ApprovedFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	var meta types.ClipsMetadata
	if err := readJSON(p.Layout.ClipsMetadataFile(name), &meta); err != nil {
		return err
	}
	if len(meta.Clips) == 0 {
		p.Log.Warn("no clips were cut, nothing to approve", "video", name)
		return nil
	}

	rows := make([][]string, 0, len(meta.Clips))
	for i, c := range meta.Clips {
		rows = append(rows, []string{fmt.Sprint(i + 1), c.File, c.Duration, c.Text})
	}
	fmt.Fprintln(p.out(), render.Table([]string{"#", "File", "Duration", "Text"}, rows))

	answer, err := p.Prompt.Prompt(fmt.Sprintf("Final clip order for %q (e.g. 2,1,3 or all; skip to pass):", name))
	if err != nil {
		return err
	}
	if selection.IsSkip(answer) {
		p.Log.Info("approval skipped by operator", "video", name)
		return nil
	}
	order := selection.ParseOrder(answer, len(meta.Clips))
	if len(order) == 0 {
		p.Log.Info("no valid order, nothing saved", "video", name)
		return nil
	}

	approved := types.ApprovedSelection{
		SourceName:   name,
		SourceFolder: p.Layout.VideoDir(name),
		ApprovedAt:   p.now(),
		Order:        order,
	}
	for _, idx := range order {
		approved.Clips = append(approved.Clips, meta.Clips[idx-1])
	}
	p.Log.Info("clips approved", "video", name, "count", len(approved.Clips))
	return writeJSON(out, approved)
}
