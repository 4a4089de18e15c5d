package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"clipforge/internal/types"
)

// AssembleAll builds the final deliverable for every approved selection.
func (p *Pipeline) AssembleAll(ctx context.Context) error {
	names, err := p.organizedNames()
	if err != nil {
		return err
	}
	ready := names[:0]
	for _, name := range names {
		if p.snap().Exists(p.Layout.ApprovedFile(name)) {
			ready = append(ready, name)
		}
	}
	if len(ready) == 0 {
		p.Log.Info("no approved selections to assemble")
		return nil
	}
	for _, name := range ready {
		if err := p.Assemble(ctx, name); err != nil {
			p.Log.Error("assemble failed", "video", name, "error", err)
		}
	}
	return nil
}

// Assemble concatenates the approved clips, the optional intro, and the full
// original video into one re-encoded deliverable. Missing inputs fail fast
// before the encoder is invoked; component durations are probed from media
// metadata and the same values are persisted to the assembly metadata file.
func (p *Pipeline) Assemble(ctx context.Context, name string) error {
	out := p.Layout.FinalFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	var approved types.ApprovedSelection
	if err := readJSON(p.Layout.ApprovedFile(name), &approved); err != nil {
		return err
	}
	if len(approved.Clips) == 0 {
		return fmt.Errorf("approved selection for %q has no clips", name)
	}
	original, err := findVideoFile(p.Layout.VideoDir(name))
	if err != nil {
		return err
	}

	inputs := make([]string, 0, len(approved.Clips)+2)
	for _, c := range approved.Clips {
		inputs = append(inputs, filepath.Join(p.Layout.ClipsDir(name), c.File))
	}
	if p.IntroPath != "" {
		inputs = append(inputs, p.IntroPath)
	}
	inputs = append(inputs, original)

	for _, in := range inputs {
		if !p.snap().Exists(in) {
			return fmt.Errorf("missing input file: %s", in)
		}
	}

	var clipsDuration float64
	for _, in := range inputs[:len(approved.Clips)] {
		d, err := p.Video.ProbeDuration(ctx, in)
		if err != nil {
			return err
		}
		clipsDuration += d
	}
	var introDuration float64
	if p.IntroPath != "" {
		if introDuration, err = p.Video.ProbeDuration(ctx, p.IntroPath); err != nil {
			return err
		}
	}
	originalDuration, err := p.Video.ProbeDuration(ctx, original)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.Layout.FinalDir(name), 0o755); err != nil {
		return err
	}
	p.Log.Info("assembling", "video", name, "inputs", len(inputs))
	if err := p.Video.Concat(ctx, inputs, out); err != nil {
		return err
	}

	meta := types.AssemblyMetadata{
		SourceName: name,
		CreatedAt:  p.now(),
		OutputPath: out,
		Clips: types.Component{
			Count:    len(approved.Clips),
			Duration: FormatSeconds(clipsDuration),
		},
		Original:      types.Component{Duration: FormatSeconds(originalDuration)},
		TotalDuration: FormatSeconds(clipsDuration + introDuration + originalDuration),
	}
	if p.IntroPath != "" {
		meta.Intro = &types.Component{Duration: FormatSeconds(introDuration)}
	}
	p.Log.Info("assembled", "video", name, "output", out, "total", meta.TotalDuration)
	return writeJSON(p.Layout.AssemblyMetadataFile(name), meta)
}
