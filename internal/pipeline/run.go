package pipeline

import (
	"context"
	"sort"
)

// RunAll processes every known video start to finish. Videos are isolated
// from each other: one video's terminal failure is logged and the batch
// moves on to the next.
func (p *Pipeline) RunAll(ctx context.Context) error {
	names, err := p.AllNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("nothing to process")
		return nil
	}
	for _, name := range names {
		if err := p.RunOne(ctx, name); err != nil {
			p.Log.Error("pipeline run failed", "video", name, "error", err)
		}
	}
	return nil
}

// RunOne advances a single video through every stage it is ready for.
// The entry point is re-derived from disk before each step, so a stage the
// operator skipped (no highlights selected, no approval given) ends the run
// gracefully instead of erroring on missing input.
func (p *Pipeline) RunOne(ctx context.Context, name string) error {
	steps := []struct {
		need Stage
		fn   func(context.Context, string) error
	}{
		{StageUploaded, p.Extract},
		{StageAudioExtracted, p.Transcribe},
		{StageTranscribed, p.Analyze},
		{StageAnalyzed, p.Organize},
		{StageOrganized, p.SelectHighlights},
		{StageHighlightsSelected, p.Cut},
		{StageCut, p.Approve},
		{StageApproved, p.Assemble},
	}
	for _, step := range steps {
		state := p.Layout.InferState(name, p.snap())
		if state < step.need {
			p.Log.Info("run stopped, next stage input not ready", "video", name, "state", state.String())
			return nil
		}
		if err := step.fn(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Prepare runs only the non-interactive front of the pipeline (extract,
// transcribe, analyze) for one video. The watcher uses it for videos dropped
// into the uploads directory.
func (p *Pipeline) Prepare(ctx context.Context, name string) error {
	if err := p.Extract(ctx, name); err != nil {
		return err
	}
	if err := p.Transcribe(ctx, name); err != nil {
		return err
	}
	return p.Analyze(ctx, name)
}

// AllNames unions the logical names visible in any stage directory.
func (p *Pipeline) AllNames() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(batch []string, err error) error {
		if err != nil {
			return err
		}
		for _, n := range batch {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
		return nil
	}

	if err := add(p.UploadNames()); err != nil {
		return nil, err
	}
	if err := add(namesWithFiles(p.Layout.AudioDir(), ".wav")); err != nil {
		return nil, err
	}
	if err := add(namesWithFiles(p.Layout.CaptionsDir(), ".srt")); err != nil {
		return nil, err
	}
	if err := add(namesWithFiles(p.Layout.SummariesDir(), ".json")); err != nil {
		return nil, err
	}
	if err := add(p.organizedNames()); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// VideoStatus pairs a logical name with its derived stage.
type VideoStatus struct {
	Name  string
	Stage Stage
}

// Statuses derives the current stage of every known video.
func (p *Pipeline) Statuses() ([]VideoStatus, error) {
	names, err := p.AllNames()
	if err != nil {
		return nil, err
	}
	out := make([]VideoStatus, 0, len(names))
	for _, name := range names {
		out = append(out, VideoStatus{Name: name, Stage: p.Layout.InferState(name, p.snap())})
	}
	return out, nil
}
