package pipeline

import (
	"context"
	"fmt"
	"os"

	"clipforge/internal/captions"
	"clipforge/internal/types"
)

// CutAll cuts clips for every video with a saved highlight set.
func (p *Pipeline) CutAll(ctx context.Context) error {
	names, err := p.organizedNames()
	if err != nil {
		return err
	}
	ready := names[:0]
	for _, name := range names {
		if p.snap().Exists(p.Layout.HighlightsFile(name)) {
			ready = append(ready, name)
		}
	}
	if len(ready) == 0 {
		p.Log.Info("no highlight sets to cut")
		return nil
	}
	for _, name := range ready {
		if err := p.Cut(ctx, name); err != nil {
			p.Log.Error("cut failed", "video", name, "error", err)
		}
	}
	return nil
}

// Cut renders one clip per highlight, strictly sequentially to keep a single
// transcode in flight. A failing clip is logged and left out of the result;
// the metadata file is always written afterwards and reflects only the clips
// that actually succeeded.
func (p *Pipeline) Cut(ctx context.Context, name string) error {
	out := p.Layout.ClipsMetadataFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	var set types.HighlightSet
	if err := readJSON(p.Layout.HighlightsFile(name), &set); err != nil {
		return err
	}
	video, err := findVideoFile(p.Layout.VideoDir(name))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.Layout.ClipsDir(name), 0o755); err != nil {
		return err
	}

	var clips []types.Clip
	for _, h := range set.Highlights {
		clip, err := p.cutOne(ctx, name, video, h)
		if err != nil {
			p.Log.Error("clip cut failed, excluding from results", "video", name, "highlight", h.ID, "error", err)
			continue
		}
		clips = append(clips, clip)
	}

	meta := types.ClipsMetadata{
		SourceName: name,
		CreatedAt:  p.now(),
		TotalClips: len(clips),
		Clips:      clips,
	}
	p.Log.Info("cut batch finished", "video", name, "clips", len(clips), "requested", len(set.Highlights))
	return writeJSON(out, meta)
}

func (p *Pipeline) cutOne(ctx context.Context, name, video string, h types.CaptionSegment) (types.Clip, error) {
	start, err := captions.ToSeconds(h.Start)
	if err != nil {
		return types.Clip{}, err
	}
	end, err := captions.ToSeconds(h.End)
	if err != nil {
		return types.Clip{}, err
	}
	duration := end - start
	if duration <= 0 {
		return types.Clip{}, fmt.Errorf("non-positive clip duration %.3fs (start %s, end %s)", duration, h.Start, h.End)
	}

	out := p.Layout.ClipFile(name, h.ID)
	p.Log.Info("cutting clip", "video", name, "highlight", h.ID, "start", h.Start, "duration", FormatSeconds(duration))
	if err := p.Video.CutClip(ctx, video, start, duration, out); err != nil {
		return types.Clip{}, err
	}
	return types.Clip{
		ID:       h.ID,
		File:     clipFileName(name, h.ID),
		Duration: FormatSeconds(duration),
		Text:     h.Text,
	}, nil
}
