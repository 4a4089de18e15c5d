package pipeline

import (
	"context"
	"os"
)

// ExtractAll extracts audio for every uploaded video, one at a time.
// Per-item failures are logged and never abort the rest of the batch.
func (p *Pipeline) ExtractAll(ctx context.Context) error {
	names, err := p.UploadNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("no uploads to extract")
		return nil
	}
	for _, name := range names {
		if err := p.Extract(ctx, name); err != nil {
			p.Log.Error("extract audio failed", "video", name, "error", err)
		}
	}
	return nil
}

// Extract writes the mono 16k WAV the transcriber consumes.
func (p *Pipeline) Extract(ctx context.Context, name string) error {
	out := p.Layout.AudioFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	in, err := p.uploadPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.Layout.AudioDir(), 0o755); err != nil {
		return err
	}
	p.Log.Info("extracting audio", "video", name)
	return p.Video.ExtractAudioMono16k(ctx, in, out)
}
