package pipeline

import (
	"context"
	"os"

	"clipforge/internal/captions"
)

// TranscribeAll turns every extracted audio file into a caption file.
func (p *Pipeline) TranscribeAll(ctx context.Context) error {
	names, err := namesWithFiles(p.Layout.AudioDir(), ".wav")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("no audio files to transcribe")
		return nil
	}
	for _, name := range names {
		if err := p.Transcribe(ctx, name); err != nil {
			p.Log.Error("transcribe failed", "video", name, "error", err)
		}
	}
	return nil
}

// Transcribe runs speech-to-text on the extracted audio and persists the
// segments as an SRT caption file with HH:MM:SS,mmm timestamps.
func (p *Pipeline) Transcribe(ctx context.Context, name string) error {
	out := p.Layout.CaptionsFile(name)
	if !p.shouldRun(name, out) {
		return nil
	}
	wav := p.Layout.AudioFile(name)

	workDir, err := os.MkdirTemp("", "clipforge-stt-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	p.Log.Info("transcribing", "video", name)
	segments, err := p.STT.Transcribe(ctx, wav, workDir)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		p.Log.Warn("no speech detected", "video", name)
	}
	if err := os.MkdirAll(p.Layout.CaptionsDir(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(captions.RenderSRT(segments)), 0o644)
}
