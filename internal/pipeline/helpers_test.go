package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/types"
)

type fakePrompter struct {
	answers   []string
	questions []string
}

func (f *fakePrompter) Prompt(q string) (string, error) {
	f.questions = append(f.questions, q)
	if len(f.answers) == 0 {
		return "", io.EOF
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

type fakeTranscoder struct {
	extractCalls []string
	cutCalls     []string
	concatInputs [][]string
	probes       map[string]float64

	// cutErr, when set, decides per output path whether the cut fails.
	cutErr func(out string) error
}

func (f *fakeTranscoder) ExtractAudioMono16k(_ context.Context, _, outWav string) error {
	f.extractCalls = append(f.extractCalls, outWav)
	return os.WriteFile(outWav, []byte("wav"), 0o644)
}

func (f *fakeTranscoder) CutClip(_ context.Context, _ string, _, _ float64, outVideo string) error {
	if f.cutErr != nil {
		if err := f.cutErr(outVideo); err != nil {
			return err
		}
	}
	f.cutCalls = append(f.cutCalls, outVideo)
	return os.WriteFile(outVideo, []byte("clip"), 0o644)
}

func (f *fakeTranscoder) Concat(_ context.Context, inputs []string, outVideo string) error {
	f.concatInputs = append(f.concatInputs, inputs)
	return os.WriteFile(outVideo, []byte("final"), 0o644)
}

func (f *fakeTranscoder) ProbeDuration(_ context.Context, path string) (float64, error) {
	if d, ok := f.probes[filepath.Base(path)]; ok {
		return d, nil
	}
	return 1, nil
}

type fakeSTT struct {
	segments []types.Segment
	err      error
}

func (f fakeSTT) Transcribe(context.Context, string, string) ([]types.Segment, error) {
	return f.segments, f.err
}

type fakeTextGen struct {
	calls    int
	failures int // error out this many times before succeeding
	summary  types.Summary
	err      error
}

func (f *fakeTextGen) Summarize(context.Context, string) (types.Summary, error) {
	f.calls++
	if f.calls <= f.failures {
		return types.Summary{}, f.err
	}
	return f.summary, nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *fakeTranscoder, *fakePrompter) {
	t.Helper()
	video := &fakeTranscoder{probes: map[string]float64{}}
	prompter := &fakePrompter{}
	p := &Pipeline{
		Layout: Layout{Root: t.TempDir()},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Prompt: prompter,
		Video:  video,
		Out:    io.Discard,
	}
	return p, video, prompter
}

func mustMkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func segment(id int, start, end, text string) types.CaptionSegment {
	return types.CaptionSegment{ID: id, Start: start, End: end, Text: text}
}
