package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipforge/internal/types"
)

type Adapter struct {
	bin      string
	model    string
	language string
}

func New(binPath, modelPath, language string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath, language: language}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, workDir string) ([]types.Segment, error) {
	outPrefix := filepath.Join(workDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	}
	if a.language != "" {
		args = append(args, "-l", a.language)
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, err
	}

	var out struct {
		Segments []types.Segment `json:"segments"`
	}
	if err := json.Unmarshal(jb, &out); err != nil {
		return nil, err
	}
	for i := range out.Segments {
		out.Segments[i].Text = strings.TrimSpace(out.Segments[i].Text)
	}
	return out.Segments, nil
}
