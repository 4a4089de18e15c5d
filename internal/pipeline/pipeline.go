// Package pipeline implements the highlight pipeline stages. Each stage
// consumes the previous stage's flat-file output and persists its own before
// the next stage starts; batches are strict sequential folds so at most one
// external transcode is ever in flight.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"clipforge/internal/ports"
	"clipforge/internal/prompt"
)

// Pipeline wires the collaborators every stage needs.
type Pipeline struct {
	Layout Layout
	Log    *slog.Logger
	Prompt prompt.Prompter
	Video  ports.Transcoder
	STT    ports.SpeechToText
	Text   ports.TextGenerator
	Snap   Snapshot
	Out    io.Writer

	// IntroPath, when set, is inserted between the highlight clips and the
	// original video during assembly.
	IntroPath string

	// AskOverwrite controls what happens when a stage's output already
	// exists: true prompts the operator for overwrite consent (single-stage
	// commands), false skips silently (full runs and the watcher).
	AskOverwrite bool

	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

func (p *Pipeline) snap() Snapshot {
	if p.Snap != nil {
		return p.Snap
	}
	return FSSnapshot()
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// shouldRun applies the idempotency policy: an existing output means the
// stage already ran, so it is skipped unless the operator explicitly
// consents to overwrite.
func (p *Pipeline) shouldRun(name, output string) bool {
	if !p.snap().Exists(output) {
		return true
	}
	if p.AskOverwrite && prompt.Confirm(p.Prompt, fmt.Sprintf("Output for %q already exists (%s). Overwrite?", name, filepath.Base(output))) {
		return true
	}
	p.Log.Info("skipping, output already exists", "video", name, "output", output)
	return false
}

// UploadNames lists logical names with a video sitting in the uploads
// directory, sorted for deterministic batch order.
func (p *Pipeline) UploadNames() ([]string, error) {
	entries, err := os.ReadDir(p.Layout.UploadsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isVideoFile(e.Name()) {
			continue
		}
		names = append(names, LogicalName(e.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// uploadPath finds the uploaded video file for a logical name.
func (p *Pipeline) uploadPath(name string) (string, error) {
	entries, err := os.ReadDir(p.Layout.UploadsDir())
	if err != nil {
		return "", fmt.Errorf("list uploads: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isVideoFile(e.Name()) {
			continue
		}
		if LogicalName(e.Name()) == name {
			return filepath.Join(p.Layout.UploadsDir(), e.Name()), nil
		}
	}
	return "", fmt.Errorf("no upload found for %q", name)
}

// namesWithFiles lists logical names for files with the given extension in a
// stage output directory.
func namesWithFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// organizedNames lists per-video folders under the videos directory.
func (p *Pipeline) organizedNames() ([]string, error) {
	entries, err := os.ReadDir(p.Layout.VideosDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// findVideoFile locates the organized source video inside a per-video folder.
func findVideoFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && isVideoFile(e.Name()) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no video file in %s", dir)
}

// FormatSeconds renders a duration in seconds with one decimal and an "s"
// suffix, the format every metadata file uses.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 1, 64) + "s"
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// copyFile is used where a cross-device rename could fail.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
