package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Layout maps logical video names to the flat-file artifacts each stage
// produces. Stage progress is derived from these paths existing on disk;
// there is no separate state store.
type Layout struct {
	Root string
}

// videoExtensions are the upload container formats the pipeline accepts.
var videoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".avi", ".m4v"}

func (l Layout) UploadsDir() string   { return filepath.Join(l.Root, "uploads") }
func (l Layout) AudioDir() string     { return filepath.Join(l.Root, "audio") }
func (l Layout) CaptionsDir() string  { return filepath.Join(l.Root, "captions") }
func (l Layout) SummariesDir() string { return filepath.Join(l.Root, "summaries") }
func (l Layout) VideosDir() string    { return filepath.Join(l.Root, "videos") }

func (l Layout) AudioFile(name string) string {
	return filepath.Join(l.AudioDir(), name+".wav")
}

func (l Layout) CaptionsFile(name string) string {
	return filepath.Join(l.CaptionsDir(), name+".srt")
}

func (l Layout) SummaryFile(name string) string {
	return filepath.Join(l.SummariesDir(), name+".json")
}

// VideoDir is the per-video folder the organize stage gathers everything into.
func (l Layout) VideoDir(name string) string {
	return filepath.Join(l.VideosDir(), name)
}

func (l Layout) HighlightsFile(name string) string {
	return filepath.Join(l.VideoDir(name), "highlights.json")
}

func (l Layout) ClipsDir(name string) string {
	return filepath.Join(l.VideoDir(name), "clips")
}

func (l Layout) ClipsMetadataFile(name string) string {
	return filepath.Join(l.ClipsDir(name), "metadata.json")
}

// ClipFile encodes the logical name and highlight id, zero-padded to two
// digits, into the rendered clip's filename.
func (l Layout) ClipFile(name string, id int) string {
	return filepath.Join(l.ClipsDir(name), clipFileName(name, id))
}

func clipFileName(name string, id int) string {
	return fmt.Sprintf("%s_highlight_%02d.mp4", name, id)
}

func (l Layout) ApprovedFile(name string) string {
	return filepath.Join(l.VideoDir(name), "approved.json")
}

func (l Layout) FinalDir(name string) string {
	return filepath.Join(l.VideoDir(name), "final")
}

func (l Layout) FinalFile(name string) string {
	return filepath.Join(l.FinalDir(name), name+"_final.mp4")
}

func (l Layout) AssemblyMetadataFile(name string) string {
	return filepath.Join(l.FinalDir(name), "metadata.json")
}

// LogicalName derives a filesystem-safe logical name from an uploaded file's
// base name: lowercase, runs of non-alphanumerics collapsed to single dashes.
func LogicalName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(base)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "video"
	}
	return name
}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
