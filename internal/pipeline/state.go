package pipeline

import (
	"os"
	"path/filepath"
	"sort"
)

// Stage is how far a logical video has progressed. It is never stored:
// InferState derives it from which output files exist.
type Stage int

const (
	StageUnknown Stage = iota
	StageUploaded
	StageAudioExtracted
	StageTranscribed
	StageAnalyzed
	StageOrganized
	StageHighlightsSelected
	StageCut
	StageApproved
	StageAssembled
)

var stageNames = map[Stage]string{
	StageUnknown:            "unknown",
	StageUploaded:           "uploaded",
	StageAudioExtracted:     "audio-extracted",
	StageTranscribed:        "transcribed",
	StageAnalyzed:           "analyzed",
	StageOrganized:          "organized",
	StageHighlightsSelected: "highlights-selected",
	StageCut:                "cut",
	StageApproved:           "approved",
	StageAssembled:          "assembled",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return "unknown"
}

// Snapshot abstracts file presence and directory listing so state inference
// is testable without touching disk.
type Snapshot interface {
	Exists(path string) bool
	// ListDir returns the file names directly under dir, empty when the
	// directory does not exist.
	ListDir(dir string) []string
}

type fsSnapshot struct{}

func (fsSnapshot) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (fsSnapshot) ListDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// FSSnapshot reads the real filesystem.
func FSSnapshot() Snapshot { return fsSnapshot{} }

// MapSnapshot is a fixed set of existing paths, for tests.
type MapSnapshot map[string]bool

func (m MapSnapshot) Exists(path string) bool { return m[path] }

func (m MapSnapshot) ListDir(dir string) []string {
	var names []string
	for path, ok := range m {
		if ok && filepath.Dir(path) == dir {
			names = append(names, filepath.Base(path))
		}
	}
	sort.Strings(names)
	return names
}

// InferState reports the furthest stage whose output exists for name.
// Checks run from the last stage backwards so a re-run of an early stage
// never makes a video appear less finished than its downstream artifacts.
func (l Layout) InferState(name string, snap Snapshot) Stage {
	switch {
	case snap.Exists(l.AssemblyMetadataFile(name)), snap.Exists(l.FinalFile(name)):
		return StageAssembled
	case snap.Exists(l.ApprovedFile(name)):
		return StageApproved
	case snap.Exists(l.ClipsMetadataFile(name)):
		return StageCut
	case snap.Exists(l.HighlightsFile(name)):
		return StageHighlightsSelected
	case snap.Exists(l.VideoDir(name)):
		return StageOrganized
	case snap.Exists(l.SummaryFile(name)):
		return StageAnalyzed
	case snap.Exists(l.CaptionsFile(name)):
		return StageTranscribed
	case snap.Exists(l.AudioFile(name)):
		return StageAudioExtracted
	}
	// Uploads are matched by logical name, not literal path, so a file
	// like "My Talk.mp4" still counts for "my-talk".
	for _, entry := range snap.ListDir(l.UploadsDir()) {
		if isVideoFile(entry) && LogicalName(entry) == name {
			return StageUploaded
		}
	}
	return StageUnknown
}
