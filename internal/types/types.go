package types

import "time"

// CaptionSegment is one timed line of transcribed speech. IDs are 1-based in
// source order and strictly increasing within one caption file.
type CaptionSegment struct {
	ID    int    `json:"id"`
	Start string `json:"startTime"` // HH:MM:SS.mmm
	End   string `json:"endTime"`   // HH:MM:SS.mmm
	Text  string `json:"text"`
}

// Segment is a raw speech-to-text result, timed in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// HighlightSet records which caption segments the operator promoted to
// candidate clips. Segments are stored by ascending ID, deduplicated.
type HighlightSet struct {
	RequestID  string           `json:"requestId"`
	SourceName string           `json:"sourceName"`
	Highlights []CaptionSegment `json:"highlights"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Clip is one rendered media file cut from a highlight's time range.
// Duration is in seconds, one decimal, with an "s" suffix (e.g. "5.0s").
type Clip struct {
	ID       int    `json:"id"`
	File     string `json:"file"`
	Duration string `json:"duration"`
	Text     string `json:"text"`
}

// ClipsMetadata is written once per cut batch and lists only the clips that
// were actually rendered; failed cuts are omitted, not recorded as errors.
type ClipsMetadata struct {
	SourceName string    `json:"sourceName"`
	CreatedAt  time.Time `json:"createdAt"`
	TotalClips int       `json:"totalClips"`
	Clips      []Clip    `json:"clips"`
}

// ApprovedSelection is the operator-curated presentation order for assembly.
// Order holds 1-based indices into the original ClipsMetadata.Clips; values
// may repeat or omit clips, and len(Clips) == len(Order).
type ApprovedSelection struct {
	SourceName   string    `json:"sourceName"`
	SourceFolder string    `json:"sourceFolder"`
	ApprovedAt   time.Time `json:"approvedAt"`
	Clips        []Clip    `json:"clips"`
	Order        []int     `json:"order"`
}

// Component is the duration bookkeeping for one structural part of an
// assembled video.
type Component struct {
	Count    int    `json:"count,omitempty"`
	Duration string `json:"duration"`
}

// AssemblyMetadata summarizes one assembled deliverable. All durations are
// sums of probed component durations, formatted like Clip.Duration.
type AssemblyMetadata struct {
	SourceName    string     `json:"sourceName"`
	CreatedAt     time.Time  `json:"createdAt"`
	OutputPath    string     `json:"outputPath"`
	Clips         Component  `json:"clips"`
	Intro         *Component `json:"intro,omitempty"`
	Original      Component  `json:"original"`
	TotalDuration string     `json:"totalDuration"`
}

// Summary is the text-generation output for one video's captions.
type Summary struct {
	SourceName  string    `json:"sourceName"`
	Summary     string    `json:"summary"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hashtags    []string  `json:"hashtags"`
	CreatedAt   time.Time `json:"createdAt"`
}
