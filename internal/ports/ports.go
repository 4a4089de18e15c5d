// Package ports declares the external collaborators the pipeline depends on.
// Adapters live under ports/adapters; stages only see these interfaces.
package ports

import (
	"context"

	"clipforge/internal/types"
)

// Transcoder drives an external encoder/prober. All time values are absolute
// seconds.
type Transcoder interface {
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	// CutClip re-encodes the [start, start+duration) window of inVideo under
	// the fixed output profile. A re-encode, not a stream copy: sources use
	// long-GOP codecs where copy cuts would snap to keyframes.
	CutClip(ctx context.Context, inVideo string, start, duration float64, outVideo string) error
	// Concat joins the inputs into one continuous output in a single
	// filter-graph re-encode pass, tolerating mismatched input parameters.
	Concat(ctx context.Context, inputs []string, outVideo string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// SpeechToText transcribes an audio file into timed segments in seconds.
type SpeechToText interface {
	Transcribe(ctx context.Context, wavPath, workDir string) ([]types.Segment, error)
}

// TextGenerator turns caption text into a structured summary with platform
// copy. Implementations return an error on any transport or parse failure;
// retrying is the caller's policy.
type TextGenerator interface {
	Summarize(ctx context.Context, captionText string) (types.Summary, error)
}
