package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Profile is the fixed output encode policy. Clips and assemblies always
// re-encode under the same settings so heterogeneous inputs concatenate
// cleanly and HDR color metadata survives the merge.
type Profile struct {
	VideoCodec     string
	Preset         string
	CRF            string
	PixelFormat    string
	ColorPrimaries string
	ColorTransfer  string
	ColorMatrix    string
	AudioCodec     string
	AudioBitrate   string
}

// DefaultProfile is the only profile the pipeline ships; these are policy
// constants, not tunables.
func DefaultProfile() Profile {
	return Profile{
		VideoCodec:     "libx265",
		Preset:         "medium",
		CRF:            "18",
		PixelFormat:    "yuv420p10le",
		ColorPrimaries: "bt2020",
		ColorTransfer:  "smpte2084",
		ColorMatrix:    "bt2020nc",
		AudioCodec:     "aac",
		AudioBitrate:   "192k",
	}
}

func (p Profile) encodeArgs() []string {
	return []string{
		"-c:v", p.VideoCodec,
		"-preset", p.Preset,
		"-crf", p.CRF,
		"-pix_fmt", p.PixelFormat,
		"-color_primaries", p.ColorPrimaries,
		"-color_trc", p.ColorTransfer,
		"-colorspace", p.ColorMatrix,
		"-c:a", p.AudioCodec,
		"-b:a", p.AudioBitrate,
	}
}

type Adapter struct {
	ffmpeg  string
	ffprobe string
	profile Profile
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, profile: DefaultProfile()}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inVideo,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) CutClip(ctx context.Context, inVideo string, start, duration float64, outVideo string) error {
	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-i", inVideo,
		"-t", fmtSeconds(duration),
	}
	args = append(args, a.profile.encodeArgs()...)
	args = append(args, outVideo)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg cut clip: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) Concat(ctx context.Context, inputs []string, outVideo string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("ffmpeg concat: no inputs")
	}
	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	var graph strings.Builder
	for i := range inputs {
		fmt.Fprintf(&graph, "[%d:v][%d:a]", i, i)
	}
	fmt.Fprintf(&graph, "concat=n=%d:v=1:a=1[outv][outa]", len(inputs))
	args = append(args,
		"-filter_complex", graph.String(),
		"-map", "[outv]",
		"-map", "[outa]",
	)
	args = append(args, a.profile.encodeArgs()...)
	args = append(args, outVideo)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
