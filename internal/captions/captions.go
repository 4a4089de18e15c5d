// Package captions parses and renders SRT-style timed caption files.
//
// Parsing is deliberately lenient: blocks that do not look like a caption
// (no time-range line, fewer than three lines) are skipped without error so
// one bad block never poisons a whole transcript.
package captions

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"clipforge/internal/types"
)

var timeRangeRE = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})[.,](\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2})[.,](\d{3})`)

// Result is a parsed caption file. SkippedBlocks counts blocks dropped by the
// leniency policy so callers and tests can observe it without log scraping.
type Result struct {
	Segments      []types.CaptionSegment
	SkippedBlocks int
}

// Parse materializes every well-formed block of raw caption text.
// Segment IDs are assigned 1-based in source order; millisecond separators
// are normalized to a period. Empty input yields an empty result.
func Parse(raw string) Result {
	var res Result
	id := 1
	for _, block := range splitBlocks(raw) {
		lines := blockLines(block)
		if len(lines) < 3 {
			res.SkippedBlocks++
			continue
		}
		m := timeRangeRE.FindStringSubmatch(lines[1])
		if m == nil {
			res.SkippedBlocks++
			continue
		}
		res.Segments = append(res.Segments, types.CaptionSegment{
			ID:    id,
			Start: m[1] + "." + m[2],
			End:   m[3] + "." + m[4],
			Text:  strings.Join(lines[2:], " "),
		})
		id++
	}
	return res
}

// ToSeconds converts HH:MM:SS.mmm to absolute seconds. Both period and comma
// millisecond separators are accepted.
func ToSeconds(ts string) (float64, error) {
	ts = strings.Replace(strings.TrimSpace(ts), ",", ".", 1)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	s, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	return float64(h)*3600 + float64(m)*60 + s, nil
}

// FormatTimestamp renders absolute seconds as HH:MM:SS,mmm, the separator SRT
// players expect on disk.
func FormatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(math.Round(sec * 1000))
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// RenderSRT serializes speech-to-text segments into SRT caption text.
// Segments with no speech are dropped.
func RenderSRT(segments []types.Segment) string {
	var b strings.Builder
	idx := 1
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", idx, FormatTimestamp(seg.Start), FormatTimestamp(seg.End), text)
		idx++
	}
	return b.String()
}

// Text joins segment texts into one plain-text transcript.
func Text(segments []types.CaptionSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

var blockSplitRE = regexp.MustCompile(`\r?\n\s*\r?\n`)

func splitBlocks(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return blockSplitRE.Split(raw, -1)
}

func blockLines(block string) []string {
	var out []string
	for _, ln := range strings.Split(block, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
