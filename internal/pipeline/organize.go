package pipeline

import (
	"context"
	"os"
	"path/filepath"
)

// OrganizeAll gathers each analyzed video's artifacts into its own folder.
func (p *Pipeline) OrganizeAll(ctx context.Context) error {
	names, err := namesWithFiles(p.Layout.SummariesDir(), ".json")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		p.Log.Info("no analyzed videos to organize")
		return nil
	}
	for _, name := range names {
		if err := p.Organize(ctx, name); err != nil {
			p.Log.Error("organize failed", "video", name, "error", err)
		}
	}
	return nil
}

// Organize moves the uploaded video into its per-video folder and copies the
// captions and summary alongside it. From here on every stage works inside
// that folder. A consented re-run finds the video already moved and only
// refreshes the captions and summary copies.
func (p *Pipeline) Organize(_ context.Context, name string) error {
	dir := p.Layout.VideoDir(name)
	if !p.shouldRun(name, dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := findVideoFile(dir); err != nil {
		upload, err := p.uploadPath(name)
		if err != nil {
			return err
		}
		if err := moveFile(upload, filepath.Join(dir, name+filepath.Ext(upload))); err != nil {
			return err
		}
	}
	if err := copyFile(p.Layout.CaptionsFile(name), filepath.Join(dir, name+".srt")); err != nil {
		return err
	}
	if err := copyFile(p.Layout.SummaryFile(name), filepath.Join(dir, name+".json")); err != nil {
		return err
	}
	p.Log.Info("organized", "video", name, "dir", dir)
	return nil
}
