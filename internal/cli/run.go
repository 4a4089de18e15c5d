package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/ports/adapters/ffmpeg"
	"clipforge/internal/ports/adapters/openrouter"
	"clipforge/internal/ports/adapters/whispercpp"
	"clipforge/internal/prompt"
	"clipforge/internal/render"
	"clipforge/internal/watcher"
)

type stageFunc func(ctx context.Context, p *pipeline.Pipeline) error

func stageExtract(ctx context.Context, p *pipeline.Pipeline) error    { return p.ExtractAll(ctx) }
func stageTranscribe(ctx context.Context, p *pipeline.Pipeline) error { return p.TranscribeAll(ctx) }
func stageAnalyze(ctx context.Context, p *pipeline.Pipeline) error    { return p.AnalyzeAll(ctx) }
func stageOrganize(ctx context.Context, p *pipeline.Pipeline) error   { return p.OrganizeAll(ctx) }
func stageHighlights(ctx context.Context, p *pipeline.Pipeline) error {
	return p.SelectHighlightsAll(ctx)
}
func stageCut(ctx context.Context, p *pipeline.Pipeline) error      { return p.CutAll(ctx) }
func stageApprove(ctx context.Context, p *pipeline.Pipeline) error  { return p.ApproveAll(ctx) }
func stageAssemble(ctx context.Context, p *pipeline.Pipeline) error { return p.AssembleAll(ctx) }

func stageCommand(name, short string, fn stageFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd, true)
			if err != nil {
				return err
			}
			return fn(cmd.Context(), p)
		},
	}
}

func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every stage for every video, start to finish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd, false)
			if err != nil {
				return err
			}
			return p.RunAll(cmd.Context())
		},
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the derived pipeline stage of every video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd, false)
			if err != nil {
				return err
			}
			statuses, err := p.Statuses()
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no videos in workspace")
				return nil
			}
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, []string{s.Name, s.Stage.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"Video", "Stage"}, rows))
			return nil
		},
	}
}

func watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the uploads directory and prepare new videos automatically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPipeline(cmd, false)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(p.Layout.UploadsDir(), 0o755); err != nil {
				return err
			}
			w, err := watcher.New(p.Layout.UploadsDir(), func(ctx context.Context, path string) error {
				return p.Prepare(ctx, pipeline.LogicalName(path))
			}, p.Log)
			if err != nil {
				return err
			}
			defer w.Close()
			err = w.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a sample config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

// buildPipeline loads config, applies flag overrides, and wires the real
// adapters. askOverwrite selects the single-stage overwrite-prompt behavior.
func buildPipeline(cmd *cobra.Command, askOverwrite bool) (*pipeline.Pipeline, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if ws, _ := cmd.Flags().GetString("workspace"); ws != "" {
		cfg.Workspace.Root = ws
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, err
	}

	return &pipeline.Pipeline{
		Layout:       pipeline.Layout{Root: cfg.Workspace.Root},
		Log:          log,
		Prompt:       prompt.NewStdin(),
		Video:        ffmpeg.New(cfg.Tools.FFmpeg, cfg.Tools.FFprobe),
		STT:          whispercpp.New(cfg.Whisper.Binary, cfg.Whisper.Model, cfg.Whisper.Language),
		Text:         openrouter.New(os.Getenv("OPENROUTER_API_KEY"), cfg.OpenRouter.Model, cfg.OpenRouter.BaseURL),
		IntroPath:    cfg.Assembly.IntroPath,
		AskOverwrite: askOverwrite,
	}, nil
}
