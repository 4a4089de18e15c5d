// Package cli wires the cobra command tree for the clipforge binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:          "clipforge",
		Short:        "Turn uploaded videos into curated highlight deliverables",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "clipforge.toml", "Config file path")
	root.PersistentFlags().String("workspace", "", "Workspace root (overrides config)")
	root.PersistentFlags().String("log-level", "", "Log level (overrides config)")

	root.AddCommand(
		stageCommand("extract", "Extract audio from uploaded videos", stageExtract),
		stageCommand("transcribe", "Transcribe extracted audio into captions", stageTranscribe),
		stageCommand("analyze", "Summarize captions and draft platform copy", stageAnalyze),
		stageCommand("organize", "Gather each video's artifacts into its own folder", stageOrganize),
		stageCommand("highlights", "Select caption segments to cut into clips", stageHighlights),
		stageCommand("cut", "Cut the selected highlight clips", stageCut),
		stageCommand("approve", "Order and approve cut clips for assembly", stageApprove),
		stageCommand("assemble", "Assemble approved clips into the final video", stageAssemble),
		runCommand(),
		statusCommand(),
		watchCommand(),
		initCommand(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
