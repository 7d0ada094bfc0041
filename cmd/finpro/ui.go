package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/tui"
)

func uiFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("record", false, "record every frame and log line for debugging")
	cmd.Flags().String("record-dir", "", "directory for the recording (default: a new temp dir)")
}

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal interface",
		Long: `Open the interactive interface with the dashboard, history and AI advice tabs.

This is also what runs when finpro is started without a command.`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}
	uiFlags(cmd)
	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	record, _ := cmd.Flags().GetBool("record")
	recordDir, _ := cmd.Flags().GetString("record-dir")

	recorder := tui.NewRecorder(record, recordDir)
	defer recorder.Close()
	if record && recorder.Dir() == "" {
		common.LogWarn("Could not start the recorder, continuing without it", nil)
	}

	// Log lines would tear the alternate screen, so they go to the
	// recording or nowhere.
	var logOut io.Writer = io.Discard
	if recorder.Dir() != "" {
		logOut = recorder
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	host := tui.NewHost()
	s, err := openSession(ctx, logger, app.WithConfirmer(host), app.WithVibrator(host))
	if err != nil {
		return err
	}
	defer s.Close()

	err = tui.Run(ctx, s.ctrl, recorder,
		tui.WithHost(host),
		tui.WithRenderer(s.renderer),
		tui.WithLogger(logger),
	)

	if dir := recorder.Dir(); dir != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded %d frames to %s\n", recorder.Frames(), dir)
	}
	return err
}
