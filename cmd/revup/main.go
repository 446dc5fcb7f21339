// Package main provides the CLI entry point for revup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/revup"
	"github.com/five82/revup/internal/config"
	"github.com/five82/revup/internal/logging"
	"github.com/five82/revup/internal/reporter"
	"github.com/five82/revup/internal/util"
)

const appVersion = "0.1.0"

type cliFlags struct {
	logDir  string
	verbose bool
	noLog   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	args := config.New("")
	var flags cliFlags

	root := &cobra.Command{
		Use:     "revup",
		Short:   "Upscale video using a segmented export/upscale/encode pipeline",
		Version: appVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), args, flags)
		},
	}

	root.Flags().StringVarP(&args.InputPath, "inputpath", "i", "", "input video file or directory (required)")
	root.Flags().IntVarP(&args.Resolution, "resolution", "r", config.DefaultResolution, "max source height to upscale; taller sources are cataloged as skipped")
	root.Flags().StringVarP(&args.Format, "format", "f", config.DefaultFormat, "output container: mp4, mkv, or avi")
	root.Flags().StringVarP(&args.Model, "model", "m", config.DefaultModel, "upscaler model")
	root.Flags().IntVarP(&args.Scale, "scale", "s", config.DefaultScale, "integer upscale ratio: 2, 3, or 4")
	root.Flags().IntVarP(&args.SegmentSize, "parts", "P", config.DefaultSegmentSize, "segment size in frames")
	root.Flags().IntVarP(&args.CRF, "crf", "c", config.DefaultCRF, "rate factor, 0-51")
	root.Flags().StringVarP(&args.Preset, "preset", "p", config.DefaultPreset, "encoder preset")
	root.Flags().StringVarP(&args.Encoder, "encoder", "e", config.DefaultEncoder, "video encoder: libx265, libsvt_hevc, or libsvtav1")
	root.Flags().StringVarP(&args.X265Params, "x265params", "x", config.DefaultX265Params, "extra codec params")
	root.Flags().StringVarP(&args.OutputPath, "outputpath", "o", "", "output path; must not already exist")

	root.Flags().StringVarP(&flags.logDir, "log-dir", "l", "", "log directory (defaults to ~/.local/state/revup/logs)")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose (debug) logging")
	root.Flags().BoolVar(&flags.noLog, "no-log", false, "disable log file creation")

	_ = root.MarkFlagRequired("inputpath")

	return root
}

func run(parent context.Context, args *config.Args, flags cliFlags) error {
	info, err := os.Stat(args.InputPath)
	if err != nil {
		return fmt.Errorf("input path does not exist: %s", args.InputPath)
	}

	if args.OutputPath != "" && util.FileExists(args.OutputPath) {
		return fmt.Errorf("output path already exists: %s (revup refuses to overwrite)", args.OutputPath)
	}

	if !info.IsDir() && !util.SingleFileExtensions[filepath.Ext(args.InputPath)] {
		return fmt.Errorf("unsupported input file extension %q; accepts mp4, mkv, avi", filepath.Ext(args.InputPath))
	}

	if err := args.Validate(); err != nil {
		return err
	}

	logDir := flags.logDir
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		logDir = filepath.Join(homeDir, ".local", "state", "revup", "logs")
	}
	logger, err := logging.Setup(logDir, flags.verbose, flags.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
		logger.Info("input: %s", args.InputPath)
		logger.Info("model=%s scale=%d resolution=%d format=%s encoder=%s", args.Model, args.Scale, args.Resolution, args.Format, args.Encoder)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if logger != nil {
			logger.Warn("received interrupt, cancelling")
		}
		cancel()
	}()

	rep := reporter.NewTerminal()

	if info.IsDir() {
		catalogPath := filepath.Join(args.InputPath, "reve.db")
		if logger != nil {
			logger.Info("processing directory %s (catalog %s)", args.InputPath, catalogPath)
		}
		_, err := revup.RunDirectory(ctx, args.InputPath, args.Resolution, args, catalogPath, rep)
		return err
	}

	_, err = revup.Run(ctx, args, rep)
	return err
}
