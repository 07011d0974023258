package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/seqtools/edl-agent/internal/archive"
	"github.com/seqtools/edl-agent/internal/export"
	"github.com/seqtools/edl-agent/internal/logging"
)

var exportFlags struct {
	format       string
	outDir       string
	filename     string
	limitToRange bool
	nested       bool
	videos       string
	logLevel     string
}

var exportCmd = &cobra.Command{
	Use:   "export <archive.xml>",
	Short: "Export a timeline archive to EDL files without the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "vegas", "output format: vegas, samplitude or both")
	exportCmd.Flags().StringVarP(&exportFlags.outDir, "out", "o", ".", "output directory")
	exportCmd.Flags().StringVar(&exportFlags.filename, "name", "", "output filename without extension (default: timeline name)")
	exportCmd.Flags().BoolVar(&exportFlags.limitToRange, "limit-to-range", false, "only export elements inside the timeline's frame range")
	exportCmd.Flags().BoolVar(&exportFlags.nested, "nested", false, "include clips inside group containers")
	exportCmd.Flags().StringVar(&exportFlags.videos, "videos", "none", "video inclusion policy: none, selected or all")
	exportCmd.Flags().StringVar(&exportFlags.logLevel, "log-level", "info", "log level")
	rootCmd.AddCommand(exportCmd)
}

func runExport(archivePath string) error {
	logger := logging.NewLogger(exportFlags.logLevel)

	var formats []export.Format
	if exportFlags.format == "both" {
		formats = []export.Format{export.FormatVegas, export.FormatSamplitude}
	} else {
		format, err := export.ParseFormat(exportFlags.format)
		if err != nil {
			return err
		}
		formats = []export.Format{format}
	}

	videos, err := export.ParseVideoPolicy(exportFlags.videos)
	if err != nil {
		return err
	}
	opts := export.Options{
		LimitToRange:  exportFlags.limitToRange,
		IncludeNested: exportFlags.nested,
		Videos:        videos,
	}

	if err := export.ValidateOutputDir(exportFlags.outDir); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	p, err := archive.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	filename := export.SanitizeFilename(exportFlags.filename, 120)
	if filename == "" {
		filename = export.SanitizeFilename(p.Name, 120)
	}
	if filename == "" {
		filename = "timeline_export"
	}

	var g errgroup.Group
	for _, format := range formats {
		outPath := filepath.Join(exportFlags.outDir, filename+format.Ext())
		g.Go(func() error {
			if err := export.WriteFile(outPath, format, p, opts, logger); err != nil {
				return fmt.Errorf("%s export: %w", format, err)
			}
			logger.Info("export written", "format", format, "path", logging.SanitizePath(outPath))
			return nil
		})
	}
	return g.Wait()
}
