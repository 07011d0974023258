package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqtools/edl-agent/internal/archive"
	"github.com/seqtools/edl-agent/internal/config"
	"github.com/seqtools/edl-agent/internal/logging"
	"github.com/seqtools/edl-agent/internal/store"
	"github.com/seqtools/edl-agent/internal/timeline"
)

var importFlags struct {
	projectID     string
	mode          string
	frameOffset   int
	channelOffset int
	logLevel      string
}

var importCmd = &cobra.Command{
	Use:   "import <archive.xml>",
	Short: "Import a timeline archive into the local project store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFlags.projectID, "project", "p", "", "merge into this existing project instead of creating a new one")
	importCmd.Flags().StringVarP(&importFlags.mode, "mode", "m", "append", "merge mode for --project: new, append or replace")
	importCmd.Flags().IntVar(&importFlags.frameOffset, "frame-offset", 0, "shift imported elements by this many frames")
	importCmd.Flags().IntVar(&importFlags.channelOffset, "channel-offset", 0, "shift imported elements by this many channels")
	importCmd.Flags().StringVar(&importFlags.logLevel, "log-level", "info", "log level")
	rootCmd.AddCommand(importCmd)
}

func runImport(archivePath string) error {
	ctx := context.Background()
	logger := logging.NewLogger(importFlags.logLevel)

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	src, err := archive.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	database, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := store.NewRepository(database.Conn())

	if importFlags.projectID == "" {
		return importNewProject(ctx, repo, src, logger)
	}
	return importIntoProject(ctx, repo, src, logger)
}

func importNewProject(ctx context.Context, repo store.Repository, src *timeline.Project, logger *slog.Logger) error {
	result, report := archive.Apply(nil, src, archive.ModeNew, importFlags.frameOffset, importFlags.channelOffset)
	for _, line := range report {
		logger.Warn("import issue", "detail", line)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	name := result.Name
	if name == "" {
		name = "Imported Timeline"
	}

	now := time.Now().UTC()
	p := &store.Project{
		ID:        store.NewID(),
		Name:      name,
		Timeline:  raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateProject(ctx, p); err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	logger.Info("project imported", "project_id", p.ID, "name", p.Name, "elements", len(result.Elements))
	fmt.Println(p.ID)
	return nil
}

func importIntoProject(ctx context.Context, repo store.Repository, src *timeline.Project, logger *slog.Logger) error {
	mode, err := archive.ParseMode(importFlags.mode)
	if err != nil {
		return err
	}

	p, err := repo.GetProject(ctx, importFlags.projectID)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if p == nil {
		return fmt.Errorf("project %q not found", importFlags.projectID)
	}

	var dst timeline.Project
	if err := json.Unmarshal(p.Timeline, &dst); err != nil {
		return fmt.Errorf("stored timeline is corrupt: %w", err)
	}

	result, report := archive.Apply(&dst, src, mode, importFlags.frameOffset, importFlags.channelOffset)
	for _, line := range report {
		logger.Warn("import issue", "detail", line)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	p.Timeline = raw
	if err := repo.UpdateProject(ctx, p); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	logger.Info("archive merged", "project_id", p.ID, "mode", mode, "elements", len(result.Elements))
	return nil
}
