package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"catalogetl/internal/artifact"
	"catalogetl/internal/config"
	"catalogetl/internal/datasource"
	"catalogetl/internal/datasource/file"
	"catalogetl/internal/datasource/s3"
	"catalogetl/internal/etl"
	"catalogetl/internal/metrics"
	"catalogetl/internal/metrics/prompush"
	"catalogetl/internal/storage"
)

type runFlags struct {
	source  string
	bucket  string
	key     string
	path    string
	storage string
	table   string
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one fetch-clean-load run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cfg, cmd, flags)

			if issues := config.Validate(cfg); config.Errors(issues) {
				for _, i := range issues {
					cmd.PrintErrln(i)
				}
				return eris.New("configuration has errors")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "source kind: s3 or file")
	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "s3 bucket holding the export")
	cmd.Flags().StringVar(&flags.key, "key", "", "s3 object key of the export")
	cmd.Flags().StringVar(&flags.path, "path", "", "local export path for the file source")
	cmd.Flags().StringVar(&flags.storage, "storage", "", "warehouse kind: postgres or sqlite")
	cmd.Flags().StringVar(&flags.table, "table", "", "destination table name")
	return cmd
}

// applyFlags layers explicitly set CLI flags over the loaded config.
func applyFlags(cfg *config.Config, cmd *cobra.Command, f runFlags) {
	if cmd.Flags().Changed("source") {
		cfg.Source.Kind = f.source
	}
	if cmd.Flags().Changed("bucket") {
		cfg.Source.Bucket = f.bucket
	}
	if cmd.Flags().Changed("key") {
		cfg.Source.Key = f.key
	}
	if cmd.Flags().Changed("path") {
		cfg.Source.Path = f.path
	}
	if cmd.Flags().Changed("storage") {
		cfg.Warehouse.Kind = f.storage
	}
	if cmd.Flags().Changed("table") {
		cfg.Warehouse.Table = f.table
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	source, err := newSource(cfg.Source)
	if err != nil {
		return err
	}

	repo, err := storage.New(ctx, storage.Config{
		Kind: cfg.Warehouse.Kind,
		DSN:  cfg.Warehouse.DSNString(),
	})
	if err != nil {
		return eris.Wrap(err, "open warehouse")
	}
	defer repo.Close()

	writer, err := artifact.NewWriter(cfg.Artifacts.Dir, logger)
	if err != nil {
		return err
	}

	recorder, err := newRecorder(cfg.Metrics)
	if err != nil {
		return err
	}

	p := &etl.Pipeline{
		Source:    source,
		Repo:      repo,
		Artifacts: writer,
		Table:     cfg.Warehouse.Table,
		Logger:    logger,
		Metrics:   recorder,
	}

	logger.Info("starting run",
		zap.String("source", cfg.Source.Kind),
		zap.String("warehouse", cfg.Warehouse.Kind),
		zap.String("table", cfg.Warehouse.Table),
	)
	if _, err := p.Run(ctx); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	return nil
}

func newSource(cfg config.SourceConfig) (datasource.Source, error) {
	switch cfg.Kind {
	case "s3":
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
		if err != nil {
			return nil, eris.Wrap(err, "aws session")
		}
		return s3.NewFromSession(sess, cfg.Bucket, cfg.Key), nil
	case "file":
		return file.NewLocal(cfg.Path), nil
	default:
		return nil, eris.Errorf("unknown source kind %q", cfg.Kind)
	}
}

func newRecorder(cfg config.MetricsConfig) (metrics.Recorder, error) {
	if cfg.Backend != "pushgateway" {
		return metrics.Nop(), nil
	}
	rec, err := prompush.New(cfg.Job, cfg.GatewayURL)
	if err != nil {
		return nil, eris.Wrap(err, "metrics recorder")
	}
	return rec, nil
}
