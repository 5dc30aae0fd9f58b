package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/emmanuelgonz/irods-data-downloader/internal/adapters/irods"
	"github.com/emmanuelgonz/irods-data-downloader/internal/archive"
	"github.com/emmanuelgonz/irods-data-downloader/internal/catalog"
	"github.com/emmanuelgonz/irods-data-downloader/internal/config"
	"github.com/emmanuelgonz/irods-data-downloader/internal/exitcode"
	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
	"github.com/emmanuelgonz/irods-data-downloader/internal/retrieval"
	"github.com/emmanuelgonz/irods-data-downloader/internal/storage"
	"github.com/joho/godotenv"
)

const defaultOutDir = "irods_data"

type options struct {
	coordinate  model.Coordinate
	sequence    string
	outDir      string
	configPath  string
	runID       string
	listingForm string
	dryRun      bool
	strict      bool
	mirror      bool
}

func main() {
	// Configure the global logger
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitcode.Success)
		}
		slog.Error("invalid arguments", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}
	if opts.listingForm != "" {
		cfg.ListingForm = opts.listingForm
	}
	form, err := catalog.ParseListingForm(cfg.ListingForm)
	if err != nil {
		slog.Error("invalid listing form", "error", err)
		os.Exit(exitcode.ConfigError)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	runID := model.RunID(opts.runID)
	if runID == "" {
		if runID, err = model.NewRunID(); err != nil {
			slog.Error("failed to generate run-id", "error", err)
			os.Exit(exitcode.ApplicationError)
		}
	}
	if err := runID.Validate(); err != nil {
		slog.Error("invalid run-id", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
		os.Exit(exitcode.ConfigError)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With("run_id", runID.String()))

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := irods.NewClient(irods.Options{
		LocateCommand: cfg.LocateCommand,
		GetCommand:    cfg.GetCommand,
		GetFlags:      cfg.GetFlags,
	})
	if err := client.CheckInstalled(); err != nil {
		slog.Error("icommands unavailable", "error", err)
		os.Exit(exitcode.CatalogUnavailable)
	}
	tar := archive.NewTar(cfg.TarCommand)
	if err := tar.CheckInstalled(); err != nil {
		slog.Error("tar unavailable", "error", err)
		os.Exit(exitcode.CatalogUnavailable)
	}

	var objectStorage retrieval.ObjectStorage
	if opts.mirror {
		if err := cfg.RequireMinIO(); err != nil {
			slog.Error("mirror requested without MinIO settings", "error", err)
			os.Exit(exitcode.ConfigError)
		}
		minioClient, err := storage.NewMinIOClient(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			Metadata:  map[string]string{"run_id": runID.String()},
		})
		if err != nil {
			slog.Error("failed to initialize minio client", "error", err)
			os.Exit(exitcode.StorageError)
		}
		objectStorage = minioClient
	}

	svc := retrieval.NewService(catalog.NewResolver(cfg.ServerRoot), client, client, tar, objectStorage)

	req := retrieval.Request{
		Coordinate: opts.coordinate,
		Sequence:   opts.sequence,
		OutDir:     opts.outDir,
		Form:       form,
		DryRun:     opts.dryRun,
	}

	summary, err := svc.Run(ctx, req)
	code := exitCode(summary, err, opts.strict)
	if err != nil {
		slog.Error("application error", "error", err)
	}

	slog.Info("shutdown complete", "exit_code", code)
	os.Exit(code)
}

// parseFlags parses and validates args. Coordinate values are checked against
// the catalog tables so nothing touches the network on bad input.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	var season, sensor, level, crop string

	fs := flag.NewFlagSet("irodsget", flag.ContinueOnError)
	fs.SetOutput(output)

	for _, name := range []string{"season", "sea"} {
		fs.StringVar(&season, name, "", "Season to download. Choices are "+strings.Join(catalog.Seasons(), ", ")+".")
	}
	for _, name := range []string{"sensor", "sen"} {
		fs.StringVar(&sensor, name, "", "Sensor to download. Choices are "+strings.Join(catalog.Sensors(), ", ")+".")
	}
	for _, name := range []string{"level", "lev"} {
		fs.StringVar(&level, name, "", "Data level to download. Choices are "+strings.Join(catalog.Levels(), ", ")+".")
	}
	for _, name := range []string{"sequence", "seq"} {
		fs.StringVar(&opts.sequence, name, "", `Sequence the file name must contain, e.g. "_ortho.tif".`)
	}
	for _, name := range []string{"outdir", "out"} {
		fs.StringVar(&opts.outDir, name, defaultOutDir, "Output directory.")
	}
	fs.StringVar(&crop, "crop", "", "Optional crop qualifier. Choices are "+strings.Join(catalog.Crops(), ", ")+".")
	fs.StringVar(&opts.configPath, "config", "", "Optional YAML configuration file.")
	fs.StringVar(&opts.runID, "run-id", "", "Run identifier (UUIDv7); generated when empty.")
	fs.StringVar(&opts.listingForm, "listing-form", "", `Catalog wildcard form: "substring" (%/%seq) or "exact" (%/seq).`)
	fs.BoolVar(&opts.dryRun, "dry-run", false, "List matches and partition keys without downloading.")
	fs.BoolVar(&opts.strict, "strict", false, "Exit non-zero when any file fails.")
	fs.BoolVar(&opts.mirror, "mirror", false, "Upload the output tree to MinIO after the run.")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var missing []string
	for name, v := range map[string]string{"season": season, "sensor": sensor, "level": level, "sequence": opts.sequence} {
		if v == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return options{}, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	if opts.outDir == "" {
		return options{}, errors.New("outdir cannot be empty")
	}

	opts.coordinate = model.Coordinate{
		Season: model.Season(season),
		Sensor: model.Sensor(sensor),
		Level:  model.Level(level),
		Crop:   model.Crop(crop),
	}
	if err := catalog.Validate(opts.coordinate); err != nil {
		return options{}, err
	}
	return opts, nil
}

func exitCode(summary *retrieval.Summary, err error, strict bool) int {
	if err != nil {
		var unknown *catalog.UnknownCoordinateValueError
		var mirrorErr *retrieval.MirrorError
		switch {
		case errors.As(err, &unknown):
			return exitcode.ConfigError
		case errors.As(err, &mirrorErr):
			return exitcode.StorageError
		default:
			return exitcode.ApplicationError
		}
	}
	if strict && summary != nil && summary.Failed() > 0 {
		return exitcode.PartialFailure
	}
	return exitcode.Success
}
