package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/services"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	service services.ChannelService
	db      *sql.DB
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Service services.ChannelService
	DB      *sql.DB
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		service: opts.Service,
		db:      opts.DB,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, libraryCommand, renameCommand, convertCommand,
		bgmCommand, uploadCommand, playlistCommand, reportCommand, dashboardCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig refreshes the runner config from the --config flag when the
// file exists; otherwise the config from startup is kept.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		return r.config
	}
	if _, err := os.Stat(configPath); err != nil {
		return r.config
	}
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	r.config = config
	return config
}

// database returns the configured sqlite handle, opening it on first use.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	return db, nil
}

// authenticator builds the OAuth helper from the configured credentials.
func (r *Runner) authenticator() (*services.Authenticator, error) {
	creds := r.config.Credentials
	if creds.ClientSecretPath == "" {
		return nil, fmt.Errorf("%w: credentials.client_secret_path is not set", shared.ErrMissingCredentials)
	}
	return services.NewAuthenticator(creds.ClientSecretPath, creds.TokenPath,
		r.config.Server.Host, r.config.Server.Port)
}

// channelService returns the injected service or builds one for the YouTube
// Data API. Write operations require a saved OAuth token; read operations
// fall back to the configured API key when no token exists.
func (r *Runner) channelService(ctx context.Context, write bool) (services.ChannelService, error) {
	if r.service != nil {
		return r.service, nil
	}

	auth, authErr := r.authenticator()
	if authErr == nil {
		source, err := auth.TokenSource(ctx)
		if err == nil {
			svc, err := services.NewYouTubeService(ctx, option.WithTokenSource(source))
			if err != nil {
				return nil, err
			}
			r.service = svc
			return svc, nil
		}
		if write {
			return nil, fmt.Errorf("%w: run 'reap auth login' first", shared.ErrNotAuthenticated)
		}
	} else if write {
		return nil, authErr
	}

	if r.config.Credentials.APIKey == "" {
		if authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("%w: no token and no API key configured", shared.ErrNotAuthenticated)
	}

	svc, err := services.NewYouTubeService(ctx, option.WithAPIKey(r.config.Credentials.APIKey))
	if err != nil {
		return nil, err
	}
	r.service = svc
	return svc, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
