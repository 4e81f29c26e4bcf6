// Package admin implements the autoescuela-admin maintenance commands:
// roster imports, invite pruning and schema migrations.
package admin

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/app"
	"github.com/aussiebroadwan/autoescuela/internal/school/roster"
	"github.com/aussiebroadwan/autoescuela/internal/school/service"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
	"github.com/caarlos0/env/v11"
)

// ErrUsage is returned for an unknown or missing subcommand.
var ErrUsage = errors.New("usage: autoescuela-admin <import|prune|migrate> [flags]")

// Env is the part of the server configuration the admin commands need.
type Env struct {
	BaseURL   string             `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	Database  app.DatabaseConfig `envPrefix:"DATABASE_"`
	Mail      app.MailConfig     `envPrefix:"MAIL_"`
	Retention time.Duration      `env:"HOUSEKEEPING_RETENTION" envDefault:"720h"`
	Timeout   time.Duration      `env:"ADMIN_TIMEOUT" envDefault:"10m"`
	LogLevel  string             `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string             `env:"LOG_FORMAT" envDefault:"text"`
}

func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	e.BaseURL = strings.TrimRight(e.BaseURL, "/")
	return e, nil
}

// ImportConfig holds the flags of the import command.
type ImportConfig struct {
	SchoolID string
	ActorID  string
	File     string
	TTLDays  int
	Check    bool
	JSON     bool
}

// ParseImportConfig parses import flags.
func ParseImportConfig(fs *flag.FlagSet, args []string) (ImportConfig, error) {
	var cfg ImportConfig
	fs.StringVar(&cfg.SchoolID, "school", "", "school ID to import into")
	fs.StringVar(&cfg.ActorID, "actor", "", "user ID of the staff member issuing the invites")
	fs.StringVar(&cfg.File, "file", "", "path to the CSV roster (- for stdin)")
	fs.IntVar(&cfg.TTLDays, "ttl-days", service.DefaultImportTTLDays, "invite lifetime in days")
	fs.BoolVar(&cfg.Check, "check", false, "parse and report the roster without issuing invites")
	fs.BoolVar(&cfg.JSON, "json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return ImportConfig{}, err
	}

	if cfg.File == "" {
		return ImportConfig{}, errors.New("-file is required")
	}
	if !cfg.Check && (cfg.SchoolID == "" || cfg.ActorID == "") {
		return ImportConfig{}, errors.New("-school and -actor are required unless -check is set")
	}
	return cfg, nil
}

// Run executes the subcommand named by args[0].
func Run(ctx context.Context, e Env, args []string, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if len(args) == 0 {
		return ErrUsage
	}

	logger := slogx.New(slogx.Config{
		Service: "school-admin",
		Version: app.BuildVersion,
		Level:   e.LogLevel,
		Format:  e.LogFormat,
		Output:  errOut,
	})
	ctx = slogx.WithContext(ctx, logger)

	cmd, rest := args[0], args[1:]

	var importCfg ImportConfig
	switch cmd {
	case "import":
		fs := flag.NewFlagSet("import", flag.ContinueOnError)
		fs.SetOutput(errOut)
		cfg, err := ParseImportConfig(fs, rest)
		if err != nil {
			return err
		}
		importCfg = cfg
		if cfg.Check {
			return checkRoster(cfg, out)
		}
	case "prune", "migrate":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(errOut)
		if err := fs.Parse(rest); err != nil {
			return err
		}
	default:
		return ErrUsage
	}

	st, err := app.OpenStore(ctx, e.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close store", slogx.Err(err))
		}
	}()

	switch cmd {
	case "migrate":
		if err := st.ApplyMigrations(); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		_, err := fmt.Fprintln(out, "migrations applied")
		return err
	case "prune":
		return prune(ctx, st, e.Retention, logger, out)
	default:
		return importRoster(ctx, st, e, importCfg, logger, out)
	}
}

func prune(ctx context.Context, st store.Store, retention time.Duration, logger *slog.Logger, out io.Writer) error {
	hk := service.NewHousekeepingService(st, logger, 0, retention)
	n, err := hk.RunOnce(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "deleted %d expired invites\n", n)
	return err
}

func openRoster(path string) (roster.Result, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return roster.Result{}, fmt.Errorf("open roster: %w", err)
		}
		defer f.Close()
		r = f
	}
	return roster.Parse(r)
}

// CheckReport is the -check output.
type CheckReport struct {
	Rows       []roster.Row      `json:"rows"`
	Errors     []roster.RowError `json:"errors"`
	Duplicates map[string][]int  `json:"duplicates"`
}

func checkRoster(cfg ImportConfig, out io.Writer) error {
	parsed, err := openRoster(cfg.File)
	if err != nil {
		return err
	}

	rep := CheckReport{
		Rows:       parsed.Rows,
		Errors:     parsed.Errors,
		Duplicates: roster.FindDuplicates(parsed.Rows),
	}
	if cfg.JSON {
		return writeJSON(out, rep)
	}

	fmt.Fprintf(out, "%d valid rows, %d rejected\n", len(rep.Rows), len(rep.Errors))
	for _, re := range rep.Errors {
		fmt.Fprintf(out, "  %s\n", re.Error())
	}
	for email, lines := range rep.Duplicates {
		fmt.Fprintf(out, "  %s repeated on lines %v\n", email, lines)
	}
	return nil
}

// ImportReport is the import output. Line numbers refer to the CSV file.
type ImportReport struct {
	Created  int           `json:"created"`
	Rejected []RejectedRow `json:"rejected"`
}

type RejectedRow struct {
	Line   int    `json:"line"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

func importRoster(ctx context.Context, st store.Store, e Env, cfg ImportConfig, logger *slog.Logger, out io.Writer) error {
	parsed, err := openRoster(cfg.File)
	if err != nil {
		return err
	}

	rep := ImportReport{Rejected: make([]RejectedRow, 0, len(parsed.Errors))}
	for _, re := range parsed.Errors {
		rep.Rejected = append(rep.Rejected, RejectedRow{
			Line:   re.Line,
			Email:  re.Row.Recipient,
			Reason: re.Field + " " + re.Message,
		})
	}

	if len(parsed.Rows) > 0 {
		svc := &service.InviteService{
			Store:   st,
			Mailer:  app.NewMailer(e.Mail, logger),
			BaseURL: e.BaseURL,
		}

		rows := make([]service.ImportRow, len(parsed.Rows))
		for i, r := range parsed.Rows {
			rows[i] = service.ImportRow{Name: r.Name, Recipient: r.Recipient, Phone: r.Phone}
		}

		res, err := svc.BulkImport(ctx, service.BulkImportInput{
			ActorID:  cfg.ActorID,
			SchoolID: cfg.SchoolID,
			Rows:     rows,
			TTLDays:  cfg.TTLDays,
		})
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		rep.Created = res.CreatedCount
		for _, re := range res.Errors {
			rep.Rejected = append(rep.Rejected, RejectedRow{
				Line:   parsed.Rows[re.Row-1].Line,
				Email:  re.Data.Recipient,
				Reason: re.Err.Error(),
			})
		}
	}

	slices.SortStableFunc(rep.Rejected, func(a, b RejectedRow) int {
		return cmp.Compare(a.Line, b.Line)
	})

	if cfg.JSON {
		return writeJSON(out, rep)
	}

	fmt.Fprintf(out, "created %d invites, %d rejected\n", rep.Created, len(rep.Rejected))
	for _, r := range rep.Rejected {
		fmt.Fprintf(out, "  line %d: %s: %s\n", r.Line, r.Email, r.Reason)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
