// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command guidectl is the operator CLI for the Voyara guide catalogue.
//
// # Commands
//
//   - search: Runs the discovery pipeline over a fixture catalogue and prints one page.
//   - import: Upserts a TOML fixture catalogue into PostgreSQL.
//   - token:  Mints an RS256 access token for local testing.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/voyara/internal/core/guide"
	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/internal/platform/migration"
	pgstore "github.com/taibuivan/voyara/internal/platform/postgres"
	"github.com/taibuivan/voyara/internal/platform/sec"
	"github.com/taibuivan/voyara/pkg/pagination"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the CLI with all output written to out.
func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "guidectl",
		Usage:     "Operate the Voyara guide catalogue",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Search a guide catalogue and print one page of results",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "fixtures",
						Aliases: []string{"f"},
						Usage:   "Path to a TOML catalogue (defaults to the embedded demo catalogue)",
						EnvVars: []string{"GUIDE_FIXTURE_PATH"},
					},
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text query"},
					&cli.StringFlag{Name: "location", Usage: "Location substring"},
					&cli.StringFlag{Name: "specialty", Usage: "Specialty substring"},
					&cli.Float64Flag{Name: "min-price", Usage: "Minimum hourly price", Value: guide.DefaultMinPrice},
					&cli.Float64Flag{Name: "max-price", Usage: "Maximum hourly price", Value: guide.DefaultMaxPrice},
					&cli.Float64Flag{Name: "min-rating", Usage: "Minimum rating (0-5)"},
					&cli.BoolFlag{Name: "verified", Usage: "Only verified guides"},
					&cli.BoolFlag{Name: "available", Usage: "Only available guides"},
					&cli.StringSliceFlag{Name: "language", Usage: "Spoken language (repeatable, any match)"},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort strategy (relevance, rating, price_low, price_high, newest)",
						Value: string(guide.SortRelevance),
					},
					&cli.IntFlag{Name: "page", Usage: "Page number", Value: pagination.DefaultPage},
					&cli.IntFlag{Name: "limit", Usage: "Guides per page", Value: pagination.DefaultItemsPerPage},
					&cli.BoolFlag{Name: "json", Usage: "Print the result as JSON"},
				},
			},
			{
				Name:   "import",
				Usage:  "Upsert a TOML guide catalogue into PostgreSQL",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "fixtures",
						Aliases:  []string{"f"},
						Usage:    "Path to the TOML catalogue",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "PostgreSQL connection URL",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
					&cli.BoolFlag{Name: "migrate", Usage: "Apply pending migrations first"},
					&cli.StringFlag{
						Name:    "migrations",
						Usage:   "Path to the SQL migrations directory",
						EnvVars: []string{"MIGRATION_PATH"},
						Value:   "./data/migrations",
					},
				},
			},
			{
				Name:   "token",
				Usage:  "Mint an RS256 access token",
				Action: tokenCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "private-key",
						Usage:    "Path to the PEM private key",
						EnvVars:  []string{"JWT_PRIVATE_KEY_PATH"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "public-key",
						Usage:    "Path to the PEM public key",
						EnvVars:  []string{"JWT_PUBLIC_KEY_PATH"},
						Required: true,
					},
					&cli.StringFlag{Name: "subject", Usage: "User id placed in the token", Required: true},
					&cli.StringFlag{Name: "username", Usage: "Display name placed in the token"},
					&cli.StringFlag{Name: "role", Usage: "Role (admin, moderator, guide, traveler)", Value: string(sec.RoleTraveler)},
					&cli.DurationFlag{Name: "ttl", Usage: "Token lifetime", Value: constants.DefaultAccessTokenTTL},
				},
			},
		},
	}
}

// # Search

func searchCommand(c *cli.Context) error {
	repository, err := openFixtures(c.String("fixtures"))
	if err != nil {
		return err
	}

	guides, err := repository.List(c.Context)
	if err != nil {
		return err
	}

	filters, err := filtersFromFlags(c)
	if err != nil {
		return err
	}
	if err := filters.Validate(); err != nil {
		return describe(err)
	}

	result := guide.Run(guides, filters)
	paginator := pagination.NewPaginator(result.Guides, c.Int("limit"), c.Int("page"))

	if c.Bool("json") {
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"data":       paginator.PageData(),
			"meta":       paginator.Meta(),
			"query":      result.Query,
			"elapsed_ms": result.ElapsedMillis(),
			"facets":     result.Facets,
		})
	}

	return printPage(c.App.Writer, paginator, result)
}

// filtersFromFlags applies every search flag through [guide.Filters.With].
func filtersFromFlags(c *cli.Context) (guide.Filters, error) {
	updates := []struct {
		field guide.Field
		value any
	}{
		{guide.FieldQuery, c.String("query")},
		{guide.FieldLocation, c.String("location")},
		{guide.FieldSpecialty, c.String("specialty")},
		{guide.FieldMinPrice, c.Float64("min-price")},
		{guide.FieldMaxPrice, c.Float64("max-price")},
		{guide.FieldMinRating, c.Float64("min-rating")},
		{guide.FieldVerified, c.Bool("verified")},
		{guide.FieldAvailability, c.Bool("available")},
		{guide.FieldLanguages, c.StringSlice("language")},
		{guide.FieldSortBy, c.String("sort")},
	}

	filters := guide.DefaultFilters()
	for _, update := range updates {
		next, err := filters.With(update.field, update.value)
		if err != nil {
			return filters, describe(err)
		}
		filters = next
	}
	return filters, nil
}

func printPage(out io.Writer, paginator *pagination.Paginator[*guide.Guide], result guide.Result) error {
	meta := paginator.Meta()
	fmt.Fprintf(out, "%d guides in %.2fms (page %d of %d)\n\n",
		result.Total, result.ElapsedMillis(), meta.Page, max(meta.TotalPages, 1))

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "NAME\tLOCATION\tPRICE/H\tRATING\tVERIFIED\tAVAILABLE\tLANGUAGES")
	for _, g := range paginator.PageData() {
		fmt.Fprintf(table, "%s\t%s\t%.2f\t%.1f\t%t\t%t\t%s\n",
			g.Name, g.Location, g.PricePerHour, g.Rating, g.Verified, g.Availability, strings.Join(g.Languages, ", "))
	}
	return table.Flush()
}

// # Import

func importCommand(c *cli.Context) error {
	logger := slog.Default()

	repository, err := guide.LoadFixtures(c.String("fixtures"))
	if err != nil {
		return err
	}

	guides, err := repository.List(c.Context)
	if err != nil {
		return err
	}

	databaseURL := c.String("database-url")
	if c.Bool("migrate") {
		if err := migration.RunUp(databaseURL, c.String("migrations"), logger); err != nil {
			return err
		}
	}

	pool, err := pgstore.NewPool(c.Context, databaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := guide.NewService(guide.NewPostgresRepository(pool), guide.NewMemoryHistoryRepository(), logger)

	imported := 0
	for _, record := range guides {
		if err := service.UpsertGuide(c.Context, record); err != nil {
			return fmt.Errorf("import %q: %w", record.Name, describe(err))
		}
		imported++
	}

	fmt.Fprintf(c.App.Writer, "imported %d guides\n", imported)
	return nil
}

// # Token

func tokenCommand(c *cli.Context) error {
	role := sec.UserRole(c.String("role"))
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	tokens, err := sec.NewTokenService(c.String("private-key"), c.String("public-key"), constants.AuthIssuer)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateAccessToken(c.String("subject"), c.String("username"), string(role), c.Duration("ttl"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, token)
	return nil
}

// # Helpers

func openFixtures(path string) (*guide.FixtureRepository, error) {
	if path == "" {
		return guide.NewFixtureRepository()
	}
	return guide.LoadFixtures(path)
}

// describe appends per-field validation messages to the error text.
func describe(err error) error {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err
	}

	messages := make([]string, len(appError.Details))
	for i, detail := range appError.Details {
		messages[i] = detail.Field + ": " + detail.Message
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(messages, "; "))
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger.With(slog.String("app", "guidectl")))
	return nil
}
