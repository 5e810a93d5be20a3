package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"catalog-backend/internal/catalog"
	"catalog-backend/internal/components/chrono"
	"catalog-backend/internal/components/serviceutil"
	"catalog-backend/internal/components/telemetry"
	"catalog-backend/internal/scrapers/calendar"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const topSubjects = 20

var dryRun bool

func init() {
	scrapeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scrape and report without writing to the database.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every subject page of the calendar and upsert the courses found.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		// this must fail before anything touches the network
		if !dryRun {
			err := cfg.Database.CheckWriteCredential()
			if err != nil {
				serviceutil.Fatal("cannot write courses", err)
			}
		}

		ctx, cancel := serviceutil.SignalContext()
		defer cancel()

		var tel telemetry.API = telemetry.SlogAPI{}
		otel, ok, err := telemetry.SetupOtelFromEnv(ctx, "catalog-scraper")
		if err != nil {
			serviceutil.Fatal("failed to setup opentelemetry", err)
		}
		if ok {
			defer otel.Shutdown(ctx)
			tel = telemetry.NewOtelAPI(tel)
			telemetry.InstrumentPerfStats(ctx, tel)
		}

		var sink catalog.Sink
		if !dryRun {
			database, err := cfg.Database.OpenDB()
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer database.Close()
			sink = catalog.NewStore(database, tel)
		}

		client := calendar.NewClient(calendar.ClientOptions{
			Timeout:           cfg.Calendar.Timeout(),
			RequestsPerSecond: cfg.Calendar.RequestsPerSecond,
			CloudflareBypass:  true,
		}, tel)
		scraper := calendar.NewScraper(calendar.ScraperOptions{
			Fetcher: client,
			Sink:    sink,
			BaseUrl: cfg.Calendar.BaseUrl,
			Delay:   cfg.Calendar.Delay(),
			Clock:   chrono.NewStandardImpl(),
			Tel:     tel,
		})

		summary, err := scraper.Run(ctx)
		if err != nil {
			// only cancellation ends a run early
			slog.Warn("scrape interrupted", "err", err)
		}
		slog.Info("scraping time", "seconds", summary.Elapsed.Seconds())

		printSummary(summary, dryRun)
	},
}

func printSummary(summary calendar.Summary, dryRun bool) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Pages", "Not found", "Failed", "Found", "Unique", "Written", "Failed batches"})
	written := fmt.Sprint(summary.Written)
	if dryRun {
		written = "dry run"
	}
	t.AppendRow(table.Row{
		summary.Pages,
		summary.NotFound,
		summary.Failed,
		summary.Found,
		summary.Unique,
		written,
		summary.FailedBatches,
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	subjects := table.NewWriter()
	subjects.SetOutputMirror(os.Stdout)
	subjects.AppendHeader(table.Row{"Subject", "Courses"})
	for i, s := range summary.Subjects {
		if i >= topSubjects {
			break
		}
		subjects.AppendRow(table.Row{s.Subject, s.Count})
	}
	subjects.AppendFooter(table.Row{"Subjects", len(summary.Subjects)})
	subjects.SetStyle(table.StyleRounded)
	subjects.Render()
}
