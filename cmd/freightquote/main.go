package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aifuge/freightquote/internal/api"
	"github.com/aifuge/freightquote/internal/config"
	"github.com/aifuge/freightquote/internal/cron"
	"github.com/aifuge/freightquote/internal/migrate"
	"github.com/aifuge/freightquote/internal/quote"
	"github.com/aifuge/freightquote/internal/refdata"
	"github.com/aifuge/freightquote/internal/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "freightquote",
		Short: "Dual-carrier freight quoting over tabular reference data",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; env vars win either way.
			_ = godotenv.Load()
		},
	}
	root.AddCommand(serveCmd(), quoteCmd(), workerCmd(), migrateCmd())
	return root
}

// openStore opens the configured source and loads the initial snapshot.
// A structural reference-data problem aborts here, before any quote.
func openStore(ctx context.Context, cfg config.Config) (*refdata.Store, refdata.Source, error) {
	src, err := storage.Open(ctx, storage.Config{
		Driver:  cfg.Driver,
		DSN:     cfg.DSN,
		DataDir: cfg.DataDir,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open data source: %w", err)
	}

	store := refdata.NewStore(src)
	if err := store.Load(ctx); err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("load reference data: %w", err)
	}
	cron.RecordTableSizes(store.Snapshot())
	return store, src, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP quote service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()

			store, src, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer src.Close()

			addr := ":" + cfg.Port
			log.Printf("freightquote listening on %s (source=%s)", addr, cfg.Driver)
			return http.ListenAndServe(addr, api.NewMux(store, src))
		},
	}
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the periodic reference-data reload worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()

			store, src, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer src.Close()

			return cron.Run(cmd.Context(), store, src, cfg.ReloadInt)
		},
	}
}

func quoteCmd() *cobra.Command {
	var req quote.Request
	var scope, packaging string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a one-off quote and print the itemized breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()

			store, src, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer src.Close()

			req.Scope = refdata.Scope(scope)
			req.Packaging = quote.Packaging(packaging)

			svc := quote.NewService(store)
			resp, err := svc.Quote(cmd.Context(), req, svc.Params())
			if err != nil {
				return err
			}

			printResult(cmd, "DHL Freight", resp.Parcel)
			printResult(cmd, "Raben", resp.LTL)
			if resp.Cheaper != "" {
				cmd.Printf("cheaper: %s\n", resp.Cheaper)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "DE", "shipment scope: DE or EU")
	cmd.Flags().StringVar(&req.Country, "country", "Deutschland", "destination country")
	cmd.Flags().StringVar(&req.PostalCode, "plz", "", "destination postal code")
	cmd.Flags().Float64Var(&req.WeightKg, "weight", 0, "actual weight in kg")
	cmd.Flags().Float64Var(&req.VolumeM3, "cbm", 0, "volume in cubic meters")
	cmd.Flags().Float64Var(&req.LoadingMeters, "ldm", 0, "loading meters")
	cmd.Flags().StringVar(&packaging, "packaging", "Europalette", "packaging type")
	cmd.Flags().BoolVar(&req.ADR, "adr", false, "hazardous goods")
	cmd.Flags().BoolVar(&req.Avis, "avis", false, "appointment delivery")
	cmd.Flags().Float64Var(&req.InsuranceValue, "insurance", 0, "insurance value in EUR")
	_ = cmd.MarkFlagRequired("plz")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

func printResult(cmd *cobra.Command, name string, res quote.Result) {
	cmd.Printf("%s:\n", name)
	if !res.OK() {
		cmd.Printf("  %s: %s\n", res.Failure.Reason, res.Failure.Detail)
		return
	}
	q := res.Quote
	cmd.Printf("  zone %d", q.Zone)
	if q.ChargeableKg > 0 {
		cmd.Printf(", chargeable %.2f kg", q.ChargeableKg)
	}
	cmd.Printf("\n  base      %8.2f %s\n", q.Base, q.Currency)
	for _, s := range q.Surcharges {
		cmd.Printf("  %-9s %8.2f %s\n", s.Name, s.Amount, q.Currency)
	}
	cmd.Printf("  total     %8.2f %s\n", q.Total, q.Currency)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Run database migrations for the DB-backed reference sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			driver := cfg.Driver
			if driver == "csv" || driver == "memory" {
				driver = os.Getenv("FREIGHTQUOTE_MIGRATE_DRIVER")
				if driver == "" {
					driver = "sqlite"
				}
			}

			switch args[0] {
			case "up":
				return migrate.Up(cmd.Context(), driver, cfg.DSN)
			case "down":
				return migrate.Down(cmd.Context(), driver, cfg.DSN)
			case "status":
				return migrate.Status(cmd.Context(), driver, cfg.DSN)
			default:
				return fmt.Errorf("unknown migrate action %q", args[0])
			}
		},
	}
	return cmd
}
