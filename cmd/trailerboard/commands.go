package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/creamcroissant/trailerboard/internal/bootstrap"
	"github.com/creamcroissant/trailerboard/internal/config"
	"github.com/creamcroissant/trailerboard/internal/migrations"
	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/support/logging"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

func init() {
	// Migrate
	var migrateCmd = &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Database migration management",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := bootstrap.OpenSQLite(ctx, cfg.DB, logging.Discard())
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Using DB path: %s\n", cfg.DB.Path)

			action := "up"
			if len(args) > 0 {
				action = args[0]
			}
			switch action {
			case "up":
				return migrations.Up(ctx, db)
			case "down":
				return migrations.Down(ctx, db)
			case "status":
				return migrations.Status(ctx, db)
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
		},
	}
	rootCmd.AddCommand(migrateCmd)

	// Backup
	var backupOutput string
	var backupCompress bool
	var backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Backup database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			target := backupOutput
			if target == "" {
				backupDir := filepath.Join(filepath.Dir(cfg.DB.Path), "backups")
				if err := os.MkdirAll(backupDir, 0o755); err != nil {
					return fmt.Errorf("create backup dir: %w", err)
				}
				ext := ".db"
				if backupCompress {
					ext += ".gz"
				}
				target = filepath.Join(backupDir, fmt.Sprintf("trailerboard_%s%s", time.Now().Format("20060102_150405"), ext))
			}
			return runBackup(cmd.Context(), cmd.OutOrStdout(), cfg, target, backupCompress)
		},
	}
	backupCmd.Flags().StringVar(&backupOutput, "output", "", "Output file path")
	backupCmd.Flags().BoolVar(&backupCompress, "compress", false, "Compress output with gzip")
	rootCmd.AddCommand(backupCmd)

	// Orders
	var ordersCmd = &cobra.Command{
		Use:   "orders",
		Short: "Order board commands",
	}
	var listStatus, listFormat string
	var listSort []string
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the order board",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()

			board, err := a.services.Board.List(cmd.Context(), service.OrderListInput{
				Status: listStatus,
				Sort:   parseSortFlags(listSort),
			})
			if err != nil {
				return err
			}
			if board.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: orders could not be loaded")
			}
			return writeOrders(cmd.OutOrStdout(), listFormat, board.Orders)
		},
	}
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show orders with this status")
	listCmd.Flags().StringArrayVar(&listSort, "sort", nil, "Sort criterion column[:asc|desc], repeatable")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json or yaml")
	ordersCmd.AddCommand(listCmd)

	ordersCmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Print order counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()
			summary, err := a.services.Board.RefreshSummary(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tCOUNT")
			for _, bucket := range summary.Counts {
				fmt.Fprintf(w, "%s\t%d\n", bucket.Label, bucket.Count)
			}
			fmt.Fprintf(w, "TOTAL\t%d\n", summary.Total)
			return w.Flush()
		},
	})
	rootCmd.AddCommand(ordersCmd)

	// Classify
	var classifyMarker, classifyShipment, classifyBuild, classifyFinalized string
	var classifyCmd = &cobra.Command{
		Use:   "classify",
		Short: "Show which status an order with these fields would get",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := classifyRecord(classifyShipment, classifyMarker, classifyBuild, classifyFinalized)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(orderstatus.Annotate(record))
		},
	}
	classifyCmd.Flags().StringVar(&classifyMarker, "marker", "", "Sequence marker text")
	classifyCmd.Flags().StringVar(&classifyShipment, "shipment", "", "Shipment id")
	classifyCmd.Flags().StringVar(&classifyBuild, "build-date", "", "Build date (YYYY-MM-DD)")
	classifyCmd.Flags().StringVar(&classifyFinalized, "finalized-date", "", "Finalized date (YYYY-MM-DD)")
	rootCmd.AddCommand(classifyCmd)

	// Jobs
	var jobCmd = &cobra.Command{
		Use:   "job",
		Short: "Background job management",
	}
	jobCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List background jobs",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), statusSnapshotJobName)
			fmt.Fprintln(cmd.OutOrStdout(), buildDigestJobName)
		},
	})
	jobCmd.AddCommand(&cobra.Command{
		Use:   "run <name>",
		Short: "Run a background job once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close()
			scheduler, err := buildScheduler(a, nil)
			if err != nil {
				return err
			}
			if err := scheduler.RunNow(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s completed\n", args[0])
			return nil
		},
	})
	rootCmd.AddCommand(jobCmd)

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trailerboard %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

// parseSortFlags folds repeated --sort values into a single-column state.
// A bare column toggles it like a header click; "col:dir" sets it outright.
func parseSortFlags(values []string) tablesort.State {
	state := tablesort.State{}
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, ":") {
			state = tablesort.Toggle(raw, state)
			continue
		}
		state = tablesort.ParseState(raw)
	}
	return state
}

func classifyRecord(shipment, marker, build, finalized string) (orderstatus.Record, error) {
	var record orderstatus.Record
	if s := strings.TrimSpace(shipment); s != "" {
		record.ShipmentID = &s
	}
	if m := strings.TrimSpace(marker); m != "" {
		record.SequenceMarker = &m
	}
	var err error
	if record.BuildDate, err = parseFlagDate("build-date", build); err != nil {
		return record, err
	}
	if record.FinalizedDate, err = parseFlagDate("finalized-date", finalized); err != nil {
		return record, err
	}
	return record, nil
}

func parseFlagDate(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(repository.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: expected YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}

// orderRow is the flat shape printed by `orders list`.
type orderRow struct {
	OrderNumber   string `json:"order_number" yaml:"order_number"`
	Dealer        string `json:"dealer" yaml:"dealer"`
	Model         string `json:"model" yaml:"model"`
	Customer      string `json:"customer" yaml:"customer"`
	BuildDate     string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	FinalizedDate string `json:"finalized_date,omitempty" yaml:"finalized_date,omitempty"`
	Status        string `json:"status" yaml:"status"`
	SubStage      string `json:"sub_stage,omitempty" yaml:"sub_stage,omitempty"`
	Rule          string `json:"rule" yaml:"rule"`
}

func writeOrders(w io.Writer, format string, orders []service.OrderView) error {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			OrderNumber:   o.OrderNumber,
			Dealer:        o.DealerID,
			Model:         o.Model,
			Customer:      o.Customer,
			BuildDate:     o.BuildDate,
			FinalizedDate: o.FinalizedDate,
			Status:        o.Status.Status.String(),
			SubStage:      o.Status.SubStage,
			Rule:          o.Status.Rule,
		})
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ORDER\tDEALER\tMODEL\tCUSTOMER\tBUILD\tFINALIZED\tSTATUS")
		for _, r := range rows {
			status := r.Status
			if r.SubStage != "" {
				status += " (" + r.SubStage + ")"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.OrderNumber, r.Dealer, r.Model, r.Customer, dash(r.BuildDate), dash(r.FinalizedDate), status)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func runBackup(ctx context.Context, out io.Writer, cfg *config.Config, target string, compress bool) error {
	db, err := bootstrap.OpenSQLite(ctx, cfg.DB, logging.Discard())
	if err != nil {
		return err
	}
	defer db.Close()

	tempFile := target
	if compress {
		if strings.HasSuffix(target, ".gz") {
			tempFile = strings.TrimSuffix(target, ".gz")
		} else {
			tempFile = target + ".tmp"
		}
	}

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", tempFile); err != nil {
		return fmt.Errorf("sqlite vacuum into: %w", err)
	}

	if compress {
		defer os.Remove(tempFile)
		if err := compressFile(tempFile, target); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Backup created at %s\n", target)
	return nil
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		return err
	}
	return gw.Close()
}
