package main

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yonghwan1106/e-ansimcare/internal/app"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

var (
	runsLimit int

	hhRisk   string
	hhSearch string
	hhSido   string
	hhMin    int
	hhLimit  int
	hhOffset int
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage snapshots stored in the database",
	Long: `Stores snapshots in the configured database (sqlite3 or pgx) and queries them.

Available subcommands:
  save        - Store the current snapshot as a run
  runs        - List stored runs, newest first
  households  - Query the households of a run
  delete      - Remove a run and its rows`,
}

var dbSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store the current snapshot",
	Args:  cobra.NoArgs,
	RunE:  runDBSave,
}

var dbRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	Args:  cobra.NoArgs,
	RunE:  runDBRuns,
}

var dbHouseholdsCmd = &cobra.Command{
	Use:   "households [run-id]",
	Short: "Query stored households (latest run by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDBHouseholds,
}

var dbDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBDelete,
}

func init() {
	dbRunsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list (0 for all)")

	dbHouseholdsCmd.Flags().StringVar(&hhRisk, "risk", "", "Risk level: critical, high, medium or low")
	dbHouseholdsCmd.Flags().StringVar(&hhSearch, "search", "", "Match id, sigungu or dong")
	dbHouseholdsCmd.Flags().StringVar(&hhSido, "sido", "", "Province")
	dbHouseholdsCmd.Flags().IntVar(&hhMin, "min-risk", 0, "Minimum risk score")
	dbHouseholdsCmd.Flags().IntVar(&hhLimit, "limit", 20, "Page size")
	dbHouseholdsCmd.Flags().IntVar(&hhOffset, "offset", 0, "Page offset")

	dbCmd.AddCommand(dbSaveCmd)
	dbCmd.AddCommand(dbRunsCmd)
	dbCmd.AddCommand(dbHouseholdsCmd)
	dbCmd.AddCommand(dbDeleteCmd)
}

// withStore opens the configured database whether or not the server has it enabled.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *storage.SnapshotStore) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	s, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func runDBSave(cmd *cobra.Command, args []string) error {
	snap, err := app.LoadSnapshot(cfg, logger)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s *storage.SnapshotStore) error {
		if _, ok, err := s.GetRun(ctx, snap.Meta().ID.String()); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("run %s is already stored", snap.Meta().ID)
		}
		run, err := s.SaveSnapshot(ctx, snap)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored run %s (%d households)\n", run.ID, run.Households)
		return nil
	})
}

func runDBRuns(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *storage.SnapshotStore) error {
		runs, err := s.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tSEED\tGENERATED\tSAVED\tHOUSEHOLDS\tVOLUNTEERS\tACTIVITIES")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.Seed,
				r.GeneratedAt.Format("2006-01-02 15:04"), r.SavedAt.Format("2006-01-02 15:04"),
				r.Households, r.Volunteers, r.Activities)
		}
		return tw.Flush()
	})
}

func runDBHouseholds(cmd *cobra.Command, args []string) error {
	if hhRisk != "" && !slices.Contains(domain.RiskLevels, domain.RiskLevel(hhRisk)) {
		return fmt.Errorf("invalid risk level %q", hhRisk)
	}
	return withStore(cmd, func(ctx context.Context, s *storage.SnapshotStore) error {
		runID := ""
		if len(args) == 1 {
			runID = args[0]
		} else {
			run, ok, err := s.LatestRun(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no stored runs")
			}
			runID = run.ID
		}

		hs, total, err := s.ListHouseholds(ctx, storage.HouseholdQuery{
			RunID:     runID,
			Search:    hhSearch,
			RiskLevel: domain.RiskLevel(hhRisk),
			Sido:      hhSido,
			MinRisk:   hhMin,
			Limit:     hhLimit,
			Offset:    hhOffset,
		})
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tRISK\tLEVEL\tSTATUS\tADDRESS")
		for _, h := range hs {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", h.ID, h.RiskScore, h.RiskLevel.Label(), h.Status.Label(), h.Region.Address())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d households in run %s\n", len(hs), total, runID)
		return nil
	})
}

func runDBDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *storage.SnapshotStore) error {
		ok, err := s.DeleteRun(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("run %s not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted run %s\n", args[0])
		return nil
	})
}
