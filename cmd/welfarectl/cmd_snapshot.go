package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yonghwan1106/e-ansimcare/internal/app"
	"github.com/yonghwan1106/e-ansimcare/internal/client"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/export"
	"github.com/yonghwan1106/e-ansimcare/internal/matching"
	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

var (
	generateOut  string
	generateSeed uint64

	exportOut  string
	exportFull bool

	recommendLimit  int
	recommendServer string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a snapshot and write it as JSON",
	Long: `Generates a synthetic snapshot from the generator settings in the config
and writes it to --out. Point SNAPSHOT_PATH at the file to serve it.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the snapshot to an Excel workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <household-id>",
	Short: "Score welfare programs for a household",
	Long: `Prints the best welfare programs for one household with the reasons
behind each score.

Examples:
  welfarectl recommend HH-0001
  welfarectl recommend HH-0001 --limit 5 --server http://localhost:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "data/snapshot.json", "Output file")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Override the configured seed")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "e-ansimcare.xlsx", "Output workbook")
	exportCmd.Flags().BoolVar(&exportFull, "all", false, "Include volunteer and activity sheets")

	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "Number of programs (0 uses the rule default)")
	recommendCmd.Flags().StringVar(&recommendServer, "server", "", "Ask a running API server instead of scoring locally")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c := *cfg
	c.SnapshotPath = ""
	if generateSeed != 0 {
		c.Generator.Seed = generateSeed
	}
	snap, err := app.LoadSnapshot(&c, logger)
	if err != nil {
		return err
	}
	if err := storage.SaveSnapshotToFile(generateOut, snap); err != nil {
		return err
	}
	m := snap.Meta()
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s (seed %d) written to %s\n", m.ID, m.Seed, generateOut)
	fmt.Fprintf(cmd.OutOrStdout(), "  households %d, volunteers %d, activities %d, alerts %d\n",
		len(snap.Households()), len(snap.Volunteers()), len(snap.Activities()), len(snap.Alerts()))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	snap, err := app.LoadSnapshot(cfg, logger)
	if err != nil {
		return err
	}
	sheets := []export.Sheet{export.HouseholdSheet(snap.Households())}
	if exportFull {
		sheets = export.SnapshotSheets(snap)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	if err := export.Write(f, sheets...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d sheet(s) written to %s\n", len(sheets), exportOut)
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	id := args[0]
	var recs []domain.Recommendation
	if recommendServer != "" {
		var err error
		recs, err = client.New(recommendServer, client.Options{Timeout: timeout, Logger: logger}).
			Recommendations(ctx, id, recommendLimit)
		if err != nil {
			return err
		}
	} else {
		snap, err := app.LoadSnapshot(cfg, logger)
		if err != nil {
			return err
		}
		h, ok := snap.Household(id)
		if !ok {
			return fmt.Errorf("household %s not found", id)
		}
		engine := matching.NewEngine(app.LoadRules(cfg.RulesPath, logger))
		recs = engine.Recommend(h, snap.Programs(), recommendLimit)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tPROGRAM\tNAME\tREASONS")
	for _, r := range recs {
		reasons := ""
		for i, rs := range r.Reasons {
			if i > 0 {
				reasons += "; "
			}
			reasons += rs.Message
		}
		fmt.Fprintf(tw, "%.0f\t%s\t%s\t%s\n", r.Score, r.Program.ID, r.Program.Name, reasons)
	}
	return tw.Flush()
}
