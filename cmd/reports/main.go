// Command reports prints operational reports to stdout for anyone who does
// not want to click through the storefront admin: profit and loss, daily
// cash flow, inventory snapshot and the current insight recommendations.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	auditStore "github.com/mfontes/ohm/internal/audit/store"
	"github.com/mfontes/ohm/internal/catalog"
	catalogStore "github.com/mfontes/ohm/internal/catalog/store"
	"github.com/mfontes/ohm/internal/config"
	"github.com/mfontes/ohm/internal/database"
	"github.com/mfontes/ohm/internal/finance"
	financeStore "github.com/mfontes/ohm/internal/finance/store"
	"github.com/mfontes/ohm/internal/insight"
)

var days int

var rootCmd = &cobra.Command{
	Use:   "reports",
	Short: "Ohm operational reports",
	Long:  "Reads the catalog and ledger and prints analytics reports to stdout.",
}

func main() {
	rootCmd.PersistentFlags().IntVar(&days, "days", 30, "report window in days")

	rootCmd.AddCommand(pnlCmd, cashflowCmd, snapshotCmd, insightsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func connect() (*sql.DB, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, cfg, nil
}

func euros(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

var pnlCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Profit and loss over the report window",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := finance.NewService(financeStore.New(db))

		pnl, err := svc.ComputePnL(context.Background(), days)
		if err != nil {
			return err
		}

		fmt.Printf("Revenue:    %s\n", euros(pnl.Revenue))
		fmt.Printf("Expenses:   %s\n", euros(pnl.Expenses))
		fmt.Printf("Net profit: %s\n\n", euros(pnl.NetProfit))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNET")

		for _, ct := range pnl.ByCategory {
			fmt.Fprintf(w, "%s\t%s\n", ct.Category, euros(ct.Amount))
		}

		return w.Flush()
	},
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Daily inflow/outflow over the report window",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := finance.NewService(financeStore.New(db))

		flows, err := svc.CashFlow(context.Background(), days)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tINFLOW\tOUTFLOW")

		for _, f := range flows {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Date, euros(f.Inflow), euros(f.Outflow))
		}

		return w.Flush()
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inventory capital snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := catalog.NewService(catalogStore.New(db), cfg.Catalog.DefaultLowStockAt)

		snap, err := svc.TakeSnapshot(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Taken at:      %s\n", snap.TakenAt.Format("2006-01-02 15:04"))
		fmt.Printf("Total capital: %s\n", euros(snap.TotalCapital))
		fmt.Printf("Total items:   %d\n\n", snap.TotalItems)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tCAPITAL\tQUANTITY")

		for kind, rollup := range snap.ByKind {
			fmt.Fprintf(w, "%s\t%s\t%d\n", kind, euros(rollup.Capital), rollup.Quantity)
		}

		return w.Flush()
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Current operational recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := insight.NewService(catalogStore.New(db), auditStore.New(db), insight.Config{
			CandidatePool: cfg.Analytics.CandidatePool,
		})

		recs, err := svc.Recommendations(context.Background())
		if err != nil {
			return err
		}

		if len(recs) == 0 {
			fmt.Println("Nothing to report.")
			return nil
		}

		for _, rec := range recs {
			fmt.Printf("[%s] %s (confidence %.2f)\n", rec.Kind, rec.Title, rec.Confidence)
			fmt.Printf("    %s\n", rec.Description)
			fmt.Printf("    -> %s\n", rec.Action)
		}

		return nil
	},
}
