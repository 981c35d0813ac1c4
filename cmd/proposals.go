package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jjenkins/gabinete/internal/service"
	"github.com/jjenkins/gabinete/internal/store"
)

var (
	proposalType  string
	proposalYear  int
	proposalItems int
	proposalPage  int
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Print one enriched page of the deputy's bills",
	Long: `Proposals runs the bill aggregation pipeline once and prints the page as JSON.
It is useful for checking upstream connectivity without starting the server.

Examples:
  # Current year's PLs
  ./gabinete proposals

  # Second page of 2023 PECs, 5 per page
  ./gabinete proposals --type PEC --year 2023 --items 5 --page 2`,
	Run: runProposals,
}

func init() {
	rootCmd.AddCommand(proposalsCmd)

	proposalsCmd.Flags().StringVarP(&proposalType, "type", "t", "", "Bill type code (default PL)")
	proposalsCmd.Flags().IntVarP(&proposalYear, "year", "y", 0, "Filing year (default current year)")
	proposalsCmd.Flags().IntVar(&proposalItems, "items", 0, "Bills per page (default 10)")
	proposalsCmd.Flags().IntVar(&proposalPage, "page", 0, "Page number (default 1)")
}

func runProposals(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	p := newPipelines(cfg, store.NewNoteStore(db), prometheus.NewRegistry(), newLogger())

	page, err := p.proposals.List(ctx, service.ProposalQuery{
		Type:  proposalType,
		Year:  proposalYear,
		Items: proposalItems,
		Page:  proposalPage,
	})
	if err != nil {
		log.Fatalf("Failed to aggregate proposals: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}
