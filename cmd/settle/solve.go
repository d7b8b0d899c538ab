package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/debtfile"
	"github.com/mmynk/settleup/internal/settlement"
)

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Print the payments that settle a problem file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runSolve(cmd.OutOrStdout(), args[0], asJSON)
	},
}

func init() {
	solveCmd.Flags().Bool("json", false, "Print the result as JSON")
	rootCmd.AddCommand(solveCmd)
}

type solveOutput struct {
	Balances  []balanceOutput  `json:"balances"`
	Transfers []transferOutput `json:"transfers"`
}

type balanceOutput struct {
	Participant int    `json:"participant"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
}

type transferOutput struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func runSolve(w io.Writer, path string, asJSON bool) error {
	problem, err := debtfile.Load(path)
	if err != nil {
		return err
	}

	txs, err := settlement.Settle(problem.Participants, problem.Edges)
	if err != nil {
		return fmt.Errorf("failed to settle: %w", err)
	}

	summary := settlement.Summarize(problem.Participants, problem.Edges, txs)
	slog.Info("Settled problem",
		"file", path,
		"participants", summary.Participants,
		"edges", summary.Edges,
		"transfers", summary.Transactions,
	)

	out := solveOutput{Transfers: make([]transferOutput, len(txs))}
	for i, b := range settlement.Balances(problem.Participants, problem.Edges) {
		out.Balances = append(out.Balances, balanceOutput{Participant: i + 1, Name: problem.Name(i + 1), Amount: b})
	}
	for i, tx := range txs {
		out.Transfers[i] = transferOutput{From: problem.Name(tx.From), To: problem.Name(tx.To), Amount: tx.Amount}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tBALANCE")
	for _, b := range out.Balances {
		fmt.Fprintf(tw, "%s\t%+d\n", b.Name, b.Amount)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FROM\tTO\tAMOUNT")
	for _, t := range out.Transfers {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", t.From, t.To, t.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d payments settle %d debts (volume %d -> %d)\n",
		summary.Transactions, summary.Edges, summary.DebtVolume, summary.SettledVolume)
	return nil
}
