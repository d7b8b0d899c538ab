package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle group debts with as few payments as the greedy matcher finds",
	Long: `settle reads who owes whom from a YAML file and prints the payments
that clear every balance, matching the largest creditor with the largest debtor
until nothing is owed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logging.SetupWithLevel(logging.ParseLevel(level))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}
