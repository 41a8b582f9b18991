package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var expirationsCmd = &cobra.Command{
	Use:   "expirations <underlying>",
	Short: "List option expiration dates for an underlying symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpirations,
}

var quotesCmd = &cobra.Command{
	Use:   "quotes <underlying> <expiration>",
	Short: "List priced option quotes for an underlying and expiration",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuotes,
}

func init() {
	rootCmd.AddCommand(expirationsCmd)
	rootCmd.AddCommand(quotesCmd)
}

func runExpirations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	dates, err := client.Expirations(cmd.Context(), strings.ToUpper(args[0]))
	if err != nil {
		return err
	}

	for _, d := range dates {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	return nil
}

func runQuotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	quotes, err := client.OptionQuotes(cmd.Context(), strings.ToUpper(args[0]), args[1])
	if err != nil {
		return err
	}

	for _, q := range quotes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s - %.2f\n", q.Asset.Symbol, q.Price)
	}
	return nil
}
