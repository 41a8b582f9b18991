package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optiondesk/session"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect or open the brokerage account behind the session",
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Resolve the session and print the current account snapshot",
	Args:  cobra.NoArgs,
	RunE:  runAccountShow,
}

var accountOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a brand-new account and make it the active session",
	Args:  cobra.NoArgs,
	RunE:  runAccountOpen,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountOpenCmd)
}

func runAccountShow(cmd *cobra.Command, args []string) error {
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

	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	resolver := session.NewResolver(client, store, cfg.Session.LaunchURL, log)
	acct, opened, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	view := newTermView(cmd.OutOrStdout())
	view.ShowAccount(acct, opened)
	return nil
}

func runAccountOpen(cmd *cobra.Command, args []string) error {
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

	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	acct, err := client.OpenAccount(cmd.Context())
	if err != nil {
		return err
	}
	if err := store.Save(acct.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "opened account %s with cash %.2f\n", acct.ID, acct.Cash)
	fmt.Fprintf(cmd.OutOrStdout(), "return to it later with --launch-url \"?accountId=%s\"\n", acct.ID)
	return nil
}
