package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"optiondesk/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the submitted-ticket journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list <account-id>",
	Short: "List tickets submitted against an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalList,
}

var journalTicketCmd = &cobra.Command{
	Use:   "ticket <ticket-id>",
	Short: "Show one submitted ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTicket,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalTicketCmd)
}

func openJournal() (*journal.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Journal.DBPath == "" {
		return nil, fmt.Errorf("no journal database configured")
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	tickets, err := j.TicketsByAccount(args[0])
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tickets")
		return nil
	}

	for _, t := range tickets {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d leg(s)  cash %.2f -> %.2f\n",
			t.ID, t.SubmittedAt.Format("2006-01-02 15:04:05"), len(t.Legs), t.CashBefore, t.CashAfter)
	}
	return nil
}

func runJournalTicket(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.GetTicket(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ticket %s\n", t.ID)
	fmt.Fprintf(out, "account %s submitted %s\n", t.AccountID, t.SubmittedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "cash %.2f -> %.2f  margin %.2f -> %.2f\n",
		t.CashBefore, t.CashAfter, t.MarginBefore, t.MarginAfter)
	for i, leg := range t.Legs {
		fmt.Fprintf(out, "  leg %d: %s %s %s\n", i, leg.Quantity, strings.ToLower(leg.Side), leg.Symbol)
	}
	return nil
}
