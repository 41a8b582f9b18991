package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"optiondesk/broker"
	"optiondesk/desk"
	"optiondesk/journal"
	"optiondesk/order"
	"optiondesk/session"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Build and submit a multi-leg order interactively",
	Long: `Build a multi-leg options order against the active session. Every edit
re-simulates the ticket so the preview tracks what you type.

Commands inside the ticket prompt:
  add <qty> <side> <symbol>   append a leg (side e.g. buy_to_open)
  rm <n>                      remove leg n
  qty <n> <value>             change leg n's quantity
  side <n> <value>            change leg n's side
  legs                        list current legs
  submit                      commit the ticket
  quit                        leave without submitting`,
	Args: cobra.NoArgs,
	RunE: runTicket,
}

func init() {
	rootCmd.AddCommand(ticketCmd)
}

func runTicket(cmd *cobra.Command, args []string) error {
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
	view := newTermView(cmd.OutOrStdout())
	d := desk.New(resolver, client, view, log)

	if cfg.Journal.Enabled {
		jnl, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jnl.Close()
		d.SetJournal(jnl)
	}

	ctx := cmd.Context()
	if err := d.Open(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "ticket> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "add":
			if len(fields) != 4 {
				fmt.Fprintln(out, "usage: add <qty> <side> <symbol>")
				continue
			}
			d.AddLeg(ctx, order.Leg{
				Quantity: fields[1],
				Side:     fields[2],
				Symbol:   strings.ToUpper(fields[3]),
			})
		case "rm":
			i, ok := legIndex(out, d, fields)
			if !ok {
				continue
			}
			d.RemoveLeg(ctx, i)
		case "qty":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: qty <n> <value>")
				continue
			}
			i, ok := legIndex(out, d, fields[:2])
			if !ok {
				continue
			}
			d.SetQuantity(ctx, i, fields[2])
		case "side":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: side <n> <value>")
				continue
			}
			i, ok := legIndex(out, d, fields[:2])
			if !ok {
				continue
			}
			d.SetSide(ctx, i, fields[2])
		case "legs":
			printLegs(out, d.Legs())
		case "submit":
			d.Submit(ctx)
		case "quit", "exit":
			d.Wait()
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q (try: add, rm, qty, side, legs, submit, quit)\n", fields[0])
			continue
		}

		// Let the async preview or refresh land before the next prompt.
		d.Wait()
	}

	d.Wait()
	return scanner.Err()
}

// legIndex parses fields[1] as a leg index and checks it against the
// current ticket.
func legIndex(out io.Writer, d *desk.Desk, fields []string) (int, bool) {
	if len(fields) < 2 {
		fmt.Fprintln(out, "a leg number is required")
		return 0, false
	}
	i, err := strconv.Atoi(fields[1])
	if err != nil || i < 0 || i >= len(d.Legs()) {
		fmt.Fprintf(out, "no leg %s\n", fields[1])
		return 0, false
	}
	return i, true
}

func printLegs(out io.Writer, legs []order.Leg) {
	if len(legs) == 0 {
		fmt.Fprintln(out, "no legs")
		return
	}
	for i, leg := range legs {
		fmt.Fprintf(out, "%d: %s %s %s\n", i, leg.Quantity, leg.Side, leg.Symbol)
	}
}

// termView renders desk state to the terminal. It is the mechanical view
// glue; all decisions live in the desk.
type termView struct {
	mu  sync.Mutex
	out io.Writer
}

func newTermView(out io.Writer) *termView {
	return &termView{out: out}
}

func (v *termView) ShowAccount(acct broker.Account, opened bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if opened {
		fmt.Fprintf(v.out, "opened a new account; keep this id to come back to it: %s\n", acct.ID)
	}
	fmt.Fprintf(v.out, "account %s  cash %.2f  margin %.2f\n", acct.ID, acct.Cash, acct.Margin())
	for _, p := range acct.Positions {
		fmt.Fprintf(v.out, "  %-24s qty %g  basis %.2f  last %.2f\n",
			p.Asset.Symbol, p.Quantity, p.CostBasis, p.Quote.Price)
	}
}

func (v *termView) ShowPreview(impact broker.OrderImpact) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "preview  cash %.2f -> %.2f  margin %.2f -> %.2f\n",
		impact.Before.Cash, impact.After.Cash,
		impact.Before.Margin(), impact.After.Margin())
}

func (v *termView) ShowError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "error: %v\n", err)
	if broker.IsNetwork(err) {
		fmt.Fprintln(v.out, "the service looks unreachable; the next action will retry")
	}
}
