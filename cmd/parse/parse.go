// Package parse provides the command that turns expense text into transactions
package parse

import (
	"fmt"
	"time"

	"kharcha/expense-nlp/cmd/common"
	"kharcha/expense-nlp/cmd/root"
	csvio "kharcha/expense-nlp/internal/common"
	"kharcha/expense-nlp/internal/dateutils"
	"kharcha/expense-nlp/internal/models"

	"github.com/spf13/cobra"
)

var (
	asJSON  bool
	csvFile string
	date    string
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Parse free-text expenses into transactions",
	Long: `Parse free-text expense statements into categorized transactions.
Statements are separated by commas. With no argument, or "-", the text is
read from standard input, one statement per line.`,
	Example: `  kharcha parse "500 for petrol, got back 400 from sonu"
  kharcha parse --json "Chicken, Rs.200, Grocery"
  kharcha parse --csv today.csv < notes.txt`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	Cmd.Flags().StringVar(&csvFile, "csv", "", "Also write the transactions to this CSV file")
	Cmd.Flags().StringVar(&date, "date", "", "Date recorded in the CSV file (default today)")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	text, err := common.InputText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	svc := c.GetService()

	strategy := svc.Strategy()
	if s := root.SharedFlags.Strategy; s != "" {
		if strategy, err = models.ParseStrategy(s); err != nil {
			return err
		}
	}

	out := svc.Parse(common.Context(cmd), text, strategy)

	if csvFile != "" && len(out.Expenses) > 0 {
		day := dateutils.ToISODate(time.Now())
		if date != "" {
			t, _, err := dateutils.ParseDate(date)
			if err != nil {
				return err
			}
			day = dateutils.ToISODate(t)
		}
		if err := csvio.WriteTransactionsToCSV(out.Expenses, csvFile, day, c.GetLogger()); err != nil {
			return err
		}
	}

	if asJSON {
		return common.PrintJSON(cmd.OutOrStdout(), out.ParseResult)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Reply)
	return err
}
