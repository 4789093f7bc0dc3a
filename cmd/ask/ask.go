// Package ask answers questions about recorded expenses
package ask

import (
	"fmt"
	"strings"

	"kharcha/expense-nlp/cmd/common"
	"kharcha/expense-nlp/cmd/root"
	csvio "kharcha/expense-nlp/internal/common"
	"kharcha/expense-nlp/internal/nlp"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	userName  string
	userEmail string
	groupName string
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about recorded expenses",
	Long: `Ask a question about the expenses in a CSV file, such as a file written
by "kharcha parse --csv". Records are expected newest first. With --group the
records are treated as the named group's expenses.`,
	Example: `  kharcha ask --file expenses.csv "how much did I spend on momo?"
  kharcha ask --file flat.csv --group Flat "who paid for groceries?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: askFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "CSV file with recorded expenses")
	Cmd.Flags().StringVarP(&userName, "name", "n", "", "Name used to greet you")
	Cmd.Flags().StringVar(&userEmail, "email", "", "Email used to greet you when no name is given")
	Cmd.Flags().StringVarP(&groupName, "group", "g", "", "Treat the file as this group's expenses")
	_ = Cmd.MarkFlagRequired("file")
}

func askFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	records, err := csvio.ReadRecords(inputFile, c.GetLogger())
	if err != nil {
		return err
	}

	req := nlp.ChatRequest{
		Text:      strings.Join(args, " "),
		UserName:  userName,
		UserEmail: userEmail,
	}
	if groupName != "" {
		req.GroupName = groupName
		req.GroupExpensesData = records
	} else {
		req.ExpensesData = records
	}

	resp := c.GetService().Chat(common.Context(cmd), req)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Reply)
	return err
}
