// Package categorize handles item categorization commands
package categorize

import (
	"fmt"
	"path/filepath"
	"strings"

	"kharcha/expense-nlp/cmd/root"
	"kharcha/expense-nlp/internal/categorizer"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/store"

	"github.com/spf13/cobra"
)

var exportDir string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description]",
	Short: "Categorize an item description",
	Long: `Categorize an item description with the keyword tables, after slang
normalization. With --export-tables, write the active category and slang
tables as YAML files that can be edited and loaded back through the
data.categories_file and data.slang_file settings.`,
	Example: `  kharcha categorize "chiya and samosa"
  kharcha categorize --export-tables ./config`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVar(&exportDir, "export-tables", "", "Directory to write categories.yaml and slang.yaml to")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	if exportDir != "" {
		return exportTables(cmd, exportDir)
	}

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return fmt.Errorf("a description is required")
	}

	normalized := c.GetNormalizer().Normalize(description)
	category := c.GetCategorizer().Categorize(strings.ToLower(normalized))
	root.Log.Debug("Categorize command called",
		logging.Field{Key: logging.FieldFragment, Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldStrategies, Value: c.GetCategorizer().StrategyNames()})

	_, err := fmt.Fprintln(cmd.OutOrStdout(), category)
	return err
}

func exportTables(cmd *cobra.Command, dir string) error {
	c := root.GetContainer()
	s := c.GetStore()

	table, err := s.LoadCategories()
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if len(table) == 0 {
		table = categorizer.DefaultPrimaryCategories
	}

	categories := filepath.Join(dir, store.DefaultCategoriesFile)
	if err := s.SaveCategories(categories, table); err != nil {
		return fmt.Errorf("failed to export categories: %w", err)
	}
	slang := filepath.Join(dir, store.DefaultSlangFile)
	if err := s.SaveSlang(slang, c.GetNormalizer().Table()); err != nil {
		return fmt.Errorf("failed to export slang table: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", categories, slang)
	return err
}
