package parse_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kharcha/expense-nlp/cmd/parse"
	"kharcha/expense-nlp/cmd/root"
	"kharcha/expense-nlp/internal/config"
	"kharcha/expense-nlp/internal/container"
	"kharcha/expense-nlp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installContainer(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Parser.CurrencySymbol = "Rs."
	cfg.Data.CategoriesFile = "missing-categories.yaml"
	cfg.Data.SlangFile = "missing-slang.yaml"

	c, err := container.NewContainer(cfg)
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() { root.SetContainer(nil) })
}

func run(t *testing.T, stdin string, flags map[string]string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	parse.Cmd.SetOut(&out)
	parse.Cmd.SetIn(strings.NewReader(stdin))
	for k, v := range flags {
		require.NoError(t, parse.Cmd.Flags().Set(k, v))
	}
	t.Cleanup(func() {
		parse.Cmd.SetOut(nil)
		parse.Cmd.SetIn(nil)
		for k := range flags {
			f := parse.Cmd.Flags().Lookup(k)
			_ = f.Value.Set(f.DefValue)
		}
	})
	err := parse.Cmd.RunE(parse.Cmd, args)
	return out.String(), err
}

func TestParseCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parse [text]", parse.Cmd.Use)
	for _, name := range []string{"json", "csv", "date"} {
		assert.NotNil(t, parse.Cmd.Flags().Lookup(name), name)
	}
}

func TestParseCommand_Reply(t *testing.T) {
	installContainer(t)

	out, err := run(t, "", nil, "500 for petrol, 200 on biryani")
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS: Added Rs.500 -> Transport (Petrol)\nSUCCESS: Added Rs.200 -> Food (Biryani)\n", out)

	out, err = run(t, "nothing here\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "ERROR: No expenses found. Try: '500 on biryani, 400 on grocery'\n", out)
}

func TestParseCommand_JSON(t *testing.T) {
	installContainer(t)

	out, err := run(t, "gave sonu 400 for a week\n", map[string]string{"json": "true"}, "-")
	require.NoError(t, err)

	var res models.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Expenses, 1)
	assert.Equal(t, int64(400), res.Expenses[0].Amount)
	assert.Equal(t, "Loan", res.Expenses[0].Category)
	assert.Equal(t, "Loan given to Sonu for a week", res.Expenses[0].Remarks)
}

func TestParseCommand_CSV(t *testing.T) {
	installContainer(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := run(t, "", map[string]string{"csv": path, "date": "03.05.2024"}, "Chicken, Rs.200, Grocery")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "200,chicken,Grocery,Chicken,,2024-05-03,")
}

func TestParseCommand_Errors(t *testing.T) {
	installContainer(t)

	_, err := run(t, "", nil)
	assert.Error(t, err)

	_, err = run(t, "", map[string]string{"csv": filepath.Join(t.TempDir(), "x.csv"), "date": "someday"}, "500 for petrol")
	assert.Error(t, err)

	root.SharedFlags.Strategy = "guess"
	t.Cleanup(func() { root.SharedFlags.Strategy = "" })
	_, err = run(t, "", nil, "500 for petrol")
	assert.Error(t, err)
}
