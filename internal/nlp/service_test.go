package nlp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"kharcha/expense-nlp/internal/ai"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter returns canned completions in order and records prompts.
type scriptedCompleter struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (c *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	out := c.responses[0]
	c.responses = c.responses[1:]
	return out, nil
}

func newTestService(c *scriptedCompleter, strategy models.Strategy) (*Service, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	var completer ai.Completer
	if c != nil {
		completer = c
	}
	return NewService(nil, nil, nil, completer, Options{Strategy: strategy, Symbol: "Rs."}, logger), logger
}

func TestParseExpense_Deterministic(t *testing.T) {
	svc, logger := newTestService(nil, models.StrategyAuto)
	assert.False(t, svc.AIAvailable())

	res := svc.ParseExpense(context.Background(), "500 for petrol, 200 on biryani")
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, models.Transaction{Amount: 500, Item: "petrol", Category: "Transport", Remarks: "Petrol"}, res.Expenses[0])
	assert.Equal(t, "Food", res.Expenses[1].Category)
	assert.Equal(t, "SUCCESS: Added Rs.500 -> Transport (Petrol)\nSUCCESS: Added Rs.200 -> Food (Biryani)", res.Reply)
	assert.True(t, logger.HasEntry("INFO", "Parsed expense text"))
}

func TestParseExpense_Empty(t *testing.T) {
	svc, _ := newTestService(nil, models.StrategyAuto)

	for _, text := range []string{"", "   ", "hello there"} {
		out := svc.Parse(context.Background(), text, models.StrategyAuto)
		assert.NotNil(t, out.Expenses)
		assert.Empty(t, out.Expenses)
		assert.Equal(t, "ERROR: No expenses found. Try: '500 on biryani, 400 on grocery'", out.Reply)
		assert.Equal(t, SourceNone, out.Source)
	}
}

func TestParse_Strategies(t *testing.T) {
	svc, _ := newTestService(nil, models.StrategyAuto)
	ctx := context.Background()
	text := "Chicken, Rs.200, Grocery, Milk, Rs.60, Dairy"

	clauses := svc.Parse(ctx, text, models.StrategyClauses)
	assert.Equal(t, SourceNone, clauses.Source)
	assert.Empty(t, clauses.Expenses)

	segmented := svc.Parse(ctx, text, models.StrategySegmented)
	assert.Equal(t, SourceSegmented, segmented.Source)
	require.Len(t, segmented.Expenses, 2)
	assert.Equal(t, "Grocery", segmented.Expenses[0].Category)
	assert.Equal(t, "chicken", segmented.Expenses[0].Item)

	auto := svc.Parse(ctx, text, models.StrategyAuto)
	assert.Equal(t, SourceSegmented, auto.Source)
	assert.Equal(t, segmented.Expenses, auto.Expenses)

	auto = svc.Parse(ctx, "500 for petrol, 200 on biryani", models.StrategyAuto)
	assert.Equal(t, SourceClauses, auto.Source)

	fallback := svc.Parse(ctx, "500 for petrol", models.StrategySegmented)
	assert.Equal(t, SourceClauses, fallback.Source)
	assert.Len(t, fallback.Expenses, 1)
}

func TestParseExpense_AI(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"```json\n" + `{"expenses":[
		{"amount":500,"item":"Petrol","category":"Transport","remarks":"Petrol","paid_by":null},
		{"amount":12.5,"item":"tea","category":"Food","remarks":"Tea"},
		{"amount":80,"item":"","category":"","remarks":""},
		{"amount":300,"item":"momo","category":"","remarks":"","paid_by":" Sonu "}
	],"reply":""}` + "\n```"}}
	svc, _ := newTestService(c, models.StrategyAuto)
	require.True(t, svc.AIAvailable())

	out := svc.Parse(context.Background(), "petrol 500, tea 12.5, momo 300 sonu", models.StrategyAuto)
	assert.Equal(t, SourceAI, out.Source)
	require.Len(t, out.Expenses, 3)

	assert.Equal(t, models.Transaction{Amount: 500, Item: "petrol", Category: "Transport", Remarks: "Petrol"}, out.Expenses[0])
	assert.Equal(t, models.Transaction{Amount: 80, Item: "item", Category: "Other", Remarks: "Item"}, out.Expenses[1])
	assert.Equal(t, "Food", out.Expenses[2].Category)
	assert.Equal(t, "Momo", out.Expenses[2].Remarks)
	require.NotNil(t, out.Expenses[2].PaidBy)
	assert.Equal(t, "Sonu", *out.Expenses[2].PaidBy)
	assert.Equal(t, "SUCCESS: Added 3 expenses totaling Rs.880", out.Reply)

	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], `"petrol 500, tea 12.5, momo 300 sonu"`)
}

func TestParseExpense_AIReplyKept(t *testing.T) {
	c := &scriptedCompleter{responses: []string{`{"expenses":[{"amount":50,"item":"tea","category":"Food","remarks":"Tea"}],"reply":"Added tea."}`}}
	svc, _ := newTestService(c, models.StrategyAuto)

	res := svc.ParseExpense(context.Background(), "tea 50")
	assert.Equal(t, "Added tea.", res.Reply)
}

func TestParseExpense_AIFallback(t *testing.T) {
	tests := []struct {
		name      string
		completer *scriptedCompleter
		message   string
	}{
		{"provider error", &scriptedCompleter{err: errors.New("quota exceeded")}, "AI parse failed, using rules"},
		{"malformed json", &scriptedCompleter{responses: []string{"sorry, I can't"}}, "AI response unusable, using rules"},
		{"missing expenses", &scriptedCompleter{responses: []string{`{"reply":"hi"}`}}, "AI response unusable, using rules"},
		{"nothing usable", &scriptedCompleter{responses: []string{`{"expenses":[{"amount":1.5,"item":"x"}]}`}}, "AI returned no usable expenses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logger := newTestService(tt.completer, models.StrategyAuto)

			out := svc.Parse(context.Background(), "500 for petrol", models.StrategyAuto)
			assert.Equal(t, SourceClauses, out.Source)
			require.Len(t, out.Expenses, 1)
			assert.Equal(t, "Transport", out.Expenses[0].Category)

			level := "WARN"
			if tt.name == "nothing usable" {
				level = "DEBUG"
			}
			assert.True(t, logger.HasEntry(level, tt.message))
		})
	}
}

func TestParse_ClausesSkipsAI(t *testing.T) {
	c := &scriptedCompleter{err: errors.New("should not be called")}
	svc, _ := newTestService(c, models.StrategyClauses)

	res := svc.ParseExpense(context.Background(), "500 for petrol")
	assert.Len(t, res.Expenses, 1)
	assert.Empty(t, c.prompts)
}

func chatRecords() []models.Record {
	return []models.Record{
		{Amount: decimal.NewFromInt(300), Item: "momo", Category: "Food", PaidBy: "Sonu", Date: "2024-05-03"},
		{Amount: decimal.NewFromInt(1000), Item: "rent", Category: "Rent", Date: "2024-05-02"},
	}
}

func TestChat_Empty(t *testing.T) {
	svc, _ := newTestService(nil, models.StrategyAuto)
	ctx := context.Background()

	resp := svc.Chat(ctx, ChatRequest{Text: "total", UserEmail: "ravi.k@example.com"})
	assert.Equal(t, "Hi Ravi.k! You don't have any personal expenses recorded yet. Start by adding some expenses to get insights!", resp.Reply)
	assert.False(t, resp.Error)

	resp = svc.Chat(ctx, ChatRequest{Text: "total", GroupName: "Flat", GroupExpensesData: []models.Record{}})
	assert.Equal(t, "Hi there! You don't have any personal expenses recorded yet. Start by adding some expenses to get insights!", resp.Reply)
}

func TestChat_Analyzer(t *testing.T) {
	svc, _ := newTestService(nil, models.StrategyAuto)
	ctx := context.Background()

	resp := svc.Chat(ctx, ChatRequest{Text: "how many transactions", UserName: "Asha", ExpensesData: chatRecords()})
	assert.Equal(t, "Hi Asha! You have 2 transactions in your personal expenses, totaling Rs.1300.", resp.Reply)

	resp = svc.Chat(ctx, ChatRequest{
		Text:              "who paid",
		UserName:          "Asha",
		ExpensesData:      []models.Record{{Amount: decimal.NewFromInt(5), Item: "tea"}},
		GroupName:         "Flat",
		GroupExpensesData: chatRecords(),
	})
	assert.Equal(t, "Hi Asha! The most recent expense with payment info: Rs.300 for momo paid by Sonu.", resp.Reply)

	resp = svc.Chat(ctx, ChatRequest{Text: "hello", UserName: "Asha", GroupName: "Flat", GroupExpensesData: chatRecords()})
	assert.True(t, strings.HasPrefix(resp.Reply, "Hi Asha! Your group 'Flat' expenses: Rs.1300 total"))
}

func TestChat_AI(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"You spent Rs.300 on momo.", "Hi Asha! Rent is your biggest cost."}}
	svc, _ := newTestService(c, models.StrategyAuto)
	ctx := context.Background()
	req := ChatRequest{Text: "momo?", UserName: "Asha", ExpensesData: chatRecords()}

	assert.Equal(t, "Hi Asha! You spent Rs.300 on momo.", svc.Chat(ctx, req).Reply)
	assert.Equal(t, "Hi Asha! Rent is your biggest cost.", svc.Chat(ctx, req).Reply)

	require.Len(t, c.prompts, 2)
	assert.Contains(t, c.prompts[0], "Rs.300 on momo - Food (paid by Sonu)")
	assert.Contains(t, c.prompts[0], "rent: Rs.1000")
	assert.Contains(t, c.prompts[0], `Start your response with "Hi Asha!"`)
}

func TestChat_AIFailureFallsBack(t *testing.T) {
	for _, c := range []*scriptedCompleter{
		{err: errors.New("timeout")},
		{responses: []string{"   "}},
	} {
		svc, _ := newTestService(c, models.StrategyAuto)
		resp := svc.Chat(context.Background(), ChatRequest{Text: "how many", UserName: "Asha", ExpensesData: chatRecords()})
		assert.Equal(t, "Hi Asha! You have 2 transactions in your personal expenses, totaling Rs.1300.", resp.Reply)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		req      ChatRequest
		expected string
	}{
		{ChatRequest{UserName: " Asha ", UserEmail: "x@y.z"}, "Asha"},
		{ChatRequest{UserEmail: "ravi@example.com"}, "Ravi"},
		{ChatRequest{UserEmail: "no-at-sign"}, "there"},
		{ChatRequest{}, "there"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, displayName(tt.req))
	}
}
