package expenseparser

import (
	"sync"
	"testing"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() (*Parser, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return New(nil, nil, logger), logger
}

func TestParseFragment(t *testing.T) {
	p, _ := newTestParser()

	tests := []struct {
		name     string
		input    string
		expected models.Transaction
	}{
		{
			name:  "amount for item",
			input: "500 for petrol",
			expected: models.Transaction{
				Amount: 500, Item: "petrol", Category: models.CategoryTransport, Remarks: "Petrol",
			},
		},
		{
			name:  "bare loan",
			input: "gave sonu 400",
			expected: models.Transaction{
				Amount: 400, Item: "loan", Category: models.CategoryLoan,
				Remarks: "Loan given to Sonu", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "loan with trailing keyword",
			input: "lent gaurav 300 loan",
			expected: models.Transaction{
				Amount: 300, Item: "loan", Category: models.CategoryLoan,
				Remarks: "Loan given to Gaurav", PaidBy: models.StringPtr("Gaurav"),
			},
		},
		{
			name:  "loan with duration",
			input: "gave sonu 400 for a week",
			expected: models.Transaction{
				Amount: 400, Item: "loan", Category: models.CategoryLoan,
				Remarks: "Loan given to Sonu for a week", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "repayment",
			input: "got back 400 from sonu",
			expected: models.Transaction{
				Amount: -400, Item: "loan repayment", Category: models.CategoryLoan,
				Remarks: "Loan repaid by Sonu", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "debt between parties",
			input: "sonu owes 280 to gaurav",
			expected: models.Transaction{
				Amount: 280, Item: "sonu owes gaurav", Category: models.CategoryLoan,
				Remarks: "Sonu owes Gaurav", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "debt inside a sentence",
			input: "in ludo game sonu owes 280 to gaurav",
			expected: models.Transaction{
				Amount: 280, Item: "sonu owes gaurav", Category: models.CategoryLoan,
				Remarks: "Sonu owes Gaurav", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "misspelled debt verb",
			input: "hari owz 50 to ram",
			expected: models.Transaction{
				Amount: 50, Item: "hari owes ram", Category: models.CategoryLoan,
				Remarks: "Hari owes Ram", PaidBy: models.StringPtr("Hari"),
			},
		},
		{
			name:  "salary first",
			input: "got salary 100000",
			expected: models.Transaction{
				Amount: -100000, Item: "salary", Category: models.CategoryIncome, Remarks: "Salary received",
			},
		},
		{
			name:  "salary last",
			input: "salary 100000 received",
			expected: models.Transaction{
				Amount: -100000, Item: "salary", Category: models.CategoryIncome, Remarks: "Salary received",
			},
		},
		{
			name:  "item payer amount",
			input: "rent sonu 20000",
			expected: models.Transaction{
				Amount: 20000, Item: "rent", Category: models.CategoryRent,
				Remarks: "Rent - Paid by Sonu", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "item for context amount",
			input: "samosa for lunch 80",
			expected: models.Transaction{
				Amount: 80, Item: "samosa for lunch", Category: models.CategoryFood, Remarks: "Samosa For Lunch",
			},
		},
		{
			name:  "amount on the item",
			input: "100 on the tea",
			expected: models.Transaction{
				Amount: 100, Item: "tea", Category: models.CategoryFood, Remarks: "Tea",
			},
		},
		{
			name:  "spend first",
			input: "spend 100 on tea",
			expected: models.Transaction{
				Amount: 100, Item: "tea", Category: models.CategoryFood, Remarks: "Tea",
			},
		},
		{
			name:  "amount spend on",
			input: "150 spend on momo",
			expected: models.Transaction{
				Amount: 150, Item: "momo", Category: models.CategoryFood, Remarks: "Momo",
			},
		},
		{
			name:  "paid for item",
			input: "payed 5000 for hotel",
			expected: models.Transaction{
				Amount: 5000, Item: "hotel", Category: models.CategoryTravel, Remarks: "Hotel",
			},
		},
		{
			name:  "paid by person",
			input: "rent 20000 paid by sonu",
			expected: models.Transaction{
				Amount: 20000, Item: "rent", Category: models.CategoryRent,
				Remarks: "Rent - Paid by Sonu", PaidBy: models.StringPtr("Sonu"),
			},
		},
		{
			name:  "bare item amount",
			input: "grocery 300",
			expected: models.Transaction{
				Amount: 300, Item: "grocery", Category: models.CategoryGroceries, Remarks: "Grocery",
			},
		},
		{
			name:  "slang item is normalized",
			input: "dudh 60",
			expected: models.Transaction{
				Amount: 60, Item: "milk", Category: models.CategoryFood, Remarks: "Milk",
			},
		},
		{
			name:  "currency marked fallback",
			input: "spent Rs.200 on momo",
			expected: models.Transaction{
				Amount: 200, Item: "momo", Category: models.CategoryFood, Remarks: "Momo",
			},
		},
		{
			name:  "currency marked fallback replaces one slang word",
			input: "Rs.100 chiya dudh",
			expected: models.Transaction{
				Amount: 100, Item: "tea dudh", Category: models.CategoryFood, Remarks: "Tea Dudh",
			},
		},
		{
			name:  "currency marked fallback for the bus",
			input: "rs50 for the bus",
			expected: models.Transaction{
				Amount: 50, Item: "bus", Category: models.CategoryTransport, Remarks: "Bus",
			},
		},
		{
			name:  "unknown item",
			input: "widget 700",
			expected: models.Transaction{
				Amount: 700, Item: "widget", Category: models.CategoryOther, Remarks: "Widget",
			},
		},
		{
			name:  "keywords are case insensitive",
			input: "GAVE Sonu 400",
			expected: models.Transaction{
				Amount: 400, Item: "loan", Category: models.CategoryLoan,
				Remarks: "Loan given to Sonu", PaidBy: models.StringPtr("Sonu"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ok := p.ParseFragment(tt.input)
			require.True(t, ok, "expected %q to parse", tt.input)
			assert.Equal(t, tt.expected, tx)
			assert.True(t, tx.Valid())
		})
	}
}

func TestParseFragment_NoMatch(t *testing.T) {
	p, logger := newTestParser()

	inputs := []string{
		"",
		"   ",
		"garbage text no numbers",
		"momo",
		"Rs 200 for tea",
		"Rs.0 tea",
		"spent Rs.200 on the",
		"500",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, ok := p.ParseFragment(input)
			assert.False(t, ok)
		})
	}
	assert.True(t, logger.HasEntry("DEBUG", "Fragment dropped"))
}

func TestParseFragment_FoodWordIsNotAPayer(t *testing.T) {
	p, _ := newTestParser()

	tx, ok := p.ParseFragment("biscuit tea 50")
	require.True(t, ok)
	assert.Nil(t, tx.PaidBy)
	assert.Equal(t, "biscuit tea", tx.Item)
	assert.Equal(t, models.CategoryFood, tx.Category)

	tx, ok = p.ParseFragment("momo dinner 200")
	require.True(t, ok)
	assert.Nil(t, tx.PaidBy)
	assert.Equal(t, "momo dinner", tx.Item)
}

func TestParseFragment_SlangAppliedOncePerRule(t *testing.T) {
	tests := []struct {
		input string
		rule  string
	}{
		{"80 for chiya dudh", RuleAmountForItem},
		{"spend 80 on chiya dudh", RuleSpend},
		{"Rs.80 chiya dudh", RuleMarkedAmount},
		{"spent Rs.80 on chiya dudh", RuleMarkedAmount},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, logger := newTestParser()

			tx, ok := p.ParseFragment(tt.input)
			require.True(t, ok)
			assert.Equal(t, int64(80), tx.Amount)
			assert.Equal(t, "tea dudh", tx.Item)
			assert.Equal(t, "Tea Dudh", tx.Remarks)
			assert.Equal(t, models.CategoryFood, tx.Category)

			var matched []logging.Field
			for _, e := range logger.GetEntriesByLevel("DEBUG") {
				if e.Message == "Fragment matched" {
					matched = e.Fields
				}
			}
			assert.Contains(t, matched, logging.Field{Key: logging.FieldRule, Value: tt.rule})
		})
	}
}

func TestParseFragment_AmountOverflow(t *testing.T) {
	p, logger := newTestParser()

	_, ok := p.ParseFragment("tea 99999999999999999999")
	assert.False(t, ok)
	assert.True(t, logger.HasEntry("DEBUG", "Rejected amount"))
}

func TestRules_Order(t *testing.T) {
	p, _ := newTestParser()

	var names []string
	for _, r := range p.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		RuleDebt, RuleSalary, RuleRepayment, RuleLoanWithDuration, RuleLoan,
		RuleItemPayerAmount, RuleItemForContext, RuleAmountForItem, RuleSpend,
		RulePaid, RulePaidBy, RuleBareItemAmount, RuleMarkedAmount,
	}, names)
}

// Each sample is owned by exactly one rule: it matches that rule and no rule
// evaluated before it.
func TestRules_NoEarlierRuleMatches(t *testing.T) {
	p, _ := newTestParser()

	samples := map[string][]string{
		RuleDebt:             {"sonu owes 280 to gaurav", "ram borrows 90 from shyam"},
		RuleSalary:           {"got salary 100000", "salary 5000 got"},
		RuleRepayment:        {"got back 400 from sonu", "returned 50 from hari"},
		RuleLoanWithDuration: {"gave sonu 400 for a week", "lend ram 100 for two days"},
		RuleLoan:             {"gave sonu 400", "lent hari 200 udhar"},
		RuleItemPayerAmount:  {"rent sonu 20000", "tea gaurav 100"},
		RuleItemForContext:   {"samosa for lunch 80", "chicken on dinner 400"},
		RuleAmountForItem:    {"500 for petrol", "100 on the tea"},
		RuleSpend:            {"spend 100 on tea", "150 spend on momo"},
		RulePaid:             {"paid 5000 for hotel", "payed 20 for the bus"},
		RulePaidBy:           {"rent 20000 paid by sonu", "house rent 9000 paid by hari"},
		RuleBareItemAmount:   {"biryani 500", "grocery 300"},
		RuleMarkedAmount:     {"spent Rs.200 on momo", "taxi fare rs90 today"},
	}

	rules := p.Rules()
	require.Len(t, rules, len(samples))

	for k, rule := range rules {
		for _, sample := range samples[rule.Name] {
			t.Run(rule.Name+"/"+sample, func(t *testing.T) {
				_, ok := rule.Match(sample)
				require.True(t, ok, "rule %s should match %q", rule.Name, sample)
				for _, earlier := range rules[:k] {
					_, ok := earlier.Match(sample)
					assert.False(t, ok, "earlier rule %s also matches %q", earlier.Name, sample)
				}
			})
		}
	}
}

func TestParse_KeepsOrderAndDropsUnparseable(t *testing.T) {
	p, _ := newTestParser()

	txs := p.Parse("500 for petrol, garbage, , gave sonu 400,got back 400 from sonu")
	require.Len(t, txs, 3)
	assert.Equal(t, int64(500), txs[0].Amount)
	assert.Equal(t, models.CategoryLoan, txs[1].Category)
	assert.Equal(t, int64(-400), txs[2].Amount)

	assert.Empty(t, p.Parse("garbage text no numbers"))
	assert.Empty(t, p.Parse(""))
}

func TestParse_Concurrent(t *testing.T) {
	p, _ := newTestParser()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txs := p.Parse("500 for petrol, sonu owes 280 to gaurav")
			assert.Len(t, txs, 2)
		}()
	}
	wg.Wait()
}
