// Package nlp is the entry point for turning free text into expenses and for
// answering questions about stored expenses. It chooses between the clause
// rules, the currency-segmented path and the optional AI provider, and never
// returns an error to its caller.
package nlp

import (
	"context"
	"strings"
	"time"

	"kharcha/expense-nlp/internal/aggregator"
	"kharcha/expense-nlp/internal/ai"
	"kharcha/expense-nlp/internal/analyzer"
	"kharcha/expense-nlp/internal/categorizer"
	"kharcha/expense-nlp/internal/expenseparser"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/parsererror"
	"kharcha/expense-nlp/internal/reply"
	"kharcha/expense-nlp/internal/textutils"
)

// Sources reported in an Outcome.
const (
	SourceAI        = "ai"
	SourceClauses   = "clauses"
	SourceSegmented = "segmented"
	SourceNone      = "none"
)

// Options configures a Service.
type Options struct {
	Strategy models.Strategy
	Symbol   string
	// Provider names the AI provider in errors and logs.
	Provider string
}

// Outcome is a parse result together with the path that produced it.
type Outcome struct {
	models.ParseResult
	Source string
}

// Service wires the parsing components together. It is safe for concurrent
// use as long as its Completer is.
type Service struct {
	parser      *expenseparser.Parser
	aggregator  *aggregator.Aggregator
	categorizer *categorizer.Categorizer
	synth       *reply.Synthesizer
	analyzer    *analyzer.Analyzer
	completer   ai.Completer
	opts        Options
	logger      logging.Logger
}

// NewService creates a Service. A nil completer disables the AI path.
func NewService(
	p *expenseparser.Parser,
	agg *aggregator.Aggregator,
	cat *categorizer.Categorizer,
	completer ai.Completer,
	opts Options,
	logger logging.Logger,
) *Service {
	logger = logging.OrDefault(logger)
	if cat == nil {
		cat = categorizer.New(nil, logger)
	}
	if p == nil {
		p = expenseparser.New(nil, cat, logger)
	}
	if agg == nil {
		agg = aggregator.New(logger)
	}
	if completer == nil {
		completer = ai.Disabled{}
	}
	if opts.Strategy == "" {
		opts.Strategy = models.StrategyAuto
	}
	if opts.Provider == "" {
		opts.Provider = "ai"
	}
	return &Service{
		parser:      p,
		aggregator:  agg,
		categorizer: cat,
		synth:       reply.New(opts.Symbol),
		analyzer:    analyzer.New(opts.Symbol),
		completer:   completer,
		opts:        opts,
		logger:      logger,
	}
}

// AIAvailable reports whether an AI provider is configured.
func (s *Service) AIAvailable() bool {
	return ai.Available(s.completer)
}

// Strategy returns the configured default strategy.
func (s *Service) Strategy() models.Strategy {
	return s.opts.Strategy
}

// ParseExpense parses text with the configured strategy.
func (s *Service) ParseExpense(ctx context.Context, text string) models.ParseResult {
	return s.Parse(ctx, text, s.opts.Strategy).ParseResult
}

// Parse parses text with strategy:
//
//   - clauses: the ordered rules on each comma-separated fragment.
//   - segmented: the currency-segmented path, then the rules if it found
//     nothing.
//   - auto: the AI provider when available; otherwise both deterministic
//     paths, keeping the segmented result only when it found strictly more
//     transactions.
func (s *Service) Parse(ctx context.Context, text string, strategy models.Strategy) Outcome {
	start := time.Now()
	text = strings.TrimSpace(text)

	out := s.parse(ctx, text, strategy)

	s.logger.Info("Parsed expense text",
		logging.Field{Key: logging.FieldStrategy, Value: string(strategy)},
		logging.Field{Key: "source", Value: out.Source},
		logging.Field{Key: logging.FieldCount, Value: out.Count()},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return out
}

func (s *Service) parse(ctx context.Context, text string, strategy models.Strategy) Outcome {
	if text == "" {
		return s.outcome(nil, SourceNone)
	}

	switch strategy {
	case models.StrategyClauses:
		return s.outcome(s.parser.Parse(text), SourceClauses)

	case models.StrategySegmented:
		if txs := s.aggregator.ParseCurrencySegmented(text); len(txs) > 0 {
			return s.outcome(txs, SourceSegmented)
		}
		return s.outcome(s.parser.Parse(text), SourceClauses)

	default:
		if s.AIAvailable() {
			if res, ok := s.parseWithAI(ctx, text); ok {
				return Outcome{ParseResult: res, Source: SourceAI}
			}
		}
		clauses := s.parser.Parse(text)
		segmented := s.aggregator.ParseCurrencySegmented(text)
		if len(segmented) > len(clauses) {
			return s.outcome(segmented, SourceSegmented)
		}
		return s.outcome(clauses, SourceClauses)
	}
}

func (s *Service) outcome(txs []models.Transaction, source string) Outcome {
	if len(txs) == 0 {
		source = SourceNone
	}
	return Outcome{ParseResult: s.synth.Result(txs), Source: source}
}

// parseWithAI asks the provider to parse text. Any failure is logged and
// reported as false so the caller can fall back to the rules.
func (s *Service) parseWithAI(ctx context.Context, text string) (models.ParseResult, bool) {
	raw, err := s.completer.Complete(ctx, ai.BuildParsePrompt(text))
	if err != nil {
		s.logger.WithError(err).Warn("AI parse failed, using rules",
			logging.Field{Key: logging.FieldProvider, Value: s.opts.Provider},
			logging.Field{Key: logging.FieldReason, Value: failureReason(err)})
		return models.ParseResult{}, false
	}

	resp, err := ai.DecodeParseResponse(s.opts.Provider, raw)
	if err != nil {
		s.logger.WithError(err).Warn("AI response unusable, using rules",
			logging.Field{Key: logging.FieldProvider, Value: s.opts.Provider})
		return models.ParseResult{}, false
	}

	txs := s.sanitize(resp.Expenses)
	if len(txs) == 0 {
		s.logger.Debug("AI returned no usable expenses",
			logging.Field{Key: logging.FieldProvider, Value: s.opts.Provider})
		return models.ParseResult{}, false
	}

	replyText := resp.Reply
	if replyText == "" {
		replyText = s.synth.Summarize(txs)
	}
	return models.ParseResult{Expenses: txs, Reply: replyText}, true
}

func failureReason(err error) string {
	if parsererror.IsProviderError(err) {
		return "provider"
	}
	return "unavailable"
}

// sanitize converts provider expenses into transactions. Entries without an
// integral amount are dropped; missing items, categories and remarks are
// filled in.
func (s *Service) sanitize(expenses []ai.Expense) []models.Transaction {
	var out []models.Transaction
	for _, e := range expenses {
		amount, err := e.Amount.Int64()
		if err != nil {
			s.logger.WithError(err).Debug("Dropped AI expense with invalid amount",
				logging.Field{Key: logging.FieldAmount, Value: e.Amount.String()})
			continue
		}

		item := strings.ToLower(strings.TrimSpace(e.Item))
		if item == "" {
			item = aggregator.DefaultItem
		}
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = s.categorizer.Categorize(item)
		}
		remarks := strings.TrimSpace(e.Remarks)
		if remarks == "" {
			remarks = textutils.Title(item)
		}
		var paidBy *string
		if e.PaidBy != nil {
			paidBy = models.StringPtr(strings.TrimSpace(*e.PaidBy))
		}

		out = append(out, models.Transaction{
			Amount:   amount,
			Item:     item,
			Category: category,
			Remarks:  remarks,
			PaidBy:   paidBy,
		})
	}
	return out
}
