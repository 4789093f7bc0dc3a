// Package container provides dependency injection for the expense parser.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"kharcha/expense-nlp/internal/aggregator"
	"kharcha/expense-nlp/internal/ai"
	"kharcha/expense-nlp/internal/analyzer"
	"kharcha/expense-nlp/internal/categorizer"
	"kharcha/expense-nlp/internal/config"
	"kharcha/expense-nlp/internal/expenseparser"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/nlp"
	"kharcha/expense-nlp/internal/normalizer"
	"kharcha/expense-nlp/internal/reply"
	"kharcha/expense-nlp/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	normalizer  *normalizer.Normalizer
	categorizer *categorizer.Categorizer
	parser      *expenseparser.Parser
	aggregator  *aggregator.Aggregator
	synth       *reply.Synthesizer
	analyzer    *analyzer.Analyzer
	completer   ai.Completer
	service     *nlp.Service
}

// NewContainer creates and wires all application dependencies.
//
// Table files that cannot be found leave the built-in tables in place. An
// AI provider is created only when AI is enabled and an API key is set.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := config.NewLogger(cfg)
	return newContainer(cfg, logger)
}

func newContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	strategy, err := models.ParseStrategy(cfg.Parser.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid parser strategy: %w", err)
	}

	categoryStore := store.NewCategoryStore(cfg.Data.CategoriesFile, cfg.Data.SlangFile, logger)

	slang, err := categoryStore.LoadSlang()
	if err != nil {
		return nil, fmt.Errorf("failed to load slang table: %w", err)
	}
	norm := normalizer.New(slang)

	cat := categorizer.NewFromStore(categoryStore, logger)

	completer, err := newCompleter(cfg, logger)
	if err != nil {
		return nil, err
	}

	p := expenseparser.New(norm, cat, logger)
	agg := aggregator.New(logger)
	symbol := cfg.Parser.CurrencySymbol

	service := nlp.NewService(p, agg, cat, completer, nlp.Options{
		Strategy: strategy,
		Symbol:   symbol,
		Provider: ai.ProviderGemini,
	}, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldStrategy, Value: string(strategy)},
		logging.Field{Key: "rules_count", Value: len(p.Rules())},
		logging.Field{Key: logging.FieldStrategies, Value: cat.StrategyNames()},
		logging.Field{Key: "ai_enabled", Value: ai.Available(completer)})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		normalizer:  norm,
		categorizer: cat,
		parser:      p,
		aggregator:  agg,
		synth:       reply.New(symbol),
		analyzer:    analyzer.New(symbol),
		completer:   completer,
		service:     service,
	}, nil
}

func newCompleter(cfg *config.Config, logger logging.Logger) (ai.Completer, error) {
	if !cfg.AI.Enabled || cfg.AI.APIKey == "" {
		logger.Info("AI parsing disabled")
		return ai.Disabled{}, nil
	}

	completer, err := ai.NewGeminiCompleter(context.Background(), ai.GeminiOptions{
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		MaxAttempts:       cfg.AI.MaxAttempts,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}
	logger.Info("AI parsing enabled", logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model})
	return completer, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetNormalizer returns the slang normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the clause rule parser.
func (c *Container) GetParser() *expenseparser.Parser {
	return c.parser
}

// GetAggregator returns the currency-segmented parser.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetSynthesizer returns the reply synthesizer.
func (c *Container) GetSynthesizer() *reply.Synthesizer {
	return c.synth
}

// GetAnalyzer returns the expense analyzer.
func (c *Container) GetAnalyzer() *analyzer.Analyzer {
	return c.analyzer
}

// GetCompleter returns the AI provider, ai.Disabled when none is configured.
func (c *Container) GetCompleter() ai.Completer {
	return c.completer
}

// GetService returns the parsing and chat service.
func (c *Container) GetService() *nlp.Service {
	return c.service
}

// Close releases the AI client, if any.
func (c *Container) Close() error {
	if closer, ok := c.completer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close AI client")
			return err
		}
	}
	c.logger.Info("Container closed")
	return nil
}
