package models

import "fmt"

// Strategy selects how a whole input is turned into transactions.
type Strategy string

const (
	// StrategyAuto tries the AI provider when enabled, then runs both
	// deterministic strategies and keeps the better result.
	StrategyAuto Strategy = "auto"
	// StrategyClauses splits on commas and parses each fragment on its own.
	StrategyClauses Strategy = "clauses"
	// StrategySegmented groups comma parts around currency markers.
	StrategySegmented Strategy = "segmented"
)

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategyClauses, StrategySegmented:
		return Strategy(s), nil
	case "":
		return StrategyAuto, nil
	}
	return "", fmt.Errorf("unknown strategy %q (must be one of auto, clauses, segmented)", s)
}
