package ai

import (
	"encoding/json"
	"errors"
	"strings"

	"kharcha/expense-nlp/internal/parsererror"
)

var (
	errNoJSONObject    = errors.New("no JSON object in response")
	errMissingExpenses = errors.New(`response has no "expenses" key`)
)

// Expense is one expense as returned by the provider. Amount is kept as a
// json.Number so non-integral values can be detected and dropped.
type Expense struct {
	Amount   json.Number `json:"amount"`
	Item     string      `json:"item"`
	Category string      `json:"category"`
	Remarks  string      `json:"remarks"`
	PaidBy   *string     `json:"paid_by"`
}

// ParseResponse is the decoded {expenses, reply} object.
type ParseResponse struct {
	Expenses []Expense `json:"expenses"`
	Reply    string    `json:"reply"`
}

type rawParseResponse struct {
	Expenses *[]Expense `json:"expenses"`
	Reply    string     `json:"reply"`
}

// DecodeParseResponse extracts the JSON object from a completion, which may
// be wrapped in a markdown code fence or surrounded by prose. A response
// without an "expenses" key is an error.
func DecodeParseResponse(provider, raw string) (ParseResponse, error) {
	s := cleanModelJSON(raw)
	if s == "" {
		return ParseResponse{}, &parsererror.ProviderError{Provider: provider, Op: "decode response", Err: errNoJSONObject}
	}

	var decoded rawParseResponse
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return ParseResponse{}, &parsererror.ProviderError{Provider: provider, Op: "decode response", Err: err}
	}
	if decoded.Expenses == nil {
		return ParseResponse{}, &parsererror.ProviderError{Provider: provider, Op: "decode response", Err: errMissingExpenses}
	}
	return ParseResponse{Expenses: *decoded.Expenses, Reply: strings.TrimSpace(decoded.Reply)}, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// ```json ... ``` or ``` ... ```
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}
