package nlp

import (
	"context"
	"fmt"
	"strings"

	"kharcha/expense-nlp/internal/ai"
	"kharcha/expense-nlp/internal/analyzer"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/textutils"
)

const (
	chatTopCategories = 3
	defaultUserName   = "there"
)

// ChatErrorReply is returned when answering fails unexpectedly.
const ChatErrorReply = "Sorry, I couldn't analyze your expenses right now. Please try again later."

// ChatRequest is a question about a user's personal or group expenses.
type ChatRequest struct {
	Text              string          `json:"text"`
	UserName          string          `json:"user_name,omitempty"`
	UserEmail         string          `json:"user_email,omitempty"`
	ExpensesData      []models.Record `json:"expenses_data,omitempty"`
	GroupName         string          `json:"group_name,omitempty"`
	GroupExpensesData []models.Record `json:"group_expenses_data,omitempty"`
}

// ChatResponse carries the answer. Error is set only for ChatErrorReply.
type ChatResponse struct {
	Reply string `json:"reply"`
	Error bool   `json:"error,omitempty"`
}

// Chat answers req.Text. Group data is used when a group name and group
// records are present, the personal records otherwise. The AI provider is
// tried first; the rule-based analyzer answers when it is unavailable or
// fails.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (resp ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Chat failed",
				logging.Field{Key: logging.FieldError, Value: fmt.Sprint(r)})
			resp = ChatResponse{Reply: ChatErrorReply, Error: true}
		}
	}()

	name := displayName(req)
	records, scope := req.ExpensesData, "personal"
	if req.GroupName != "" && len(req.GroupExpensesData) > 0 {
		records, scope = req.GroupExpensesData, fmt.Sprintf("group '%s'", req.GroupName)
	}

	if len(records) == 0 {
		return ChatResponse{Reply: fmt.Sprintf(
			"Hi %s! You don't have any %s expenses recorded yet. Start by adding some expenses to get insights!",
			name, scope)}
	}

	an := s.analyzer.Analyze(records)

	if s.AIAvailable() {
		if answer, ok := s.chatWithAI(ctx, req.Text, name, scope, an); ok {
			return ChatResponse{Reply: answer}
		}
	}

	return ChatResponse{Reply: fmt.Sprintf("Hi %s! %s", name, s.analyzer.Answer(req.Text, an, records, scope))}
}

func (s *Service) chatWithAI(ctx context.Context, question, name, scope string, an analyzer.Analysis) (string, bool) {
	top := an.TopCategories
	if len(top) > chatTopCategories {
		top = top[:chatTopCategories]
	}
	totals := make([]ai.CategoryTotal, len(top))
	for i, c := range top {
		totals[i] = ai.CategoryTotal{Name: c.Name, Amount: c.Amount.String()}
	}

	recent := make([]string, len(an.Recent))
	for i, r := range an.Recent {
		line := fmt.Sprintf("%s%s on %s - %s", s.analyzer.Symbol, r.Amount.String(), r.Item, r.CategoryOrOther())
		if r.PaidBy != "" {
			line += " (paid by " + r.PaidBy + ")"
		}
		recent[i] = line
	}

	prompt := ai.BuildChatPrompt(ai.ChatPromptData{
		UserName:      name,
		Context:       scope,
		Question:      question,
		Symbol:        s.analyzer.Symbol,
		Total:         an.Total.String(),
		Count:         an.Count,
		TopCategories: totals,
		AverageDaily:  an.AveragePerDay.String(),
		Recent:        recent,
	})

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.WithError(err).Warn("AI chat failed, using analyzer",
			logging.Field{Key: logging.FieldProvider, Value: s.opts.Provider})
		return "", false
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", false
	}

	greeting := "Hi " + name + "!"
	if !strings.HasPrefix(answer, greeting) {
		answer = greeting + " " + answer
	}
	return answer, true
}

// displayName is the user name, else the capitalized local part of the
// email, else "there".
func displayName(req ChatRequest) string {
	if name := strings.TrimSpace(req.UserName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(req.UserEmail), "@"); ok && local != "" {
		return textutils.Capitalize(local)
	}
	return defaultUserName
}
