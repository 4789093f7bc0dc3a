package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/nlp"
)

const maxBodyBytes = 1 << 20

type parseRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	AI        bool   `json:"ai_available"`
	Strategy  string `json:"strategy"`
	Timestamp string `json:"time"`
}

// handleParse handles POST /parse.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.logger.WithError(err).Warn("Invalid parse request",
			logging.Field{Key: logging.FieldRequestID, Value: RequestIDFrom(r.Context())})
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	strategy := s.service.Strategy()
	if req.Strategy != "" {
		parsed, err := models.ParseStrategy(req.Strategy)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	out := s.service.Parse(r.Context(), req.Text, strategy)

	s.metrics.parses.WithLabelValues(out.Source).Inc()
	for _, tx := range out.Expenses {
		s.metrics.transactions.WithLabelValues(tx.Category).Inc()
	}

	WriteJSON(w, http.StatusOK, out.ParseResult)
}

// handleChat handles POST /chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req nlp.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.logger.WithError(err).Warn("Invalid chat request",
			logging.Field{Key: logging.FieldRequestID, Value: RequestIDFrom(r.Context())})
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp := s.service.Chat(r.Context(), req)

	outcome := "answered"
	if resp.Error {
		outcome = "error"
	}
	s.metrics.chats.WithLabelValues(outcome).Inc()

	WriteJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		AI:        s.service.AIAvailable(),
		Strategy:  string(s.service.Strategy()),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// decodeBody decodes a JSON body of at most maxBodyBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}
