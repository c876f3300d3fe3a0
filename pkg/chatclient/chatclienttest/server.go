// Package chatclienttest provides an in-process fake of the chatbot API for tests.
package chatclienttest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// Request is a request observed by the fake server.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// Server serves the chatbot endpoints under /api/v1/chatbot. Handler functions may be
// replaced to script responses; the zero configuration answers every call successfully.
type Server struct {
	*httptest.Server

	// Token, when set, is the only bearer token accepted by authenticated endpoints.
	Token string

	mu       sync.Mutex
	requests []Request
	statuses map[string]int

	ChatFunc        func(v1.ChatRequest) v1.ChatResponse
	SuggestionsList []string
	HistoryEntries  []v1.HistoryEntry
	HealthStatus    v1.HealthResponse
}

func NewServer() *Server {
	s := &Server{
		statuses:        map[string]int{},
		SuggestionsList: []string{"Show revenue for this week", "Top hashtags"},
		HealthStatus:    v1.HealthResponse{Status: v1.HealthHealthy, Version: "1.4.0"},
		ChatFunc: func(req v1.ChatRequest) v1.ChatResponse {
			return v1.ChatResponse{
				Success:    true,
				Message:    "You said: " + req.Message,
				WorkflowID: "wf-1",
				Intent:     "general",
				Metadata:   v1.ResponseMetadata{SessionID: req.SessionID},
			}
		},
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1/chatbot").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/chat", s.authenticated("chat", s.chat)).Methods(http.MethodPost)
	api.HandleFunc("/suggestions", s.authenticated("suggestions", s.suggestions)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/history", s.authenticated("history", s.history)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.authenticated("delete_session", s.deleteSession)).Methods(http.MethodDelete)
	api.HandleFunc("/feedback", s.authenticated("feedback", s.feedback)).Methods(http.MethodPost)

	s.Server = httptest.NewServer(s.record(r))
	return s
}

// FailWith makes endpoint answer with status until cleared with status 0. Endpoint
// names are chat, suggestions, history, delete_session, feedback and health.
func (s *Server) FailWith(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.statuses, endpoint)
		return
	}
	s.statuses[endpoint] = status
}

// Requests returns every request observed so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the observed requests whose path ends with suffix.
func (s *Server) RequestsTo(suffix string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if strings.HasSuffix(r.Path, suffix) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			Authorization: req.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (s *Server) failure(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[endpoint]
}

func (s *Server) authenticated(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		auth := req.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || (s.Token != "" && auth != "Bearer "+s.Token) {
			failureResponse(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if status := s.failure(endpoint); status != 0 {
			failureResponse(w, status, "scripted failure")
			return
		}
		next(w, req)
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	if status := s.failure("health"); status != 0 {
		failureResponse(w, status, "scripted failure")
		return
	}
	respondWithJSON(w, http.StatusOK, s.HealthStatus)
}

func (s *Server) chat(w http.ResponseWriter, req *http.Request) {
	var request v1.ChatRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		failureResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, s.ChatFunc(request))
}

func (s *Server) suggestions(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, v1.SuggestionsResponse{Suggestions: s.SuggestionsList})
}

func (s *Server) history(w http.ResponseWriter, req *http.Request) {
	entries := s.HistoryEntries
	if limit, err := strconv.Atoi(req.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}
	respondWithJSON(w, http.StatusOK, v1.HistoryResponse{SessionID: mux.Vars(req)["id"], History: entries})
}

func (s *Server) deleteSession(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) feedback(w http.ResponseWriter, req *http.Request) {
	var request v1.FeedbackRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		failureResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func failureResponse(w http.ResponseWriter, status int, msg string) {
	respondWithJSON(w, status, map[string]interface{}{"code": status, "message": msg})
}
