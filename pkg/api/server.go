// Package api provides the HTTP server exposing the bot over both
// supported dialects: Bot Framework Activity and A2A JSON-RPC, sharing
// the single POST /api/messages endpoint.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/a2a"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/activity"
)

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	Host             string
	Port             int
	AllowOrigins     []string
	AgentName        string
	AgentDescription string
}

// Server routes inbound envelopes to the dialect-specific handlers.
type Server struct {
	config *ServerConfig
	router *http.ServeMux
	runner activity.QueryRunner
	bot    *activity.Bot
	sender activity.Sender
	tasks  *a2a.TaskStore
}

// NewServer creates the server with its collaborators injected. The task
// store is constructed once per process and shared by both A2A handlers.
func NewServer(config *ServerConfig, runner activity.QueryRunner, sender activity.Sender, tasks *a2a.TaskStore) *Server {
	s := &Server{
		config: config,
		runner: runner,
		bot:    activity.NewBot(config.AgentName, runner),
		sender: sender,
		tasks:  tasks,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router = http.NewServeMux()
	s.router.HandleFunc("/api/messages", s.handleMessages)
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/.well-known/agent-card.json", s.handleAgentCard)
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	log.Printf("Starting bot server on %s", address)
	log.Printf("Endpoint: http://%s/api/messages", address)
	log.Printf("Health check: http://%s/health", address)
	log.Printf("Supports: Bot Framework Activity & Agent-to-Agent (JSON-RPC)")

	return http.ListenAndServe(address, c.Handler(s.router))
}

// handleMessages is the shared webhook for both dialects.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("Incoming request from %s", r.RemoteAddr)

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		log.Printf("Invalid content type: %s", contentType)
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read body: %v", err), http.StatusBadRequest)
		return
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("Failed to parse JSON: %v", err)
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	switch Classify(envelope) {
	case DialectJSONRPC:
		s.handleJSONRPC(w, r, body)
	case DialectActivity:
		s.handleActivity(w, r, body)
	default:
		log.Printf("Missing activity type")
		http.Error(w, "Missing activity type", http.StatusBadRequest)
	}
}

// handleActivity processes a Bot Framework Activity envelope.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request, body []byte) {
	log.Printf("Detected Bot Framework Activity")

	var act activity.Activity
	if err := json.Unmarshal(body, &act); err != nil {
		http.Error(w, fmt.Sprintf("Invalid activity: %v", err), http.StatusBadRequest)
		return
	}

	log.Printf("Activity type: %s", act.Type)
	if act.Type == activity.TypeMessage {
		log.Printf("Message text: %s", act.Text)
	}

	if err := s.bot.OnTurn(r.Context(), &act, s.sender); err != nil {
		log.Printf("Error in activity handler: %v", err)
		http.Error(w, fmt.Sprintf("Internal server error: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"agent":  s.config.AgentName,
	})
}

// handleAgentCard serves the A2A discovery card.
func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	card := &a2a.AgentCard{
		Name:               s.config.AgentName,
		Description:        s.config.AgentDescription,
		URL:                fmt.Sprintf("http://%s:%d/api/messages", s.config.Host, s.config.Port),
		Version:            "1.0.0",
		Capabilities:       a2a.AgentCapabilities{},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []a2a.AgentSkill{
			{
				ID:          "get_weather",
				Name:        "Weather lookup",
				Description: "Get real weather information using OpenWeatherMap API",
				Tags:        []string{"weather"},
				Examples:    []string{"weather in London"},
			},
		},
	}

	s.writeJSON(w, http.StatusOK, card)
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
