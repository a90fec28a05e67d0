package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Chat (grounded question answering)
	mux.HandleFunc("/api/chat/message", s.app.ChatHandler.MessageHandler)

	// API routes - Subjects
	mux.HandleFunc("/api/subjects", s.handleSubjectsRoute)  // GET (list), POST (create)
	mux.HandleFunc("/api/subjects/", s.handleSubjectRoutes) // subject-scoped subroutes

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleSubjectsRoute routes /api/subjects collection requests
func (s *Server) handleSubjectsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.app.SubjectHandler.ListHandler(w, r)
	case http.MethodPost:
		s.app.SubjectHandler.CreateHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSubjectRoutes routes subject-scoped requests:
//
//	GET/DELETE /api/subjects/{id}
//	GET/POST   /api/subjects/{id}/documents
//	DELETE     /api/subjects/{id}/documents/{filename}
//	POST       /api/subjects/{id}/questions/mcq
//	POST       /api/subjects/{id}/questions/short
func (s *Server) handleSubjectRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/subjects/")
	parts := strings.Split(path, "/")

	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Subject ID is required", http.StatusBadRequest)
		return
	}
	subjectID := parts[0]

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			s.app.SubjectHandler.GetHandler(w, r, subjectID)
		case http.MethodDelete:
			s.app.SubjectHandler.DeleteHandler(w, r, subjectID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	case len(parts) == 2 && parts[1] == "documents":
		switch r.Method {
		case http.MethodGet:
			s.app.DocumentHandler.ListHandler(w, r, subjectID)
		case http.MethodPost:
			s.app.DocumentHandler.UploadHandler(w, r, subjectID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	case len(parts) == 3 && parts[1] == "documents":
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.DocumentHandler.DeleteHandler(w, r, subjectID, parts[2])

	case len(parts) == 3 && parts[1] == "questions" && parts[2] == "mcq":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.QuestionHandler.MCQHandler(w, r, subjectID)

	case len(parts) == 3 && parts[1] == "questions" && parts[2] == "short":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.QuestionHandler.ShortAnswerHandler(w, r, subjectID)

	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}
