package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/api"
	"inkwell/internal/archive"
	"inkwell/internal/catalog"
	"inkwell/internal/logging"
	"inkwell/internal/store"
)

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := catalog.Filter{
			Category: r.URL.Query().Get("category"),
			Keyword:  r.URL.Query().Get("keyword"),
		}
		s.writeJSON(w, http.StatusOK, api.ArticleListResponse{Articles: s.svc.List(filter)})
	case http.MethodPost:
		var req api.DraftRequest
		if !s.decodeBody(w, r, &req) {
			return
		}
		article, err := s.svc.Create(r.Context(), req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, api.ArticleResponse{Article: article})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleArticleSubtree routes /api/articles/{id}, .../memos[/{memoID}], and
// .../summarize.
func (s *Server) handleArticleSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/articles/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		s.writeError(w, http.StatusNotFound, "article not found")
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		s.handleArticle(w, r, id)
	case len(parts) == 2 && parts[1] == "memos":
		s.handleMemoCreate(w, r, id)
	case len(parts) == 3 && parts[1] == "memos":
		s.handleMemo(w, r, id, parts[2])
	case len(parts) == 2 && parts[1] == "summarize":
		s.handleArticleSummarize(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		article, err := s.svc.Describe(id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.ArticleResponse{Article: article})
	case http.MethodPut:
		var req api.DraftRequest
		if !s.decodeBody(w, r, &req) {
			return
		}
		article, err := s.svc.Update(r.Context(), id, req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.ArticleResponse{Article: article})
	case http.MethodDelete:
		if err := s.svc.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleMemoCreate(w http.ResponseWriter, r *http.Request, articleID string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.MemoRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	memo, err := s.svc.AddMemo(r.Context(), articleID, req.Content)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, memo)
}

func (s *Server) handleMemo(w http.ResponseWriter, r *http.Request, articleID, memoID string) {
	switch r.Method {
	case http.MethodPut:
		var req api.MemoRequest
		if !s.decodeBody(w, r, &req) {
			return
		}
		if err := s.svc.UpdateMemo(r.Context(), articleID, memoID, req.Content); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.svc.DeleteMemo(r.Context(), articleID, memoID); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleArticleSummarize summarizes the article body when the request carries
// no text, and records a selection summary memo when it does.
func (s *Server) handleArticleSummarize(w http.ResponseWriter, r *http.Request, articleID string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SummarizeRequest
	if r.ContentLength != 0 && !s.decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Text) != "" {
		memo, err := s.svc.SummarizeSelection(r.Context(), articleID, req.Text)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, memo)
		return
	}

	article, err := s.svc.SummarizeBody(r.Context(), articleID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ArticleResponse{Article: article})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.CategoryListResponse{Categories: s.svc.Categories()})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SummarizeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	summary := s.svc.SummarizeText(r.Context(), req.Text)
	s.writeJSON(w, http.StatusOK, api.SummarizeResponse{Summary: summary})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors onto HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, archive.ErrTitleRequired),
		errors.Is(err, archive.ErrCategoryRequired),
		errors.Is(err, archive.ErrUnknownFormat):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
