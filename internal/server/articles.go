package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tkilaker/articles/internal/database"
	"go.uber.org/zap"
)

const (
	msgFieldsRequired  = "All fields are required."
	msgCreateFailed    = "Failed to create article."
	msgNoArticles      = "No articles found."
	msgListFailed      = "Failed to fetch articles."
	msgNotFound        = "Article not found."
	msgInvalidID       = "Invalid article ID."
	msgInvalidBody     = "Invalid request body."
	msgUpdated         = "Article updated successfully."
	msgDeleted         = "Article deleted successfully."
	msgUpdateFailedFmt = "Failed to update article: %v"
	msgDeleteFailedFmt = "Failed to delete article: %v"
)

type messageResponse struct {
	Message string `json:"message"`
}

type articleMessageResponse struct {
	Message string            `json:"message"`
	Article *database.Article `json:"article"`
}

type createArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (req *createArticleRequest) complete() bool {
	return req.Title != "" && req.Content != "" && req.Author != ""
}

type updateArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// toUpdate maps the request onto a partial update. Empty strings count as
// omitted so a patch can never blank out a required column.
func (req *updateArticleRequest) toUpdate() database.ArticleUpdate {
	return database.ArticleUpdate{
		Title:   nonEmpty(req.Title),
		Content: nonEmpty(req.Content),
		Author:  nonEmpty(req.Author),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respond(w, r, status, messageResponse{Message: msg})
}

// handleCreateArticle stores a new article. All three fields are required.
func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil || !req.complete() {
		s.logger.Warn("rejected create request", zap.Error(err))
		respondMessage(w, r, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	article, err := s.store.CreateArticle(r.Context(), req.Title, req.Content, req.Author)
	if err != nil {
		s.logger.Error("failed to create article", zap.Error(err))
		respondMessage(w, r, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	respond(w, r, http.StatusCreated, article)
}

// handleListArticles returns every article. An empty table is reported as 404.
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		s.logger.Error("failed to list articles", zap.Error(err))
		respondMessage(w, r, http.StatusInternalServerError, msgListFailed)
		return
	}

	if len(articles) == 0 {
		s.logger.Info("no articles found")
		respondMessage(w, r, http.StatusNotFound, msgNoArticles)
		return
	}

	respond(w, r, http.StatusOK, articles)
}

// handleUpdateArticle applies a partial update to one article
func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.articleID(w, r)
	if !ok {
		return
	}

	var req updateArticleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("rejected update request", zap.Int64("id", id), zap.Error(err))
		respondMessage(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	article, err := s.store.UpdateArticle(r.Context(), id, req.toUpdate())
	if errors.Is(err, database.ErrArticleNotFound) {
		s.logger.Info("article not found", zap.Int64("id", id))
		respondMessage(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to update article", zap.Int64("id", id), zap.Error(err))
		respondMessage(w, r, http.StatusInternalServerError, fmt.Sprintf(msgUpdateFailedFmt, err))
		return
	}

	respond(w, r, http.StatusOK, articleMessageResponse{Message: msgUpdated, Article: article})
}

// handleDeleteArticle removes one article and echoes it back
func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.articleID(w, r)
	if !ok {
		return
	}

	article, err := s.store.DeleteArticle(r.Context(), id)
	if errors.Is(err, database.ErrArticleNotFound) {
		s.logger.Info("article not found", zap.Int64("id", id))
		respondMessage(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to delete article", zap.Int64("id", id), zap.Error(err))
		respondMessage(w, r, http.StatusInternalServerError, fmt.Sprintf(msgDeleteFailedFmt, err))
		return
	}

	respond(w, r, http.StatusOK, articleMessageResponse{Message: msgDeleted, Article: article})
}

// articleID parses the {id} path parameter, writing a 400 if it is not a
// positive integer.
func (s *Server) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		s.logger.Warn("invalid article id", zap.String("id", idStr))
		respondMessage(w, r, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}
