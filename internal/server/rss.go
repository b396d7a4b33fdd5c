package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/tkilaker/articles/internal/config"
	"github.com/tkilaker/articles/internal/database"
	"go.uber.org/zap"
)

const feedDescriptionLimit = 500

// GenerateRSSFeed creates an RSS feed from articles, newest first
func GenerateRSSFeed(articles []*database.Article, cfg *config.Config) (string, error) {
	link := strings.TrimRight(cfg.FeedLink, "/")

	feed := &feeds.Feed{
		Title:       cfg.FeedTitle,
		Link:        &feeds.Link{Href: link},
		Description: cfg.FeedDescription,
		Author:      &feeds.Author{Name: cfg.FeedAuthor},
		Created:     time.Now(),
	}

	// Articles arrive in ascending ID order
	feed.Items = make([]*feeds.Item, 0, len(articles))
	for i := len(articles) - 1; i >= 0; i-- {
		article := articles[i]
		href := fmt.Sprintf("%s/articles/%d", link, article.ID)
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       article.Title,
			Link:        &feeds.Link{Href: href},
			Id:          href,
			Author:      &feeds.Author{Name: article.Author},
			Description: truncate(article.Content, feedDescriptionLimit),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}

	return rss, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// handleRSS generates and serves the RSS feed
func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch articles for feed", zap.Error(err))
		http.Error(w, "Failed to fetch articles", http.StatusInternalServerError)
		return
	}

	feed, err := GenerateRSSFeed(articles, s.config)
	if err != nil {
		s.logger.Error("failed to generate feed", zap.Error(err))
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(feed))
}
