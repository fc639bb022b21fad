// Package article provides the /api HTTP handlers: listing articles, marking
// one read, and triggering a fetch from the configured news feed.
package article

import "technews/internal/domain/entity"

// DTO is the JSON shape of one article.
type DTO struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title" example:"Go 1.23 released"`
	Description string `json:"description" example:"Release notes for Go 1.23"`
	URL         string `json:"url" example:"https://example.com/article/1"`
	Source      string `json:"source" example:"The Go Blog"`
	PublishedAt string `json:"publishedAt" example:"2025-10-26T10:00:00Z"`
	IsRead      bool   `json:"isRead" example:"false"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		IsRead:      a.IsRead,
	}
}

// ListResponse is returned by GET /api/articles.
type ListResponse struct {
	Success  bool  `json:"success"`
	Articles []DTO `json:"articles"`
}

// FetchResponse is returned by POST /api/fetch-news.
type FetchResponse struct {
	Success    bool   `json:"success"`
	Saved      int    `json:"saved"`
	Duplicates int    `json:"duplicates"`
	Message    string `json:"message,omitempty"`
}

// StatusResponse is returned by endpoints with nothing else to report.
type StatusResponse struct {
	Success bool `json:"success"`
}
