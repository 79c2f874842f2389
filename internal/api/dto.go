package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/siteservice"
)

// SiteInfo is the externally configured site metadata (the contact address
// and the third-party scheduling URL are the only external endpoints).
type SiteInfo struct {
	Name          string `json:"name"`
	Tagline       string `json:"tagline,omitempty"`
	ContactEmail  string `json:"contact_email"`
	SchedulingURL string `json:"scheduling_url"`
}

// PostListItem is a lightweight item in a post list response.
type PostListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	ReadingTime string    `json:"reading_time"`
}

// PostListResponse wraps paginated post listings.
type PostListResponse struct {
	Posts []PostListItem `json:"posts"`
	Total int            `json:"total"`
}

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = siteservice.PostDetail

// VentureItem mirrors a venture with its display glyph resolved.
type VentureItem struct {
	content.Venture
	Glyph string `json:"glyph"`
}

// ContactRequest is the request body for the contact endpoint.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the contact submission.
func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// SearchResultItem is a single search hit in the API response.
type SearchResultItem struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
