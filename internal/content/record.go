package content

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

// Post is a parsed blog post.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Published   bool      `json:"published"`
	Featured    bool      `json:"featured"`
	Body        string    `json:"-"`
}

// Experience is a parsed work-experience entry.
type Experience struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Order        *int     `json:"order,omitempty"`
	Body         string   `json:"-"`
}

// Venture is a parsed venture (project showcase) entry.
type Venture struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         Icon     `json:"icon"`
	Status       string   `json:"status"`
	Technologies []string `json:"technologies"`
	Order        *int     `json:"order,omitempty"`
	Featured     bool     `json:"featured"`
	Body         string   `json:"-"`
}

// Per-category header shapes. Each one is validated fail-fast so a load
// error names the offending field, never an unchecked type assertion.

type postHeader struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Author      string   `yaml:"author"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Published   *bool    `yaml:"published"`
	Featured    bool     `yaml:"featured"`
}

func (h postHeader) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required),
		validation.Field(&h.Description, validation.Required),
		validation.Field(&h.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&h.Author, validation.Required),
		validation.Field(&h.Category, validation.Required),
		validation.Field(&h.Tags, validation.Required),
	)
}

type experienceHeader struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	StartDate    string   `yaml:"startDate"`
	EndDate      string   `yaml:"endDate"`
	Current      *bool    `yaml:"current"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Order        *int     `yaml:"order"`
}

func (h experienceHeader) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required),
		validation.Field(&h.Company, validation.Required),
		validation.Field(&h.StartDate, validation.Required),
		validation.Field(&h.EndDate, validation.Required),
		validation.Field(&h.Current, validation.NotNil),
		validation.Field(&h.Description, validation.Required),
		validation.Field(&h.Technologies, validation.Required),
		validation.Field(&h.Order, validation.Min(0)),
	)
}

type ventureHeader struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Icon         string   `yaml:"icon"`
	Status       string   `yaml:"status"`
	Technologies []string `yaml:"technologies"`
	Order        *int     `yaml:"order"`
	Featured     bool     `yaml:"featured"`
}

func (h ventureHeader) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required),
		validation.Field(&h.Description, validation.Required),
		validation.Field(&h.Icon, validation.Required),
		validation.Field(&h.Status, validation.Required),
		validation.Field(&h.Technologies, validation.Required),
		validation.Field(&h.Order, validation.Min(0)),
	)
}

// DecodePost parses and validates one blog post file.
func DecodePost(slug string, data []byte) (*Post, error) {
	header, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	var h postHeader
	if err := decodeHeader(header, &h); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, h.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	published := h.Published == nil || *h.Published
	return &Post{
		Slug:        slug,
		Title:       h.Title,
		Description: h.Description,
		Date:        date,
		Author:      h.Author,
		Category:    h.Category,
		Tags:        h.Tags,
		Published:   published,
		Featured:    h.Featured,
		Body:        body,
	}, nil
}

// DecodeExperience parses and validates one experience file.
func DecodeExperience(slug string, data []byte) (*Experience, error) {
	header, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	var h experienceHeader
	if err := decodeHeader(header, &h); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &Experience{
		Slug:         slug,
		Title:        h.Title,
		Company:      h.Company,
		StartDate:    h.StartDate,
		EndDate:      h.EndDate,
		Current:      *h.Current,
		Description:  h.Description,
		Technologies: h.Technologies,
		Order:        h.Order,
		Body:         body,
	}, nil
}

// DecodeVenture parses and validates one venture file. Unrecognized icon
// names degrade to the fallback icon rather than failing the record.
func DecodeVenture(slug string, data []byte) (*Venture, error) {
	header, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	var h ventureHeader
	if err := decodeHeader(header, &h); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &Venture{
		Slug:         slug,
		Title:        h.Title,
		Description:  h.Description,
		Icon:         ParseIcon(h.Icon),
		Status:       h.Status,
		Technologies: h.Technologies,
		Order:        h.Order,
		Featured:     h.Featured,
		Body:         body,
	}, nil
}
