package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// Status is the WordPress post status of a story.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusFuture  Status = "future"
	StatusPrivate Status = "private"
	StatusPublish Status = "publish"
)

// ElementType identifies what an element on a page renders.
type ElementType string

const (
	ElementText    ElementType = "text"
	ElementImage   ElementType = "image"
	ElementShape   ElementType = "shape"
	ElementGif     ElementType = "gif"
	ElementVideo   ElementType = "video"
	ElementSticker ElementType = "sticker"
	ElementProduct ElementType = "product"
)

// Story is the editor's view of a single web story.
type Story struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Status        Status  `json:"status"`
	Link          string  `json:"link,omitempty"`
	PublisherLogo *Media  `json:"publisherLogo,omitempty"`
	FeaturedMedia *Media  `json:"featuredMedia,omitempty"`
	Pages         []Page  `json:"pages"`
}

// Media is an attachment with known pixel dimensions.
type Media struct {
	ID     int    `json:"id,omitempty"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Page belongs to exactly one story.
type Page struct {
	ID       string    `json:"id"`
	Elements []Element `json:"elements"`
}

// Element belongs to exactly one page. Content holds the HTML of text elements.
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Content string      `json:"content,omitempty"`
	Link    *Link       `json:"link,omitempty"`
}

// Link is the outlink attached to an element.
type Link struct {
	URL  string `json:"url"`
	Desc string `json:"desc,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// ExcerptText returns the excerpt or "" when unset.
func (s *Story) ExcerptText() string {
	if s == nil || s.Excerpt == nil {
		return ""
	}
	return *s.Excerpt
}

// LinkURL returns the element's link URL or "" when the element has no link.
func (e *Element) LinkURL() string {
	if e == nil || e.Link == nil {
		return ""
	}
	return e.Link.URL
}

// GenerateID creates a short stable ID from a URL.
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
