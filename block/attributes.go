package block

import (
	"encoding/json"
	"fmt"
	"math"
)

// Block types that list stories instead of embedding one.
const (
	TypeLatestStories   = "latest-stories"
	TypeSelectedStories = "selected-stories"
)

// Attributes are the saved attributes of a Web Stories block.
type Attributes struct {
	BlockType        string          `json:"blockType"`
	URL              string          `json:"url"`
	Title            string          `json:"title"`
	Poster           string          `json:"poster"`
	Width            int             `json:"width"`
	Height           int             `json:"height"`
	Align            string          `json:"align"`
	Stories          []int           `json:"stories"`
	ViewType         string          `json:"viewType"`
	NumOfStories     int             `json:"numOfStories"`
	NumOfColumns     int             `json:"numOfColumns"`
	CircleSize       int             `json:"circleSize"`
	ImageAlignment   int             `json:"imageAlignment"`
	OrderBy          string          `json:"orderby"`
	Order            string          `json:"order"`
	ArchiveLinkLabel string          `json:"archiveLinkLabel"`
	Authors          []int           `json:"authors"`
	FieldState       map[string]bool `json:"fieldState"`
}

// DefaultAttributes returns the registered attribute defaults.
func DefaultAttributes() Attributes {
	return Attributes{
		Title:            "Web Story",
		Width:            360,
		Height:           600,
		Align:            "none",
		Stories:          []int{},
		NumOfStories:     5,
		NumOfColumns:     2,
		CircleSize:       96,
		ImageAlignment:   96,
		ArchiveLinkLabel: "View all stories",
		Authors:          []int{},
		FieldState:       map[string]bool{},
	}
}

// ParseAttributes fills the defaults with raw block attributes. It reports
// false for a nil or empty map, in which case nothing should render.
func ParseAttributes(raw map[string]any) (Attributes, bool, error) {
	attrs := DefaultAttributes()
	if len(raw) == 0 {
		return attrs, false, nil
	}
	data, err := json.Marshal(roundNumbers(raw))
	if err != nil {
		return attrs, false, fmt.Errorf("failed to encode block attributes: %w", err)
	}
	if err := json.Unmarshal(data, &attrs); err != nil {
		return attrs, false, fmt.Errorf("invalid block attributes: %w", err)
	}
	return attrs, true, nil
}

// numberFields are the attributes the editor saves as plain numbers.
var numberFields = []string{"width", "height", "numOfStories", "numOfColumns", "circleSize", "imageAlignment"}

// roundNumbers returns a copy of raw with fractional number fields rounded
// to the nearest integer.
func roundNumbers(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range numberFields {
		switch n := out[k].(type) {
		case float64:
			out[k] = int(math.Round(n))
		case float32:
			out[k] = int(math.Round(float64(n)))
		case json.Number:
			if f, err := n.Float64(); err == nil {
				out[k] = int(math.Round(f))
			}
		}
	}
	return out
}

// IsListing reports whether the block lists stories from a query.
func (a Attributes) IsListing() bool {
	return a.BlockType == TypeLatestStories || a.BlockType == TypeSelectedStories
}

// FieldStates is the visibility of each optional story field in a listing.
type FieldStates struct {
	ShowTitle       bool `json:"show_title"`
	ShowAuthor      bool `json:"show_author"`
	ShowExcerpt     bool `json:"show_excerpt"`
	ShowDate        bool `json:"show_date"`
	ShowArchiveLink bool `json:"show_archive_link"`
	SharpCorners    bool `json:"sharp_corners"`
}

// MappedFieldStates reads each control from fieldState["show_<field>"],
// defaulting to false.
func MappedFieldStates(a Attributes) FieldStates {
	fs := a.FieldState
	return FieldStates{
		ShowTitle:       fs["show_title"],
		ShowAuthor:      fs["show_author"],
		ShowExcerpt:     fs["show_excerpt"],
		ShowDate:        fs["show_date"],
		ShowArchiveLink: fs["show_archive_link"],
		SharpCorners:    fs["show_sharp_corners"],
	}
}

// StoryAttributes are the display options handed to a story listing.
type StoryAttributes struct {
	Align            string `json:"align"`
	ViewType         string `json:"view_type"`
	ArchiveLinkLabel string `json:"archive_link_label"`
	CircleSize       int    `json:"circle_size"`
	ImageAlignment   int    `json:"image_alignment"`
	NumberOfColumns  int    `json:"number_of_columns"`
	FieldStates
}

func storyAttributes(a Attributes) StoryAttributes {
	return StoryAttributes{
		Align:            a.Align,
		ViewType:         a.ViewType,
		ArchiveLinkLabel: a.ArchiveLinkLabel,
		CircleSize:       a.CircleSize,
		ImageAlignment:   a.ImageAlignment,
		NumberOfColumns:  a.NumOfColumns,
		FieldStates:      MappedFieldStates(a),
	}
}
