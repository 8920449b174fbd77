package checklist

// Category groups checks in the checklist panel.
type Category string

const (
	CategoryPriority      Category = "priority"
	CategoryDesign        Category = "design"
	CategoryAccessibility Category = "accessibility"
)

// categoryOrder is the order cards are listed in.
var categoryOrder = map[Category]int{
	CategoryPriority:      0,
	CategoryDesign:        1,
	CategoryAccessibility: 2,
}

// CardType tells the panel whether one or several entities are at fault.
type CardType string

const (
	CardSingleIssue   CardType = "single"
	CardMultipleIssue CardType = "multiple"
)

// ThumbnailKind is what a thumbnail previews.
type ThumbnailKind string

const (
	ThumbnailElement ThumbnailKind = "element"
	ThumbnailPage    ThumbnailKind = "page"
)

// Thumbnail is a clickable preview of one offending entity.
type Thumbnail struct {
	Kind   ThumbnailKind `json:"kind"`
	ID     string        `json:"id"`
	PageID string        `json:"pageId,omitempty"`
	Label  string        `json:"label"`
	Action Highlight     `json:"action"`
}

// Card is the rendered notification of a failing check.
type Card struct {
	Check          string      `json:"check"`
	Category       Category    `json:"category"`
	Title          string      `json:"title"`
	Type           CardType    `json:"type"`
	Footer         []string    `json:"footer"`
	ThumbnailCount int         `json:"thumbnailCount,omitempty"`
	Thumbnails     []Thumbnail `json:"thumbnails,omitempty"`
	TitleAction    *Highlight  `json:"titleAction,omitempty"`
}

// Actions returns every highlight the card can dispatch, title first.
func (c *Card) Actions() []Highlight {
	var out []Highlight
	if c.TitleAction != nil {
		out = append(out, *c.TitleAction)
	}
	for _, t := range c.Thumbnails {
		out = append(out, t.Action)
	}
	return out
}

func cardTypeFor(n int) CardType {
	if n > 1 {
		return CardMultipleIssue
	}
	return CardSingleIssue
}
