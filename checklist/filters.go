package checklist

import "webstories/types"

// PageElement is an element paired with the page that holds it.
type PageElement struct {
	PageID  string
	Element types.Element
}

// FilterStoryElements returns every element across all pages that matches
// pred, in page order then element order.
func FilterStoryElements(story *types.Story, pred func(*types.Element) bool) []PageElement {
	if story == nil {
		return nil
	}
	var out []PageElement
	for _, page := range story.Pages {
		for i := range page.Elements {
			if pred(&page.Elements[i]) {
				out = append(out, PageElement{PageID: page.ID, Element: page.Elements[i]})
			}
		}
	}
	return out
}

// FilterStoryPages returns the pages matching pred in their original order.
func FilterStoryPages(story *types.Story, pred func(*types.Page) bool) []types.Page {
	if story == nil {
		return nil
	}
	var out []types.Page
	for i := range story.Pages {
		if pred(&story.Pages[i]) {
			out = append(out, story.Pages[i])
		}
	}
	return out
}

// VisibleThumbnails returns at most max items from the front of items.
// A non-positive max keeps everything.
func VisibleThumbnails[T any](items []T, max int) []T {
	if max <= 0 || len(items) <= max {
		return items
	}
	return items[:max]
}
