package block

import (
	"fmt"
	"strings"

	"webstories/config"
)

// View types of a story listing.
const (
	ViewCircles  = "circles"
	ViewGrid     = "grid"
	ViewList     = "list"
	ViewCarousel = "carousel"
)

// FieldState is whether a listing field is shown and whether the editor may
// toggle it.
type FieldState struct {
	Show     bool `json:"show"`
	Readonly bool `json:"readonly"`
}

// ScriptSettings is handed to the block editor script.
type ScriptSettings struct {
	PublicPath string       `json:"publicPath"`
	Config     EditorConfig `json:"config"`
}

type EditorConfig struct {
	MaxNumOfStories int                              `json:"maxNumOfStories"`
	EditStoryURL    string                           `json:"editStoryURL"`
	ArchiveURL      string                           `json:"archiveURL"`
	API             APIPaths                         `json:"api"`
	FieldStates     map[string]map[string]FieldState `json:"fieldStates"`
}

type APIPaths struct {
	Stories string `json:"stories"`
	Users   string `json:"users"`
}

// ArchiveURL returns the story archive of the site.
func ArchiveURL(site config.SiteConfig) string {
	return strings.TrimRight(site.URL, "/") + "/" + config.StoryRestBase + "/"
}

// Settings builds the editor script settings for site.
func Settings(site config.SiteConfig) ScriptSettings {
	base := strings.TrimRight(site.URL, "/")
	return ScriptSettings{
		PublicPath: site.PublicPath,
		Config: EditorConfig{
			MaxNumOfStories: config.MaxNumOfStories,
			EditStoryURL:    base + "/wp-admin/post.php?action=edit",
			ArchiveURL:      ArchiveURL(site),
			API: APIPaths{
				Stories: fmt.Sprintf("/web-stories/v1/%s", config.StoryRestBase),
				Users:   "/web-stories/v1/users/",
			},
			FieldStates: ViewFieldStates(),
		},
	}
}

// ViewFieldStates returns the field defaults of every view type.
func ViewFieldStates() map[string]map[string]FieldState {
	fields := []string{"title", "excerpt", "author", "date", "image_alignment", "sharp_corners", "archive_link"}
	out := make(map[string]map[string]FieldState, 4)
	for _, view := range []string{ViewCircles, ViewGrid, ViewList, ViewCarousel} {
		states := make(map[string]FieldState, len(fields))
		for _, f := range fields {
			states[f] = fieldState(view, f)
		}
		out[view] = states
	}
	return out
}

func fieldState(view, field string) FieldState {
	switch field {
	case "title", "archive_link":
		return FieldState{Show: true}
	case "excerpt":
		return FieldState{Show: view == ViewList, Readonly: view != ViewList}
	case "author", "date":
		return FieldState{Show: view != ViewCircles, Readonly: view == ViewCircles}
	case "image_alignment":
		return FieldState{Show: view == ViewList, Readonly: view != ViewList}
	case "sharp_corners":
		return FieldState{Readonly: view == ViewCircles}
	}
	return FieldState{}
}
