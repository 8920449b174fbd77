package editor

import (
	"net/url"

	"webstories/types"
)

// Button is one of the header actions.
type Button string

const (
	ButtonPreview       Button = "preview"
	ButtonUpdate        Button = "update"
	ButtonSwitchToDraft Button = "switchToDraft"
	ButtonPublish       Button = "publish"
)

// HeaderState is the slice of story state the header reads.
type HeaderState struct {
	Status             types.Status `json:"status"`
	StoryID            string       `json:"storyId"`
	Link               string       `json:"link"`
	IsSaving           bool         `json:"isSaving"`
	IsFreshlyPublished bool         `json:"isFreshlyPublished"`
}

// PostPublishDialog is shown once right after a story is published.
type PostPublishDialog struct {
	IsOpen     bool   `json:"isOpen"`
	ConfirmURL string `json:"confirmURL"`
	StoryURL   string `json:"storyURL"`
}

// HeaderLayout is what the header renders for a given state.
type HeaderLayout struct {
	Buttons     []Button          `json:"buttons"`
	ShowSpinner bool              `json:"showSpinner"`
	Dialog      PostPublishDialog `json:"dialog"`
}

// Header lays out the header buttons. Drafts get save and publish; anything
// else gets switch-to-draft and update.
func Header(state HeaderState) HeaderLayout {
	isDraft := state.Status == types.StatusDraft

	buttons := []Button{ButtonPreview}
	if isDraft {
		buttons = append(buttons, ButtonUpdate, ButtonPublish)
	} else {
		buttons = append(buttons, ButtonSwitchToDraft, ButtonUpdate)
	}

	return HeaderLayout{
		Buttons:     buttons,
		ShowSpinner: state.IsSaving,
		Dialog: PostPublishDialog{
			IsOpen:     state.IsFreshlyPublished,
			ConfirmURL: confirmURL(state.StoryID),
			StoryURL:   state.Link,
		},
	}
}

// Label returns the visible text of a button.
func Label(b Button, status types.Status) string {
	switch b {
	case ButtonPreview:
		return "Preview"
	case ButtonPublish:
		return "Publish"
	case ButtonSwitchToDraft:
		return "Switch to Draft"
	case ButtonUpdate:
		if status == types.StatusDraft {
			return "Save draft"
		}
		return "Update"
	default:
		return string(b)
	}
}

func confirmURL(storyID string) string {
	q := url.Values{}
	q.Set("from-web-story", storyID)
	return "post-new.php?" + q.Encode()
}
