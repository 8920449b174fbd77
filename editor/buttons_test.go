package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webstories/types"
)

func TestHeaderLayout(t *testing.T) {
	cases := []struct {
		name    string
		state   HeaderState
		buttons []Button
	}{
		{"draft", HeaderState{Status: types.StatusDraft}, []Button{ButtonPreview, ButtonUpdate, ButtonPublish}},
		{"published", HeaderState{Status: types.StatusPublish}, []Button{ButtonPreview, ButtonSwitchToDraft, ButtonUpdate}},
		{"pending", HeaderState{Status: types.StatusPending}, []Button{ButtonPreview, ButtonSwitchToDraft, ButtonUpdate}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.buttons, Header(c.state).Buttons)
		})
	}
}

func TestHeaderDialogAndSpinner(t *testing.T) {
	layout := Header(HeaderState{
		Status:             types.StatusPublish,
		StoryID:            "42",
		Link:               "https://example.com/web-stories/hello/",
		IsSaving:           true,
		IsFreshlyPublished: true,
	})

	assert.True(t, layout.ShowSpinner)
	assert.True(t, layout.Dialog.IsOpen)
	assert.Equal(t, "post-new.php?from-web-story=42", layout.Dialog.ConfirmURL)
	assert.Equal(t, "https://example.com/web-stories/hello/", layout.Dialog.StoryURL)

	assert.False(t, Header(HeaderState{Status: types.StatusDraft}).Dialog.IsOpen)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Save draft", Label(ButtonUpdate, types.StatusDraft))
	assert.Equal(t, "Update", Label(ButtonUpdate, types.StatusPublish))
	assert.Equal(t, "Switch to Draft", Label(ButtonSwitchToDraft, types.StatusPublish))
}
