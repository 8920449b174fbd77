package editor

import (
	"fmt"
	"sync"

	"webstories/types"
)

// TipKey identifies a help center tip. The menu is not a tip but occupies
// the first slot of the navigation flow.
type TipKey string

const (
	TipMenu                 TipKey = "menu"
	TipAddBackgroundMedia   TipKey = "addBackgroundMedia"
	TipCropSelectedElements TipKey = "cropSelectedElements"
	TipSafeZone             TipKey = "safeZone"
	TipPreviewStory         TipKey = "previewStory"
	TipAddAnimation         TipKey = "addAnimation"
	TipAddLinks             TipKey = "addLinks"
	TipStoryChecklist       TipKey = "storyChecklist"
)

// Tip is a single page of the help center tour.
type Tip struct {
	Key         TipKey `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultTips is the tour shown in the editor.
var DefaultTips = []Tip{
	{TipAddBackgroundMedia, "Add background media", "Double-click an image or video to set it as the page background."},
	{TipCropSelectedElements, "Crop using double-click", "Double-click a selected image or video to crop or resize it."},
	{TipSafeZone, "Stay within the safe zone", "Keep text and links inside the dashed area so nothing is cut off."},
	{TipPreviewStory, "Preview your story", "Check how your story looks on different devices before publishing."},
	{TipAddAnimation, "Add animations", "Bring elements to life with entrance animations."},
	{TipAddLinks, "Add links", "Link any element to a URL; viewers can tap it to learn more."},
	{TipStoryChecklist, "Review the checklist", "Fix the issues flagged by the checklist before you publish."},
}

// HelpCenterState is a snapshot for rendering.
type HelpCenterState struct {
	IsOpen                  bool            `json:"isOpen"`
	NavigationFlow          []TipKey        `json:"navigationFlow"`
	NavigationIndex         int             `json:"navigationIndex"`
	CurrentTip              TipKey          `json:"currentTip"`
	Tip                     *Tip            `json:"tip,omitempty"`
	ReadTips                map[TipKey]bool `json:"readTips"`
	UnreadTipsCount         int             `json:"unreadTipsCount"`
	HasBottomNavigation     bool            `json:"hasBottomNavigation"`
	IsNextDisabled          bool            `json:"isNextDisabled"`
	IsPrevDisabled          bool            `json:"isPrevDisabled"`
	IsLeftToRightTransition bool            `json:"isLeftToRightTransition"`
}

// HelpCenter is the tour companion. Safe for concurrent use.
type HelpCenter struct {
	mu    sync.Mutex
	flow  []TipKey
	tips  map[TipKey]Tip
	open  bool
	index int
	read  map[TipKey]bool
	ltr   bool
}

// NewHelpCenter builds a closed help center positioned on the menu.
func NewHelpCenter(tips []Tip) *HelpCenter {
	if len(tips) == 0 {
		tips = DefaultTips
	}
	flow := make([]TipKey, 0, len(tips)+1)
	flow = append(flow, TipMenu)
	byKey := make(map[TipKey]Tip, len(tips))
	for _, t := range tips {
		flow = append(flow, t.Key)
		byKey[t.Key] = t
	}
	return &HelpCenter{
		flow: flow,
		tips: byKey,
		read: make(map[TipKey]bool),
		ltr:  true,
	}
}

// State returns a snapshot.
func (h *HelpCenter) State() HelpCenterState {
	h.mu.Lock()
	defer h.mu.Unlock()

	read := make(map[TipKey]bool, len(h.read))
	for k, v := range h.read {
		read[k] = v
	}
	last := len(h.flow) - 1
	var tip *Tip
	if t, ok := h.tips[h.flow[h.index]]; ok {
		tip = &t
	}

	return HelpCenterState{
		IsOpen:                  h.open,
		NavigationFlow:          append([]TipKey(nil), h.flow...),
		NavigationIndex:         h.index,
		CurrentTip:              h.flow[h.index],
		Tip:                     tip,
		ReadTips:                read,
		UnreadTipsCount:         len(h.tips) - len(h.read),
		HasBottomNavigation:     h.index > 0,
		IsNextDisabled:          h.index == 0 || h.index >= last,
		IsPrevDisabled:          h.index <= 1,
		IsLeftToRightTransition: h.ltr,
	}
}

func (h *HelpCenter) Toggle() {
	h.mu.Lock()
	h.open = !h.open
	h.mu.Unlock()
}

func (h *HelpCenter) Close() {
	h.mu.Lock()
	h.open = false
	h.mu.Unlock()
}

// GoToNext advances to the next tip; no-op on the menu or the last tip.
func (h *HelpCenter) GoToNext() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 || h.index >= len(h.flow)-1 {
		return
	}
	h.moveTo(h.index+1, true)
}

// GoToPrev steps back one tip; the first tip does not lead back to the menu.
func (h *HelpCenter) GoToPrev() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index <= 1 {
		return
	}
	h.moveTo(h.index-1, false)
}

func (h *HelpCenter) GoToMenu() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = 0
	h.ltr = false
}

// GoToTip jumps to key and marks it read.
func (h *HelpCenter) GoToTip(key TipKey) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.indexOf(key)
	if i <= 0 {
		return fmt.Errorf("unknown tip %q", key)
	}
	h.moveTo(i, true)
	return nil
}

// OpenToUnreadTip opens the help center on key unless it was already read.
// It reports whether the help center was opened.
func (h *HelpCenter) OpenToUnreadTip(key TipKey) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.indexOf(key)
	if i <= 0 || h.read[key] {
		return false
	}
	h.open = true
	h.moveTo(i, true)
	return true
}

// HandleStoryEvent opens the tip matching a media replacement.
func (h *HelpCenter) HandleStoryEvent(ev types.EventType) bool {
	switch ev {
	case types.EventReplaceBackgroundMedia:
		return h.OpenToUnreadTip(TipAddBackgroundMedia)
	case types.EventReplaceForegroundMedia:
		return h.OpenToUnreadTip(TipCropSelectedElements)
	}
	return false
}

// must hold lock
func (h *HelpCenter) moveTo(i int, ltr bool) {
	h.index = i
	h.ltr = ltr
	h.read[h.flow[i]] = true
}

// must hold lock
func (h *HelpCenter) indexOf(key TipKey) int {
	for i, k := range h.flow {
		if k == key {
			return i
		}
	}
	return -1
}
