package checklist

import (
	"fmt"

	"webstories/config"
)

// Copy is the title and footer text of a card.
type Copy struct {
	Title  string
	Footer []string
}

func linkTappableRegionCopy() Copy {
	return Copy{
		Title: "Increase the size of the tappable region of links",
		Footer: []string{fmt.Sprintf("Make linked elements at least %dx%d pixels so they are easy to tap",
			config.LinkTappableRegionMinWidth, config.LinkTappableRegionMinHeight)},
	}
}

func tooMuchPageTextCopy(max int) Copy {
	return Copy{
		Title: "Reduce the amount of text on the page",
		Footer: []string{
			fmt.Sprintf("Keep each page under %d characters", max),
			"Split long text across several pages",
			"Use visuals to carry part of the message",
		},
	}
}

func logoTooSmallCopy(min int) Copy {
	return Copy{
		Title: "Increase the size of the publisher logo",
		Footer: []string{
			fmt.Sprintf("Use a logo at least %dx%d pixels", min, min),
			"Prefer a square logo",
		},
	}
}

func storyMissingDescriptionCopy() Copy {
	return Copy{
		Title:  "Add a story description",
		Footer: []string{"A description helps search engines and readers understand what the story is about"},
	}
}

func storyPosterWrongRatioCopy(w, h int) Copy {
	return Copy{
		Title: "Fix the poster image aspect ratio",
		Footer: []string{
			fmt.Sprintf("Use a poster with a %d:%d aspect ratio", w, h),
			"Posters with the wrong ratio are cropped in story listings",
		},
	}
}

func storyTitleTooLongCopy(max int) Copy {
	return Copy{
		Title:  "Shorten the story title",
		Footer: []string{fmt.Sprintf("Keep the title under %d characters", max)},
	}
}
