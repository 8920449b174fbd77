package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstories/config"
)

func TestParseAttributesDefaults(t *testing.T) {
	_, ok, err := ParseAttributes(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	attrs, ok, err := ParseAttributes(map[string]any{"blockType": TypeLatestStories, "numOfColumns": 3})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, attrs.NumOfColumns)
	assert.Equal(t, 5, attrs.NumOfStories)
	assert.Equal(t, "none", attrs.Align)
	assert.Equal(t, "View all stories", attrs.ArchiveLinkLabel)
	assert.Equal(t, 360, attrs.Width)
	assert.Equal(t, 600, attrs.Height)
}

func TestBuildQueryArgsSelected(t *testing.T) {
	args := BuildQueryArgs(Attributes{BlockType: TypeSelectedStories, Stories: []int{5, 1, 3}, Order: "asc", NumOfStories: 2})

	assert.Equal(t, QueryArgs{
		PostType:    config.StoryPostType,
		PostStatus:  "publish",
		NoFoundRows: true,
		PostIn:      []int{5, 1, 3},
		OrderBy:     OrderByPostIn,
	}, args)
}

func TestBuildQueryArgsDynamic(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  QueryArgs
	}{
		{
			name:  "title order",
			attrs: Attributes{BlockType: TypeLatestStories, NumOfStories: 3, OrderBy: "title", Order: "asc", Authors: []int{4}},
			want:  QueryArgs{PostsPerPage: 3, Order: "ASC", OrderBy: OrderByPostTitle, AuthorIn: []int{4}},
		},
		{
			name:  "date order by default",
			attrs: Attributes{BlockType: TypeLatestStories, NumOfStories: 5, Order: "desc"},
			want:  QueryArgs{PostsPerPage: 5, Order: "DESC", OrderBy: OrderByPostDate},
		},
		{
			name:  "selected without stories falls back to a dynamic query",
			attrs: Attributes{BlockType: TypeSelectedStories},
			want:  QueryArgs{OrderBy: OrderByPostDate},
		},
		{
			name:  "capped at max stories",
			attrs: Attributes{BlockType: TypeLatestStories, NumOfStories: 50},
			want:  QueryArgs{PostsPerPage: config.MaxNumOfStories, OrderBy: OrderByPostDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.PostType = config.StoryPostType
			tt.want.PostStatus = "publish"
			tt.want.NoFoundRows = true
			assert.Equal(t, tt.want, BuildQueryArgs(tt.attrs))
		})
	}
}

func TestMappedFieldStates(t *testing.T) {
	got := MappedFieldStates(Attributes{FieldState: map[string]bool{
		"show_title":         true,
		"show_sharp_corners": true,
		"sharp_corners":      false,
	}})

	assert.Equal(t, FieldStates{ShowTitle: true, SharpCorners: true}, got)
	assert.Equal(t, FieldStates{}, MappedFieldStates(Attributes{}))
}

func TestParseAttributesRoundsNumbers(t *testing.T) {
	attrs, ok, err := ParseAttributes(map[string]any{"width": 360.5, "height": 599.4, "circleSize": float32(95.7)})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 361, attrs.Width)
	assert.Equal(t, 599, attrs.Height)
	assert.Equal(t, 96, attrs.CircleSize)
}
