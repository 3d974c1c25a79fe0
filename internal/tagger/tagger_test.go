package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestTagContent(t *testing.T) {
	tests := []struct {
		name             string
		input            Input
		wantCategories   []string
		wantContentType  string
		wantDurationCat  string
		wantTagsContains []string
	}{
		{
			name: "title keywords drive categories",
			input: Input{
				Title:    "MILF stepmom surprise",
				Duration: intPtr(45),
			},
			wantCategories:   []string{"milf", "stepmom"},
			wantContentType:  ContentTypeQuickie,
			wantDurationCat:  DurationMinute,
			wantTagsContains: []string{"milf", "stepmom"},
		},
		{
			name:            "empty metadata",
			input:           Input{},
			wantCategories:  []string{},
			wantContentType: ContentTypeStandard,
			wantDurationCat: DurationUnknown,
		},
		{
			name: "explicit quickie flag wins over long duration",
			input: Input{
				Title:     "Full scene",
				Duration:  intPtr(1800),
				IsQuickie: true,
			},
			wantCategories:  []string{},
			wantContentType: ContentTypeQuickie,
			wantDurationCat: DurationLong,
		},
		{
			name: "signal keyword marks quickie",
			input: Input{
				Title:    "Teaser for the new scene",
				Duration: intPtr(900),
			},
			wantCategories:  []string{},
			wantContentType: ContentTypeQuickie,
			wantDurationCat: DurationMedium,
		},
		{
			name: "pattern match with hyphenation",
			input: Input{
				Title:    "Step-Mom knows best",
				Duration: intPtr(600),
			},
			wantCategories:  []string{"stepmom"},
			wantContentType: ContentTypeStandard,
			wantDurationCat: DurationMedium,
		},
		{
			name: "description and tags are scanned too",
			input: Input{
				Title:       "Untitled",
				Description: "shot outdoors on the beach",
				Tags:        []string{"Amateur"},
				Duration:    intPtr(299),
			},
			wantCategories:   []string{"amateur", "outdoor"},
			wantContentType:  ContentTypeStandard,
			wantDurationCat:  DurationShort,
			wantTagsContains: []string{"amateur", "outdoor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TagContent(tt.input)

			assert.Equal(t, tt.wantCategories, got.Categories)
			assert.Equal(t, tt.wantContentType, got.ContentType)
			assert.Equal(t, tt.wantDurationCat, got.DurationCategory)
			for _, tag := range tt.wantTagsContains {
				assert.Contains(t, got.Tags, tag)
			}
		})
	}
}

func TestTagContentDeterministic(t *testing.T) {
	in := Input{
		Title:       "Amateur POV quickie outdoors",
		Description: "homemade clip",
		Tags:        []string{"pov", "Beach"},
		Duration:    intPtr(90),
	}

	first := TagContent(in)
	second := TagContent(in)
	assert.Equal(t, first, second)
}

func TestTagContentDeduplicatesTags(t *testing.T) {
	got := TagContent(Input{
		Title: "MILF milf MILF",
		Tags:  []string{"MILF", "milf", " Milf "},
	})

	require.Equal(t, []string{"milf"}, got.Categories)

	count := 0
	for _, tag := range got.Tags {
		if tag == "milf" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDurationBoundaries(t *testing.T) {
	tests := []struct {
		duration int
		want     string
	}{
		{60, DurationMinute},
		{61, DurationShort},
		{300, DurationShort},
		{301, DurationMedium},
		{1200, DurationMedium},
		{1201, DurationLong},
	}

	for _, tt := range tests {
		got := TagContent(Input{Title: "clip", Duration: intPtr(tt.duration)})
		assert.Equal(t, tt.want, got.DurationCategory, "duration %d", tt.duration)
	}
}

func TestQuickieDurationCutoff(t *testing.T) {
	atCutoff := TagContent(Input{Title: "clip", Duration: intPtr(120)})
	assert.Equal(t, ContentTypeQuickie, atCutoff.ContentType)

	overCutoff := TagContent(Input{Title: "clip", Duration: intPtr(121)})
	assert.Equal(t, ContentTypeStandard, overCutoff.ContentType)
}
