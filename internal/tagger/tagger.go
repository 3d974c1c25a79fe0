// Package tagger infers categories, tags and a coarse content classification
// from a video's text metadata. TagContent is a pure function: no I/O, no
// shared mutable state, same output for the same input.
package tagger

import "strings"

const (
	ContentTypeQuickie  = "quickie"
	ContentTypeStandard = "standard"

	DurationMinute  = "minute"
	DurationShort   = "short"
	DurationMedium  = "medium"
	DurationLong    = "long"
	DurationUnknown = "unknown"
)

// quickieMaxDuration is the short-form cutoff in seconds.
const quickieMaxDuration = 120

type Input struct {
	Title       string
	Description string
	Tags        []string
	// Duration is in seconds; nil means unknown. Callers validate
	// non-negative durations before tagging; zero or negative values are
	// treated as present-but-tiny.
	Duration  *int
	IsQuickie bool
}

type Result struct {
	Categories       []string
	Tags             []string
	ContentType      string
	DurationCategory string
}

// TagContent classifies a video from its text metadata. Detected categories
// come from the registry; the tag set is the union of the caller's tags, the
// detected category names and the keywords that matched, deduplicated
// case-insensitively.
func TagContent(in Input) Result {
	blob := strings.ToLower(in.Title + " " + in.Description + " " + strings.Join(in.Tags, " "))

	categories := []string{}
	tags := []string{}
	seen := map[string]bool{}

	addTag := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, t := range in.Tags {
		addTag(t)
	}

	for _, cat := range registry {
		matched, keyword := matchCategory(blob, cat)
		if !matched {
			continue
		}
		categories = append(categories, cat.Name)
		addTag(cat.Name)
		if keyword != "" {
			addTag(keyword)
		}
	}

	return Result{
		Categories:       categories,
		Tags:             tags,
		ContentType:      contentType(blob, in),
		DurationCategory: durationCategory(in.Duration),
	}
}

// matchCategory reports whether the category matched and which keyword hit,
// if any.
func matchCategory(blob string, cat Category) (bool, string) {
	for _, kw := range cat.Keywords {
		if strings.Contains(blob, kw) {
			return true, kw
		}
	}
	for _, p := range cat.Patterns {
		if p.MatchString(blob) {
			return true, ""
		}
	}
	return false, ""
}

func contentType(blob string, in Input) string {
	if in.IsQuickie {
		return ContentTypeQuickie
	}
	if in.Duration != nil && *in.Duration <= quickieMaxDuration {
		return ContentTypeQuickie
	}
	for _, kw := range quickieSignals.Keywords {
		if strings.Contains(blob, kw) {
			return ContentTypeQuickie
		}
	}
	for _, p := range quickieSignals.Patterns {
		if p.MatchString(blob) {
			return ContentTypeQuickie
		}
	}
	return ContentTypeStandard
}

func durationCategory(duration *int) string {
	if duration == nil {
		return DurationUnknown
	}
	switch d := *duration; {
	case d <= 60:
		return DurationMinute
	case d <= 300:
		return DurationShort
	case d <= 1200:
		return DurationMedium
	default:
		return DurationLong
	}
}
