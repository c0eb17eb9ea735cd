package forum

import (
	"sort"
	"strings"
)

// MaxSuggestions bounds the output of SuggestTags.
const MaxSuggestions = 5

// NormalizeTag trims and case-folds a tag. An empty result means "no tag".
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// TagVocabulary returns the sorted, deduplicated union of every question's tags.
func TagVocabulary(questions []Question) []string {
	seen := make(map[string]struct{})
	for _, q := range questions {
		for _, t := range q.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SuggestTags proposes vocabulary tags for a draft body. A tag matches when
// some lowercase word of content contains it or is contained in it. Tags in
// chosen are skipped and at most MaxSuggestions are returned, in vocabulary order.
func SuggestTags(content string, vocabulary, chosen []string) []string {
	words := strings.Fields(strings.ToLower(content))
	if len(words) == 0 {
		return []string{}
	}

	taken := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		taken[c] = struct{}{}
	}

	suggestions := make([]string, 0, MaxSuggestions)
	for _, tag := range vocabulary {
		if _, ok := taken[tag]; ok {
			continue
		}
		for _, w := range words {
			if strings.Contains(w, tag) || strings.Contains(tag, w) {
				suggestions = append(suggestions, tag)
				break
			}
		}
		if len(suggestions) == MaxSuggestions {
			break
		}
	}
	return suggestions
}
