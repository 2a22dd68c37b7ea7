package internal

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultTopicLimit caps how many keywords the topics summary reports
const DefaultTopicLimit = 10

// minTopicCount filters out words that appear only once; a single mention
// is not a theme
const minTopicCount = 2

// minTopicWordLen skips short function words and operators outright
const minTopicWordLen = 4

// TopicCount is one ranked keyword from the topics summary
type TopicCount struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Count   int    `json:"count" yaml:"count"`
}

// topicStopwords are common English function words that carry no topical
// signal. Domain words are deliberately left in; in a development chat
// they are the topics.
var topicStopwords = map[string]bool{
	"about": true, "after": true, "again": true, "also": true,
	"been": true, "before": true, "being": true, "between": true,
	"both": true, "cannot": true, "could": true, "does": true,
	"doing": true, "down": true, "each": true, "from": true,
	"have": true, "having": true, "here": true, "into": true,
	"just": true, "like": true, "more": true, "most": true,
	"need": true, "only": true, "other": true, "over": true,
	"same": true, "should": true, "some": true, "somehow": true,
	"such": true, "than": true, "that": true, "their": true,
	"them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true,
	"under": true, "very": true, "want": true, "well": true,
	"were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "will": true, "with": true,
	"would": true, "your": true,
}

// ExtractTopics aggregates keyword frequencies across all message text and
// returns the top keywords, most frequent first and alphabetical within a
// tie so that identical input always ranks identically.
func ExtractTopics(sessions []ChatSession, limit int) []TopicCount {
	if limit <= 0 {
		limit = DefaultTopicLimit
	}

	counts := make(map[string]int)
	for i := range sessions {
		for _, m := range sessions[i].Messages {
			countWords(m.Text, counts)
		}
	}

	topics := make([]TopicCount, 0, len(counts))
	for word, count := range counts {
		if count < minTopicCount {
			continue
		}
		topics = append(topics, TopicCount{Keyword: word, Count: count})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Keyword < topics[j].Keyword
	})

	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

func countWords(text string, counts map[string]int) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		word = strings.ToLower(word)
		if len(word) < minTopicWordLen || topicStopwords[word] {
			continue
		}
		counts[word]++
	}
}
