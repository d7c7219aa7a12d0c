// Package ranking scores chunk content against extracted query keywords.
package ranking

import (
	"math"
	"strings"
)

// Score computes the relevance of content to a keyword sequence. Each keyword
// occurrence in the query counts individually: a keyword found in the content
// adds ln(1+matches) to a raw score, the fraction of keywords that matched at
// least once scales it, and sqrt of the keyword count normalizes away query
// length. Returns 0 when keywords is empty or nothing matches.
func Score(content string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	contentLower := strings.ToLower(content)
	raw := 0.0
	matched := 0
	for _, kw := range keywords {
		count := CountWordOccurrences(contentLower, kw)
		if count == 0 {
			continue
		}
		matched++
		raw += math.Log(1 + float64(count))
	}

	coverage := float64(matched) / float64(len(keywords))
	return raw * coverage / math.Sqrt(float64(len(keywords)))
}

// CountWordOccurrences counts whole-word matches of word in text. A match
// flanked by a letter, digit, or underscore does not count, so "fox" is not
// found inside "foxes" or "fox_trot". Callers pass already-lowercased text
// and word.
func CountWordOccurrences(text, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	for start := 0; start <= len(text)-len(word); {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			break
		}
		pos := start + idx
		end := pos + len(word)
		prevIsWord := pos > 0 && isWordByte(text[pos-1])
		nextIsWord := end < len(text) && isWordByte(text[end])
		if !prevIsWord && !nextIsWord {
			count++
		}
		start = pos + 1
	}
	return count
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
