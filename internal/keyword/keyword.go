// Package keyword turns free text into a filtered sequence of lowercase
// keyword tokens used for chunk scoring.
package keyword

import (
	"strings"
	"unicode"
)

// Extract returns the keyword tokens of query: lowercased, punctuation
// replaced by spaces, split on whitespace, with short tokens and stop words
// removed. Order is preserved and duplicates are kept, so a repeated query
// word weighs more than a single occurrence downstream.
func Extract(query string) []string {
	lowered := strings.ToLower(query)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if isWordChar(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if IsStopWord(word) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// IsStopWord reports whether the (already lowercased) token is in the stop list.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// isWordChar matches the ASCII word-character class. Anything else that is
// not whitespace becomes a token separator.
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9')
}

// stopWords holds tokens that carry no retrieval signal in conversational
// queries. Tokens of length <= 2 are dropped before lookup, so the set only
// lists longer words.
var stopWords = map[string]struct{}{
	// pronouns
	"you": {}, "she": {}, "him": {}, "her": {}, "his": {}, "hers": {},
	"its": {}, "our": {}, "ours": {}, "they": {}, "them": {}, "their": {},
	"theirs": {}, "mine": {}, "yours": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "who": {}, "whom": {}, "whose": {},
	"which": {}, "what": {}, "myself": {}, "yourself": {}, "himself": {},
	"herself": {}, "itself": {}, "ourselves": {}, "yourselves": {},
	"themselves": {}, "anybody": {}, "anyone": {}, "anything": {},
	"everybody": {}, "everyone": {}, "everything": {}, "somebody": {},
	"someone": {}, "something": {}, "nobody": {}, "nothing": {},

	// articles and determiners
	"the": {}, "all": {}, "any": {}, "both": {}, "each": {}, "few": {},
	"many": {}, "more": {}, "most": {}, "much": {}, "other": {},
	"some": {}, "such": {}, "own": {}, "same": {},

	// auxiliary and linking verbs
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "having": {}, "does": {},
	"did": {}, "doing": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "can": {}, "could": {}, "may": {}, "might": {},
	"must": {},

	// prepositions, conjunctions, adverbial filler
	"and": {}, "but": {}, "nor": {}, "for": {}, "yet": {}, "not": {},
	"too": {}, "very": {}, "just": {}, "than": {}, "then": {},
	"once": {}, "here": {}, "there": {}, "where": {}, "when": {},
	"why": {}, "how": {}, "again": {}, "further": {}, "about": {},
	"above": {}, "after": {}, "against": {}, "before": {}, "below": {},
	"between": {}, "during": {}, "into": {}, "onto": {}, "off": {},
	"out": {}, "over": {}, "under": {}, "until": {}, "upon": {},
	"with": {}, "within": {}, "without": {}, "because": {},
	"while": {}, "through": {}, "also": {}, "else": {}, "ever": {},
	"even": {}, "only": {}, "still": {}, "though": {}, "although": {},

	// conversational filler
	"tell": {}, "explain": {}, "show": {}, "describe": {}, "give": {},
	"know": {}, "want": {}, "need": {}, "like": {}, "please": {},
	"say": {}, "said": {}, "ask": {}, "asked": {}, "talk": {},
	"let": {}, "make": {}, "think": {}, "see": {}, "look": {},
	"find": {}, "help": {}, "hello": {}, "thanks": {}, "thank": {},
	"okay": {}, "yes": {}, "yeah": {}, "sure": {}, "maybe": {},
	"really": {},
}
