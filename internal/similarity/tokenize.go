// Package similarity provides a lightweight text similarity for ranking job recommendations.
package similarity

import (
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to profile and job text.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "able": true,
	"an": true, "as": true, "at": true, "be": true, "by": true, "in": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "to": true,
	"we": true,
}

// Tokenize splits text into lowercase terms with their counts.
// Tech suffixes like "c++", "c#" and "node.js" survive because + # . count as word chars.
// Terms shorter than two characters and stop words are dropped.
func Tokenize(text string) map[string]int {
	terms := make(map[string]int)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 2 && !stopWords[w] {
			terms[w]++
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return terms
}
