// Package qa answers natural-language questions about a member from the message log.
package qa

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	nameWord  = `\p{Lu}[\p{L}\p{N}_'’\-]+`
	nameToken = `(` + nameWord + `(?:\s+` + nameWord + `)?)`
	// nameLead stands in for a word boundary that also holds before non-ASCII capitals.
	nameLead = `(?:^|[^\p{L}\p{N}_'’\-])`
)

// subjectStrategies are tried in order; the first usable candidate wins.
// opening marks strategies whose candidate may start with a sentence-opening question word.
var subjectStrategies = []struct {
	re      *regexp.Regexp
	opening bool
}{
	// "Amira's ..."
	{re: regexp.MustCompile(nameLead + nameToken + `(?:'s|’s)\b`), opening: true},
	// "does Vikram Desai ...", "is Layla ..."; the auxiliary is already consumed
	{re: regexp.MustCompile(`\b(?i:is|does|are)\s+` + nameToken)},
	// first capitalized token anywhere
	{re: regexp.MustCompile(nameLead + nameToken), opening: true},
}

// questionWords are capitalized only because they open a sentence.
var questionWords = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "who": {}, "whose": {}, "why": {}, "how": {}, "which": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "does": {}, "do": {}, "did": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "should": {}, "has": {}, "have": {},
	"tell": {}, "show": {}, "give": {}, "list": {}, "find": {}, "please": {}, "the": {},
	"i": {}, "any": {},
}

// ResolveSubject extracts the person a question is about.
func ResolveSubject(question string) (string, bool) {
	for _, st := range subjectStrategies {
		for _, loc := range st.re.FindAllStringSubmatchIndex(question, -1) {
			who := question[loc[2]:loc[3]]
			if st.opening && opensQuestion(question[:loc[2]]) {
				who = stripQuestionWords(who)
			}
			if who != "" {
				return who, true
			}
		}
	}
	return "", false
}

// opensQuestion reports whether nothing but punctuation or space precedes a candidate.
func opensQuestion(prefix string) bool {
	return strings.IndexFunc(prefix, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) < 0
}

func stripQuestionWords(candidate string) string {
	tokens := strings.Fields(candidate)
	for len(tokens) > 0 {
		base := strings.ToLower(tokens[0])
		base = strings.TrimSuffix(strings.TrimSuffix(base, "'s"), "’s")
		if _, ok := questionWords[base]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}
