package extract

import "regexp"

// placeClass is the character run accepted as a destination name.
const placeClass = `[A-Z][A-Za-z\s\-]+`

// tripFamilies are tried in order; each must expose "place" and "context" groups.
var tripFamilies = []struct {
	name string
	re   *regexp.Regexp
}{
	{
		name: "travel-to",
		re:   regexp.MustCompile(`(?i)\b(?:trip|going|travel(?:ling)?)\s+to\s+(?P<place>` + placeClass + `)\b(?P<context>[^.?!]*)`),
	},
	{
		name: "book-to-place",
		re:   regexp.MustCompile(`(?i)\b(?:book|reserve|arrange).+?\b(?:to|in)\s+(?P<place>` + placeClass + `)\b(?P<context>[^.?!]*)`),
	},
	{
		name: "book-for-period",
		re:   regexp.MustCompile(`(?i)\b(?:book|reserve|arrange).+?\bfor\s+(?P<context>[^.?!]*?)\s+in\s+(?P<place>` + placeClass + `)`),
	},
	{
		name: "period-in-place",
		re:   regexp.MustCompile(`(?i)\bfor\s+(?P<context>(?:the|a)?\s*(?:first|second|third|last)?\s*(?:weekend|week|month)\s*(?:of\s+[A-Z][a-z]+)?)\s+in\s+(?P<place>` + placeClass + `)`),
	},
}

const (
	monthAbbrev = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)`
	weekdays    = `mon|tue|wed|thu|fri|sat|sun|monday|tuesday|wednesday|thursday|friday|saturday|sunday`
)

// dateCue finds one explicit date token or phrase.
var dateCue = regexp.MustCompile(`(?i)(` +
	`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b|` +
	`\b` + monthAbbrev + `[a-z]*\.?\s+\d{1,2}(?:,\s*\d{4})?\b|` +
	`\b(?:today|tomorrow|this\s+(?:` + weekdays + `|week|month)|next\s+(?:week|month|` + weekdays + `))\b|` +
	`\b(?:first|second|third|last)\s+week(?:\s+of)?\s+` + monthAbbrev + `[a-z]*\b` +
	`)`)

// ordinalWeek catches "first week of <Word>" when the word is not a known month abbreviation.
var ordinalWeek = regexp.MustCompile(`(?i)\b(?:first|second|third|last)\s+week(?:\s+of)?\s+[A-Z][a-z]+`)

var periodWord = regexp.MustCompile(`(?i)\b(?:weekend|week|month)\b`)

// questionDestination reads "to <Capitalized Words>" from the question, case-sensitively.
var questionDestination = regexp.MustCompile(`\bto\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)

var carsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:have|own|got)\s+(?P<num>\d+)\s+cars?\b`),
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:\+?\d{1,2}[\s\-\.]?)?(?:\(?\d{3}\)?[\s\-\.]?)\d{3}[\s\-\.]?\d{4}\b`),
}

const restaurantListClass = `[A-Za-z0-9&'’\-.\s,]+`

var restaurantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfavou?rite restaurants?\s*(?:are|is|:)?\s*(?P<list>` + restaurantListClass + `)`),
	regexp.MustCompile(`(?i)\bI\s+love\s+eating\s+at\s+(?P<list>` + restaurantListClass + `)`),
}

var (
	leadingConjunction = regexp.MustCompile(`(?i)^(?:and|or)\s+`)
	startsUpper        = regexp.MustCompile(`^[A-Z]`)
)

var diningKeywords = []string{"dinner", "lunch", "restaurant", "reservation", "table", "tasting menu"}
