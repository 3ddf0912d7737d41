package extract

import "strings"

// Normalizer resolves a date phrase relative to a message timestamp.
type Normalizer interface {
	Normalize(raw, refTimestamp string) (string, bool)
}

// Extractor runs the trip extractor. It holds no per-request state.
type Extractor struct {
	dates Normalizer
}

// New returns an Extractor; a nil dates uses a wall-clock DateNormalizer.
func New(dates Normalizer) *Extractor {
	if dates == nil {
		dates = NewDateNormalizer(nil)
	}
	return &Extractor{dates: dates}
}

// Destination returns the place named in a question as "to <Capitalized Words>".
func Destination(question string) (string, bool) {
	m := questionDestination.FindStringSubmatch(question)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Trip finds a trip date in text. targetPlace, when set, must appear in the matched place.
// The first family with an acceptable match and a date wins.
func (x *Extractor) Trip(text, targetPlace, timestamp string) (string, bool) {
	target := strings.ToLower(targetPlace)

	for _, fam := range tripFamilies {
		placeIdx := fam.re.SubexpIndex("place")
		contextIdx := fam.re.SubexpIndex("context")

		for _, m := range fam.re.FindAllStringSubmatch(text, -1) {
			place := strings.TrimSpace(m[placeIdx])
			if target != "" && place != "" && !strings.Contains(strings.ToLower(place), target) {
				continue
			}
			if when, ok := x.tripDate(m[contextIdx], text, timestamp); ok {
				return when, true
			}
		}
	}
	return "", false
}

// tripDate applies the date rules in order: explicit cue, ordinal week phrase, bare period context.
func (x *Extractor) tripDate(context, text, timestamp string) (string, bool) {
	if cue := firstMatch(dateCue.FindString, context, text); cue != "" {
		return x.normalizeOrRaw(cue, timestamp), true
	}

	if phrase := firstMatch(ordinalWeek.FindString, context, text); phrase != "" {
		return x.normalizeOrRaw(phrase, timestamp), true
	}

	simple := strings.TrimSpace(context)
	if simple != "" && periodWord.MatchString(simple) {
		return x.normalizeOrRaw(simple, timestamp), true
	}
	return "", false
}

func (x *Extractor) normalizeOrRaw(raw, timestamp string) string {
	if d, ok := x.dates.Normalize(raw, timestamp); ok {
		return d
	}
	return strings.TrimSpace(raw)
}

func firstMatch(find func(string) string, inputs ...string) string {
	for _, in := range inputs {
		if s := find(in); s != "" {
			return s
		}
	}
	return ""
}
