package qa

import "strings"

// Intent is the kind of fact a question asks for.
type Intent string

const (
	IntentTrip        Intent = "trip"
	IntentCars        Intent = "cars"
	IntentRestaurants Intent = "restaurants"
	IntentPhone       Intent = "phone"
	IntentGeneric     Intent = "generic"
)

var intentRules = []struct {
	intent   Intent
	keywords []string
	prefixes []string
}{
	{intent: IntentTrip, keywords: []string{"trip", "going to", "book"}, prefixes: []string{"when is"}},
	{intent: IntentCars, keywords: []string{"how many car", "cars does"}},
	{intent: IntentRestaurants, keywords: []string{"favorite restaurant", "favourite restaurant", "restaurants"}},
	{intent: IntentPhone, keywords: []string{"phone", "number", "contact"}},
}

// ClassifyIntent maps a question onto an Intent by keyword, first rule wins.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(q, p) {
				return rule.intent
			}
		}
		for _, k := range rule.keywords {
			if strings.Contains(q, k) {
				return rule.intent
			}
		}
	}
	return IntentGeneric
}
