package extract

import "strings"

const maxRestaurants = 5

// Cars returns the car count from "have|own|got <n> car(s)".
func Cars(text string) (string, bool) {
	for _, re := range carsPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[re.SubexpIndex("num")], true
		}
	}
	return "", false
}

// Phone returns the first phone-number-shaped substring verbatim.
func Phone(text string) (string, bool) {
	for _, re := range phonePatterns {
		if s := re.FindString(text); s != "" {
			return s, true
		}
	}
	return "", false
}

// Restaurants returns up to five proper-noun items from a favorite restaurant list.
func Restaurants(text string) ([]string, bool) {
	for _, re := range restaurantPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if items := restaurantItems(m[re.SubexpIndex("list")]); len(items) > 0 {
			if len(items) > maxRestaurants {
				items = items[:maxRestaurants]
			}
			return items, true
		}
	}
	return nil, false
}

func restaurantItems(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		item := strings.Trim(part, " \t\r\n.")
		item = strings.TrimSpace(leadingConjunction.ReplaceAllString(item, ""))
		if item == "" {
			continue
		}
		if startsUpper.MatchString(item) || strings.ContainsAny(item, "&'’") {
			items = append(items, item)
		}
	}
	return items
}

// LooksLikeDining reports whether text reads like a dining booking rather than travel.
func LooksLikeDining(text string) bool {
	t := strings.ToLower(text)
	for _, k := range diningKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
