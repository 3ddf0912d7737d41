package qa

import (
	"fmt"
	"strings"
)

// Status is how far the pipeline got for one question.
type Status string

const (
	StatusAnswered    Status = "answered"
	StatusNotFound    Status = "not_found"
	StatusNoSubject   Status = "no_subject"
	StatusNoMessages  Status = "no_messages"
	StatusUnreachable Status = "unreachable"
	StatusFailed      Status = "failed"
)

// Outcome carries everything the composer needs to phrase an answer.
type Outcome struct {
	Status      Status
	Intent      Intent
	Subject     string
	Destination string
	// Value is the trip date, car count, phone number or latest message text.
	Value       string
	Restaurants []string
	Detail      string
}

const (
	msgUnreachable = "Sorry—couldn't reach the messages service. Please try again."
	msgNoSubject   = "I could not identify the user in your question."
	noText         = "(no text)"
)

// Compose renders an Outcome. It never returns an empty string.
func Compose(o Outcome) string {
	who := o.Subject

	switch o.Status {
	case StatusUnreachable:
		return msgUnreachable
	case StatusNoSubject:
		return msgNoSubject
	case StatusNoMessages:
		return fmt.Sprintf("I do not see messages for %s.", who)
	case StatusFailed:
		return fmt.Sprintf("Sorry—something went wrong processing that question: %s.", o.Detail)
	}

	found := o.Status == StatusAnswered
	switch o.Intent {
	case IntentTrip:
		if !found {
			return fmt.Sprintf("I could not find a trip date for %s.", who)
		}
		if o.Destination != "" {
			return fmt.Sprintf("%s is planning the trip to %s on %s.", who, o.Destination, o.Value)
		}
		return fmt.Sprintf("%s is planning the trip on %s.", who, o.Value)

	case IntentCars:
		if !found {
			return fmt.Sprintf("I could not find how many cars %s has.", who)
		}
		return fmt.Sprintf("%s has %s car(s).", who, o.Value)

	case IntentRestaurants:
		if !found {
			return fmt.Sprintf("I could not find favorite restaurants for %s.", who)
		}
		return fmt.Sprintf("%s's favorite restaurants: %s", who, strings.Join(o.Restaurants, ", "))

	case IntentPhone:
		if !found {
			return fmt.Sprintf("I could not find a phone number for %s.", who)
		}
		return fmt.Sprintf("%s's phone number is %s.", who, o.Value)

	default:
		text := o.Value
		if text == "" {
			text = noText
		}
		return fmt.Sprintf("Not sure. Latest message from %s: %s.", who, text)
	}
}
