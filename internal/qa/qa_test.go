package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ==========================
// Subject Resolver
// ==========================

func TestResolveSubject(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
		wantOK   bool
	}{
		{name: "possessive", question: "What is Amira's phone number?", want: "Amira", wantOK: true},
		{name: "possessive two words", question: "What are Maria Lopez's favorite restaurants?", want: "Maria Lopez", wantOK: true},
		{name: "possessive curly apostrophe", question: "When is Layla’s trip?", want: "Layla", wantOK: true},
		{name: "possessive after auxiliary", question: "Does Amira's car still run?", want: "Amira", wantOK: true},
		{name: "interrogative does", question: "How many cars does Vikram Desai have?", want: "Vikram Desai", wantOK: true},
		{name: "interrogative is", question: "Is Maria Lopez planning a trip to Lisbon?", want: "Maria Lopez", wantOK: true},
		{name: "interrogative lowercase auxiliary", question: "when is Layla going to Paris?", want: "Layla", wantOK: true},
		{name: "possessive beats interrogative", question: "Is Layla visiting Amira's family?", want: "Amira", wantOK: true},
		{name: "fallback skips question words", question: "What did Hans say?", want: "Hans", wantOK: true},
		{name: "hyphenated name", question: "Tell me about Jean-Luc Picard", want: "Jean-Luc Picard", wantOK: true},
		{name: "non ascii capital", question: "what did Émile write", want: "Émile", wantOK: true},
		{name: "interrogative keeps name that is a question word", question: "How many cars does Will Smith have?", want: "Will Smith", wantOK: true},
		{name: "mid-sentence possessive keeps question word name", question: "What is Will Smith's phone number?", want: "Will Smith", wantOK: true},
		{name: "opening question word stripped from possessive", question: "Will Amira's flight land on time?", want: "Amira", wantOK: true},
		{name: "mid-sentence fallback keeps question word name", question: "Tell me about Will", want: "Will", wantOK: true},
		{name: "no capitalized token", question: "what is the weather like?", wantOK: false},
		{name: "only question words", question: "What is it?", wantOK: false},
		{name: "empty", question: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveSubject(tt.question)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Intent Classifier
// ==========================

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     Intent
	}{
		{question: "When is Layla's trip?", want: IntentTrip},
		{question: "Is Amira going to Paris?", want: IntentTrip},
		{question: "Did Hans book anything?", want: IntentTrip},
		{question: "when is Hans free?", want: IntentTrip},
		{question: "How many cars does Vikram have?", want: IntentCars},
		{question: "What are Amira's favorite restaurants?", want: IntentRestaurants},
		{question: "Which restaurants does Hans like?", want: IntentRestaurants},
		{question: "What is Amira's favourite restaurant?", want: IntentRestaurants},
		{question: "What is Amira's phone?", want: IntentPhone},
		{question: "Contact details for Hans?", want: IntentPhone},
		{question: "What is Layla's number?", want: IntentPhone},
		{question: "What's new with Hans?", want: IntentGeneric},
		// trip keywords win over everything after them
		{question: "Which restaurants did Hans book?", want: IntentTrip},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.question))
		})
	}
}

// ==========================
// Answer Composer
// ==========================

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{
			name:    "unreachable",
			outcome: Outcome{Status: StatusUnreachable, Intent: IntentTrip, Subject: "Amira"},
			want:    "Sorry—couldn't reach the messages service. Please try again.",
		},
		{
			name:    "no subject",
			outcome: Outcome{Status: StatusNoSubject, Intent: IntentCars},
			want:    "I could not identify the user in your question.",
		},
		{
			name:    "no messages",
			outcome: Outcome{Status: StatusNoMessages, Intent: IntentCars, Subject: "Hans"},
			want:    "I do not see messages for Hans.",
		},
		{
			name:    "failed",
			outcome: Outcome{Status: StatusFailed, Detail: "boom"},
			want:    "Sorry—something went wrong processing that question: boom.",
		},
		{
			name:    "trip with destination",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentTrip, Subject: "Maria Lopez", Destination: "Lisbon", Value: "2025-06-08"},
			want:    "Maria Lopez is planning the trip to Lisbon on 2025-06-08.",
		},
		{
			name:    "trip without destination",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentTrip, Subject: "Layla", Value: "2025-05-02"},
			want:    "Layla is planning the trip on 2025-05-02.",
		},
		{
			name:    "trip missing",
			outcome: Outcome{Status: StatusNotFound, Intent: IntentTrip, Subject: "Layla", Destination: "Rome"},
			want:    "I could not find a trip date for Layla.",
		},
		{
			name:    "cars",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentCars, Subject: "John Smith", Value: "3"},
			want:    "John Smith has 3 car(s).",
		},
		{
			name:    "cars missing",
			outcome: Outcome{Status: StatusNotFound, Intent: IntentCars, Subject: "John Smith"},
			want:    "I could not find how many cars John Smith has.",
		},
		{
			name:    "restaurants",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentRestaurants, Subject: "Amira", Restaurants: []string{"Nobu", "Per Se"}},
			want:    "Amira's favorite restaurants: Nobu, Per Se",
		},
		{
			name:    "restaurants missing",
			outcome: Outcome{Status: StatusNotFound, Intent: IntentRestaurants, Subject: "Amira"},
			want:    "I could not find favorite restaurants for Amira.",
		},
		{
			name:    "phone",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentPhone, Subject: "Hans", Value: "555-123-4567"},
			want:    "Hans's phone number is 555-123-4567.",
		},
		{
			name:    "phone missing",
			outcome: Outcome{Status: StatusNotFound, Intent: IntentPhone, Subject: "Hans"},
			want:    "I could not find a phone number for Hans.",
		},
		{
			name:    "generic",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentGeneric, Subject: "Hans", Value: "See you soon"},
			want:    "Not sure. Latest message from Hans: See you soon.",
		},
		{
			name:    "generic empty message",
			outcome: Outcome{Status: StatusAnswered, Intent: IntentGeneric, Subject: "Hans"},
			want:    "Not sure. Latest message from Hans: (no text).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.outcome)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}
