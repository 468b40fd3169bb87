package records

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Closed vocabulary for call status.
const (
	StatusAnswered      = "Answered"
	StatusNotAnswered   = "Not answered"
	StatusInvalidNumber = "Invalid number"
	StatusVoicemail     = "Voicemail"
)

// Closed vocabulary for sales status.
const (
	SalesConverted     = "Converted"
	SalesNotInterested = "Not interested"
	SalesFollowUp      = "Follow up"
)

// statusVocabulary is a strict allow-list: source values not present here
// become empty (null), never raw pass-throughs.
var statusVocabulary = map[string]string{
	"answered call":         StatusAnswered,
	"answered":              StatusAnswered,
	"not answered":          StatusNotAnswered,
	"invalid number":        StatusInvalidNumber,
	"silent call/voicemail": StatusVoicemail,
	"voicemail":             StatusVoicemail,
}

var salesStatusVocabulary = map[string]string{
	"sold":               SalesConverted,
	"deal won":           SalesConverted,
	"deal complete":      SalesConverted,
	"converted":          SalesConverted,
	"lost":               SalesNotInterested,
	"no interest":        SalesNotInterested,
	"not interested":     SalesNotInterested,
	"not interested (n)": SalesNotInterested,
	"follow up":          SalesFollowUp,
	"f":                  SalesFollowUp,
}

// Two-word vocabulary values whose second word stays lowercase, overriding
// generic title-casing.
var titleExceptions = map[string]string{
	"Not Answered":   StatusNotAnswered,
	"Invalid Number": StatusInvalidNumber,
	"Follow Up":      SalesFollowUp,
	"Not Interested": SalesNotInterested,
}

var titleCaser = cases.Title(language.English)

// MapStatus maps a free-text call status onto the closed status vocabulary.
// ok is false when a non-empty value was not in the allow-list; empty input
// maps to empty with ok true.
func MapStatus(raw string) (string, bool) {
	return mapVocabulary(raw, statusVocabulary)
}

// MapSalesStatus maps a free-text sales status onto the closed sales
// vocabulary with the same contract as MapStatus.
func MapSalesStatus(raw string) (string, bool) {
	return mapVocabulary(raw, salesStatusVocabulary)
}

func mapVocabulary(raw string, vocabulary map[string]string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", true
	}
	mapped, ok := vocabulary[key]
	if !ok {
		return "", false
	}
	return DisplayTitle(mapped), true
}

// DisplayTitle title-cases a vocabulary value for display, keeping the
// explicit second-word-lowercase exceptions ("Not answered", "Invalid
// number", "Follow up", "Not interested") intact.
func DisplayTitle(value string) string {
	if value == "" {
		return value
	}
	titled := titleCaser.String(value)
	if fixed, ok := titleExceptions[titled]; ok {
		return fixed
	}
	return titled
}
