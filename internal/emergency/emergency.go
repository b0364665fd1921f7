// Package emergency is a static directory of emergency phone numbers.
//
// No persistence, no network — just lookup tables served straight to the
// UI. The region match is a crude substring scan over the user's location
// text, which is exactly as precise as the data deserves.
package emergency

import "strings"

// Contact is one dialable service.
type Contact struct {
	Service string `json:"service"`
	Number  string `json:"number"`
}

// regionContacts lists the primary numbers per recognized region.
var regionContacts = map[string][]Contact{
	"india": {
		{Service: "Police", Number: "100"},
		{Service: "Ambulance", Number: "102"},
		{Service: "Emergency", Number: "112"},
	},
	"us": {
		{Service: "Emergency", Number: "911"},
		{Service: "Poison Control", Number: "1-800-222-1222"},
	},
	"uk": {
		{Service: "Emergency", Number: "999"},
		{Service: "NHS Non-emergency", Number: "111"},
	},
}

var defaultContacts = []Contact{
	{Service: "International Emergency", Number: "112"},
	{Service: "Local Police", Number: "Check locally"},
}

// Helplines is the national (India) helpline directory shown on the
// emergency services page.
var Helplines = []Contact{
	{Service: "Police", Number: "100"},
	{Service: "Fire Department", Number: "101"},
	{Service: "Ambulance", Number: "102"},
	{Service: "Disaster Management", Number: "108"},
	{Service: "National Emergency Number", Number: "112"},
	{Service: "Women Helpline", Number: "1091"},
	{Service: "Child Abuse Hotline", Number: "1098"},
	{Service: "Poison Control", Number: "1066"},
	{Service: "Road Accident Emergency", Number: "1073"},
	{Service: "Suicide Prevention", Number: "9152987821"},
}

// regionOrder fixes the match precedence; map iteration order would make
// ambiguous inputs nondeterministic.
var regionOrder = []string{"india", "us", "uk"}

// ContactsFor returns the emergency numbers for the region named in the
// location text. Unrecognized locations get the international defaults.
func ContactsFor(location string) []Contact {
	lower := strings.ToLower(location)
	for _, region := range regionOrder {
		if strings.Contains(lower, region) {
			return regionContacts[region]
		}
	}
	return defaultContacts
}
