// Package triage classifies free-text symptom descriptions into severity
// tiers by keyword matching.
//
// This is deliberately crude: lowercase the text, scan two small keyword
// lists, pick the first tier that matches. It runs before any network call
// so a clearly critical description gets the emergency banner even when
// the AI provider is down.
package triage

import (
	"strings"

	"github.com/sakif/healthfinder/internal/model"
)

// criticalKeywords escalate straight to HIGH.
var criticalKeywords = []string{
	"chest pain", "heart attack", "stroke", "difficulty breathing",
	"severe bleeding", "unconscious", "choking", "severe burn",
	"poisoning", "severe allergic reaction", "cannot breathe",
	"heavy bleeding", "sudden paralysis", "seizure",
}

// warningKeywords map to MEDIUM.
var warningKeywords = []string{
	"high fever", "persistent vomiting", "severe pain", "head injury",
}

// advisories are the human-readable messages shown alongside the tier,
// keyed by severity then language (en/hi/pa). Unknown languages fall back
// to English.
var advisories = map[string]map[string]string{
	model.SeverityHigh: {
		"en": "These symptoms may indicate a medical emergency. Call emergency services or go to the nearest emergency room immediately.",
		"hi": "ये लक्षण एक चिकित्सा आपातकाल का संकेत हो सकते हैं। तुरंत आपातकालीन सेवाओं को कॉल करें या निकटतम आपातकालीन कक्ष में जाएँ।",
		"pa": "ਇਹ ਲੱਛਣ ਮੈਡੀਕਲ ਐਮਰਜੈਂਸੀ ਦਾ ਸੰਕੇਤ ਹੋ ਸਕਦੇ ਹਨ। ਤੁਰੰਤ ਐਮਰਜੈਂਸੀ ਸੇਵਾਵਾਂ ਨੂੰ ਕਾਲ ਕਰੋ ਜਾਂ ਨੇੜਲੇ ਐਮਰਜੈਂਸੀ ਰੂਮ ਵਿੱਚ ਜਾਓ।",
	},
	model.SeverityMedium: {
		"en": "These symptoms should be evaluated by a doctor soon. Consider visiting a clinic within the next 24 hours.",
		"hi": "इन लक्षणों की जल्द ही डॉक्टर से जाँच करवानी चाहिए। अगले 24 घंटों में क्लिनिक जाने पर विचार करें।",
		"pa": "ਇਹਨਾਂ ਲੱਛਣਾਂ ਦੀ ਜਲਦੀ ਡਾਕਟਰ ਤੋਂ ਜਾਂਚ ਕਰਵਾਉਣੀ ਚਾਹੀਦੀ ਹੈ। ਅਗਲੇ 24 ਘੰਟਿਆਂ ਵਿੱਚ ਕਲੀਨਿਕ ਜਾਣ ਬਾਰੇ ਸੋਚੋ।",
	},
	model.SeverityLow: {
		"en": "These symptoms do not appear to be an emergency. Monitor them and consult a doctor if they persist or worsen.",
		"hi": "ये लक्षण आपातकालीन नहीं लगते। इन पर नज़र रखें और यदि वे बने रहें या बिगड़ें तो डॉक्टर से परामर्श करें।",
		"pa": "ਇਹ ਲੱਛਣ ਐਮਰਜੈਂਸੀ ਨਹੀਂ ਜਾਪਦੇ। ਇਹਨਾਂ ਉੱਤੇ ਨਜ਼ਰ ਰੱਖੋ ਅਤੇ ਜੇ ਇਹ ਬਣੇ ਰਹਿਣ ਜਾਂ ਵਿਗੜਨ ਤਾਂ ਡਾਕਟਰ ਨਾਲ ਸਲਾਹ ਕਰੋ।",
	},
}

// Assess maps raw symptom text to a severity tier plus an advisory string
// in the requested language. Matching is plain substring search on the
// lowercased input — "I have chest pain" and "chest pains all night" both
// hit "chest pain".
func Assess(symptoms, language string) (severity, advisory string) {
	lower := strings.ToLower(symptoms)

	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			return model.SeverityHigh, advisoryFor(model.SeverityHigh, language)
		}
	}
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return model.SeverityMedium, advisoryFor(model.SeverityMedium, language)
		}
	}
	return model.SeverityLow, advisoryFor(model.SeverityLow, language)
}

func advisoryFor(severity, language string) string {
	msgs := advisories[severity]
	if msg, ok := msgs[language]; ok {
		return msg
	}
	return msgs["en"]
}
