package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/healthfinder/internal/apperror"
	"github.com/sakif/healthfinder/internal/emergency"
	"github.com/sakif/healthfinder/internal/hospital"
	"github.com/sakif/healthfinder/internal/model"
	"github.com/sakif/healthfinder/internal/suggest"
	"github.com/sakif/healthfinder/internal/triage"
)

// SupportedLanguages are the response languages the AI provider and the
// triage advisories know about.
var SupportedLanguages = []string{"en", "hi", "pa"}

// Analysis is the full outcome of one symptom check.
type Analysis struct {
	Severity          string              `json:"severity"`
	Advisory          string              `json:"advisory"`
	Suggestions       string              `json:"suggestions"`
	Hospitals         hospital.Result     `json:"hospitals"`
	EmergencyContacts []emergency.Contact `json:"emergencyContacts,omitempty"`
	HistorySaved      bool                `json:"historySaved"`
}

// AnalysisService orchestrates one symptom check: triage first, then the
// AI provider and the hospital search, then the history append.
type AnalysisService struct {
	history *HistoryService
	suggest suggest.Provider
	locator hospital.Locator
	logger  *slog.Logger
}

func NewAnalysisService(
	history *HistoryService,
	provider suggest.Provider,
	locator hospital.Locator,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		history: history,
		suggest: provider,
		locator: locator,
		logger:  logger,
	}
}

// Analyze runs the whole flow for an authenticated user.
//
// Triage runs first and costs nothing, so a HIGH severity is known before
// any network call and the emergency contacts always make it into the
// response. The AI provider folds its own failures into the suggestion
// text, and the hospital search folds failures into its status — neither
// aborts the analysis. The history append is last; if it fails (store
// error, or the account was deleted mid-session) the analysis is still
// returned with HistorySaved=false rather than thrown away.
func (s *AnalysisService) Analyze(ctx context.Context, username, symptoms, location, language string) (*Analysis, error) {
	symptoms = strings.TrimSpace(symptoms)
	location = strings.TrimSpace(location)

	if symptoms == "" {
		return nil, apperror.ValidationFailed("symptoms", "symptom description is required")
	}
	if location == "" {
		return nil, apperror.ValidationFailed("location", "location is required")
	}
	if !supportedLanguage(language) {
		language = "en"
	}

	severity, advisory := triage.Assess(symptoms, language)

	suggestions := s.suggest.Suggest(ctx, symptoms, language)
	hospitals := s.locator.Search(ctx, location)

	result := &Analysis{
		Severity:    severity,
		Advisory:    advisory,
		Suggestions: suggestions,
		Hospitals:   hospitals,
	}
	if severity == model.SeverityHigh {
		result.EmergencyContacts = emergency.ContactsFor(location)
	}

	entry := &model.HistoryEntry{
		Symptoms:            symptoms,
		Severity:            severity,
		SuggestedConditions: suggestions,
		LocationSearched:    location,
	}
	if err := s.history.Append(ctx, username, entry); err != nil {
		s.logger.Warn("failed to record analysis",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		result.HistorySaved = false
	} else {
		result.HistorySaved = true
	}

	return result, nil
}

func supportedLanguage(language string) bool {
	for _, l := range SupportedLanguages {
		if l == language {
			return true
		}
	}
	return false
}
