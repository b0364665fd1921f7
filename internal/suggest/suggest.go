// Package suggest asks a large-language-model for candidate medical
// conditions matching a symptom description, in the user's language.
//
// The rest of the system treats the output as an opaque blob: the history
// log stores it verbatim and nothing ever parses it. Provider failures are
// therefore reported IN the text (a per-language error message), matching
// the boundary contract — the analysis flow continues and the failure
// string is what gets persisted.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider produces suggestion text for a symptom description.
// language is one of "en", "hi", "pa"; anything else is treated as "en".
type Provider interface {
	Suggest(ctx context.Context, symptoms, language string) string
}

// disclaimer is appended to every prompt; the model is instructed to end
// its answer with it regardless of the response language.
const disclaimer = `"*Disclaimer:* I am an AI assistant and not a medical professional. This information is not a diagnosis. Please consult a qualified healthcare provider for medical advice."`

// prompts are the per-language instruction templates. %s receives the
// symptom text.
var prompts = map[string]string{
	"en": `As a medical information assistant, analyze these symptoms: "%s"

Provide 3-5 possible medical conditions with brief, clear descriptions.
Format with bullet points for easy reading.
Maintain professional medical tone.

End with this exact disclaimer:
` + disclaimer,

	"hi": `एक चिकित्सा सूचना सहायक के रूप में, इन लक्षणों का विश्लेषण करें: "%s"

3-5 संभावित चिकित्सा स्थितियाँ संक्षिप्त, स्पष्ट विवरण के साथ प्रदान करें।
आसान पठन के लिए बुलेट पॉइंट्स में प्रारूपित करें।
पेशेवर चिकित्सा स्वर बनाए रखें।

इस सटीक अस्वीकरण के साथ समाप्त करें:
` + disclaimer,

	"pa": `ਇੱਕ ਮੈਡੀਕਲ ਜਾਣਕਾਰੀ ਸਹਾਇਕ ਦੇ ਰੂਪ ਵਿੱਚ, ਇਹਨਾਂ ਲੱਛਣਾਂ ਦਾ ਵਿਸ਼ਲੇਸ਼ਣ ਕਰੋ: "%s"

3-5 ਸੰਭਾਵਿਤ ਡਾਕਟਰੀ ਸਥਿਤੀਆਂ ਸੰਖੇਪ, ਸਾਫ਼ ਵਰਣਨਾਂ ਨਾਲ ਪ੍ਰਦਾਨ ਕਰੋ।
ਆਸਾਨ ਪੜ੍ਹਨ ਲਈ ਬੁਲੇਟ ਪੁਆਇੰਟਾਂ ਵਿੱਚ ਫਾਰਮੈਟ ਕਰੋ।
ਪੇਸ਼ੇਵਰ ਡਾਕਟਰੀ ਟੋਨ ਬਣਾਈ ਰੱਖੋ।

ਇਸ ਸਹੀ ਇਨਕਾਰ ਨਾਲ ਖਤਮ ਕਰੋ:
` + disclaimer,
}

// errorMessages are returned as the suggestion text when the provider
// call fails, in the user's language.
var errorMessages = map[string]string{
	"en": "Error analyzing symptoms: %v",
	"hi": "लक्षणों का विश्लेषण करने में त्रुटि: %v",
	"pa": "ਲੱਛਣਾਂ ਦਾ ਵਿਸ਼ਲੇਸ਼ਣ ਕਰਨ ਵਿੱਚ ਤਰੁਟੀ: %v",
}

// notConfigured is the fixed response when no provider is wired up.
const notConfigured = "AI suggestions are not configured."

// defaultBaseURL is the Gemini REST endpoint prefix; tests override it.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// defaultModel is the completion model the prompts are tuned for.
const defaultModel = "gemini-2.5-flash"

// GeminiProvider calls the Gemini generateContent REST API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiProvider creates a provider using the given API key.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGeminiProviderWithBaseURL is like NewGeminiProvider but targets a
// custom endpoint. Used in tests with httptest servers.
func NewGeminiProviderWithBaseURL(apiKey, baseURL string) *GeminiProvider {
	p := NewGeminiProvider(apiKey)
	p.baseURL = baseURL
	return p
}

// Request/response shapes for the generateContent API. Gemini returns far
// more than this; we only unmarshal the fields we read.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest sends the per-language prompt to the model and returns the
// completion text. Any failure — transport, status, empty candidate list —
// comes back as a localized error string rather than an error value,
// because the caller stores whatever this returns.
func (p *GeminiProvider) Suggest(ctx context.Context, symptoms, language string) string {
	prompt, ok := prompts[language]
	if !ok {
		prompt = prompts["en"]
	}

	text, err := p.generate(ctx, fmt.Sprintf(prompt, symptoms))
	if err != nil {
		return errorMessage(language, err)
	}
	return text
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("suggest: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("suggest: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("suggest: calling model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggest: model API returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("suggest: decoding response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("suggest: model returned no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

func errorMessage(language string, err error) string {
	msg, ok := errorMessages[language]
	if !ok {
		msg = errorMessages["en"]
	}
	return fmt.Sprintf(msg, err)
}

// Disabled is the Provider used when no API key is configured. It returns
// a fixed notice so the analysis flow still works end to end.
type Disabled struct{}

func (Disabled) Suggest(ctx context.Context, symptoms, language string) string {
	return notConfigured
}
