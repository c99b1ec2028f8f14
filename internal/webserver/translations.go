package webserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

//go:embed translations/*.json
var translationFiles embed.FS

// Translation holds translations for a specific language
type Translation map[string]string

// Translations holds all loaded translations
type Translations map[string]Translation

var translations Translations

var supportedLanguages = []string{"en", "uk"}

// LoadTranslations loads all translation files
func LoadTranslations() error {
	translations = make(Translations)

	for _, lang := range supportedLanguages {
		data, err := translationFiles.ReadFile(fmt.Sprintf("translations/%s.json", lang))
		if err != nil {
			return fmt.Errorf("failed to read %s translations: %w", lang, err)
		}

		var trans Translation

		if err := json.Unmarshal(data, &trans); err != nil {
			return fmt.Errorf("failed to parse %s translations: %w", lang, err)
		}

		translations[lang] = trans
	}

	return nil
}

// GetLanguageFromRequest determines the language from URL param or Accept-Language header
func GetLanguageFromRequest(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if isValidLanguage(lang) {
			return lang
		}
	}

	acceptLang := r.Header.Get("Accept-Language")
	if acceptLang != "" {
		// Format: "en-US,en;q=0.9,uk;q=0.8"
		for _, lang := range strings.Split(acceptLang, ",") {
			lang = strings.TrimSpace(strings.Split(lang, ";")[0])
			lang = strings.Split(lang, "-")[0]

			if isValidLanguage(lang) {
				return lang
			}
		}
	}

	return "en"
}

// isValidLanguage checks if the language is supported
func isValidLanguage(lang string) bool {
	_, exists := translations[lang]
	return exists
}

// GetTranslation returns the translation for a given key and language
func GetTranslation(lang, key string) string {
	if trans, exists := translations[lang]; exists {
		if text, exists := trans[key]; exists {
			return text
		}
	}

	// Fallback to English
	if trans, exists := translations["en"]; exists {
		if text, exists := trans[key]; exists {
			return text
		}
	}

	// Fallback to key if translation not found
	return key
}

// GetTranslations returns all translations for a given language
func GetTranslations(lang string) Translation {
	if trans, exists := translations[lang]; exists {
		return trans
	}

	if trans, exists := translations["en"]; exists {
		return trans
	}

	return make(Translation)
}
