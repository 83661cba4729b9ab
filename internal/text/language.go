// Package text provides language tag helpers for prompts and API calls.
package text

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// EnglishName returns the English display name for a language identifier,
// e.g. "hi" -> "Hindi". It accepts both ISO codes and English names; input
// that cannot be resolved is returned unchanged so the translation prompt
// still carries the caller's intent.
func EnglishName(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return lang
	}

	tag, err := language.Parse(lang)
	if err != nil {
		// Already an English name like "Hindi"? Pass it through.
		return lang
	}

	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return lang
}

// NormalizeCode returns the lowercase ISO 639-1 base code for a language
// identifier, suitable as a transcription language hint. Unresolvable input
// is returned lowercased.
func NormalizeCode(lang string) string {
	lang = strings.TrimSpace(lang)
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}
