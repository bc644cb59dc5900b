package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// commonLanguages maps the language names travelers actually type to BCP
// 47 tags. Anything not listed falls through to language.Parse, which
// accepts tags like "pt-BR" directly.
var commonLanguages = map[string]language.Tag{
	"english":    language.English,
	"hindi":      language.Hindi,
	"japanese":   language.Japanese,
	"spanish":    language.Spanish,
	"french":     language.French,
	"german":     language.German,
	"italian":    language.Italian,
	"portuguese": language.Portuguese,
	"thai":       language.Thai,
	"chinese":    language.Chinese,
	"mandarin":   language.Chinese,
	"arabic":     language.Arabic,
	"korean":     language.Korean,
	"vietnamese": language.Vietnamese,
	"indonesian": language.Indonesian,
	"turkish":    language.Turkish,
	"russian":    language.Russian,
}

// ResolveLanguage turns a user-supplied language name or BCP 47 tag into
// a language.Tag.
func ResolveLanguage(name string) (language.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return language.Und, fmt.Errorf("language is required")
	}
	if tag, ok := commonLanguages[normalized]; ok {
		return tag, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("unrecognized language %q: %w", name, err)
	}
	return tag, nil
}

// LanguageName returns the English display name for a tag, for use in
// prompts and output.
func LanguageName(tag language.Tag) string {
	return display.English.Languages().Name(tag)
}
