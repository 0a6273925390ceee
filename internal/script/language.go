// Package script implements the dialogue script text layout: the line count
// header, the language tagged line records and their YAML alternative.
package script

import (
	"fmt"
	"strings"
)

// Language is a script language.
type Language struct {
	Tag  string // 2 character record tag
	Name string
}

func (l Language) String() string {
	return l.Name
}

// Supported languages, in the order used by the game.
var (
	Japanese   = Language{Tag: "jp", Name: "Japanese"}
	English    = Language{Tag: "en", Name: "English"}
	Spanish    = Language{Tag: "es", Name: "Spanish"}
	French     = Language{Tag: "fr", Name: "French"}
	Italian    = Language{Tag: "it", Name: "Italian"}
	Portuguese = Language{Tag: "pt", Name: "Portuguese"}
	German     = Language{Tag: "de", Name: "German"}
)

// Languages lists all supported languages.
var Languages = []Language{Japanese, English, Spanish, French, Italian, Portuguese, German}

// ParseLanguage returns the language for a tag or a name, case insensitive.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, lang := range Languages {
		if strings.EqualFold(s, lang.Tag) || strings.EqualFold(s, lang.Name) {
			return lang, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language '%s'", s)
}

// SourceLine is a dialogue line record.
type SourceLine struct {
	Index    int // 1-based ordinal
	Language Language
	Text     string // raw text including escape commands
}
