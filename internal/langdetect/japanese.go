package langdetect

import (
	"unicode"

	"horse.fit/honyaku/internal/language"
)

// japaneseScripts covers Hiragana, Katakana and the CJK unified ideographs
// used by Japanese text.
var japaneseScripts = []*unicode.RangeTable{
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Han,
}

// ContainsJapanese reports whether text has at least one Japanese-script rune.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		if unicode.In(r, japaneseScripts...) {
			return true
		}
	}
	return false
}

// Detect classifies text for direction selection. A single Japanese-script
// rune anywhere in the text classifies the whole string as Japanese.
func Detect(text string) language.Language {
	if ContainsJapanese(text) {
		return language.Japanese
	}
	return language.Other
}
