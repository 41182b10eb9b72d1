package language

// Language classifies source text for direction selection: text containing
// Japanese script, or anything else.
type Language int

const (
	Other Language = iota
	Japanese
)

func (l Language) String() string {
	if l == Japanese {
		return "ja"
	}
	return "other"
}

// Direction is the translation direction derived from the source language.
type Direction int

const (
	OtherToJapanese Direction = iota
	JapaneseToEnglish
)

// DirectionFor maps the detected source language to a direction: Japanese
// text is translated to English, everything else to Japanese.
func DirectionFor(source Language) Direction {
	if source == Japanese {
		return JapaneseToEnglish
	}
	return OtherToJapanese
}

func (d Direction) String() string {
	if d == JapaneseToEnglish {
		return "ja_to_en"
	}
	return "other_to_ja"
}

// TargetCode returns the ISO 639-1 code of the direction's target language.
func (d Direction) TargetCode() string {
	if d == JapaneseToEnglish {
		return "en"
	}
	return "ja"
}
