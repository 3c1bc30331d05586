package transliteration

import "strings"

// Harmony is the vowel harmony class of a word.
type Harmony int

const (
	Feminine Harmony = iota
	Masculine
)

func (h Harmony) String() string {
	if h == Masculine {
		return "masculine"
	}
	return "feminine"
}

func (h Harmony) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Classify reports Masculine if word contains a, o or u. Words with only
// e, i, ө, ү, or no vowel at all, are Feminine.
func Classify(word string) Harmony {
	for _, r := range word {
		if class, ok := vowelClass[r]; ok && class == Masculine {
			return Masculine
		}
	}
	return Feminine
}

type harmonyVowels struct {
	o, u string
	// ii replaces a literal "ii" left at the end of the word.
	ii string
}

var vowelsFor = map[Harmony]harmonyVowels{
	Masculine: {o: "о", u: "у", ii: "ы"},
	Feminine:  {o: "ө", u: "ү", ii: "ий"},
}

// applyHarmony resolves o and u to the variants of class h. The ui/oi
// fix-up runs after the single letter pass, when no Latin o or u is left, so
// it never matches: "buir" stays "bуir".
func applyHarmony(word string, h Harmony) string {
	v := vowelsFor[h]
	word = strings.ReplaceAll(word, "o", v.o)
	word = strings.ReplaceAll(word, "u", v.u)
	word = strings.ReplaceAll(word, "ui", v.u+"й")
	word = strings.ReplaceAll(word, "oi", v.o+"й")
	if strings.HasSuffix(word, "ii") {
		word = strings.TrimSuffix(word, "ii") + v.ii
	}
	return word
}
