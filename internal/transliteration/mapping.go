package transliteration

import "strings"

func mapRemaining(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if c, ok := baseMapping[string(r)]; ok {
			b.WriteString(c)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
