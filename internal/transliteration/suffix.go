package transliteration

import "strings"

// masculineSuffix harmonizes a suffix authored in feminine form.
var masculineSuffix = strings.NewReplacer("э", "а", "ү", "у")

// resolveSuffix strips the first matching suffix, converts the stem with
// convertWord and re-attaches the suffix in the stem's harmony. convertWord
// never calls back here, so recursion stops at one level.
func (e *Engine) resolveSuffix(word string) WordTrace {
	for _, s := range e.suffixes {
		if !strings.HasSuffix(word, s.latin) {
			continue
		}
		stem, _, _ := e.convertWord(strings.TrimSuffix(word, s.latin))
		h := Classify(stem)
		tail := s.cyrillic
		if h == Masculine {
			tail = masculineSuffix.Replace(tail)
		}
		return WordTrace{
			Input:   word,
			Output:  stem + tail,
			Path:    PathSuffix,
			Suffix:  s.latin,
			Harmony: h,
		}
	}

	out, path, h := e.convertWord(word)
	return WordTrace{Input: word, Output: out, Path: path, Harmony: h}
}
