package transliteration

import "strings"

type rule struct {
	from string
	to   string
}

// digraphRules run top to bottom over the whole word. Each rule sees the
// output of the ones above it, so reordering changes results.
var digraphRules = []rule{
	{"ai", "ай"},
	{"ei", "эй"},
	{"ii", "ий"},
	{"ya", "я"},
	{"iyaa", "ья"},
	{"iye", "ье"},
	{"sh", "ш"},
	{"ch", "ч"},
	{"ts", "ц"},
	{"yu", "ю"},
}

func applyRules(word string, rules []rule) string {
	for _, r := range rules {
		word = strings.ReplaceAll(word, r.from, r.to)
	}
	return word
}

func rewrite(word string) string {
	return applyRules(word, digraphRules)
}
