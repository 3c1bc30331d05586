package transliteration

// exceptions are whole words the rules below spell wrong. Keys are lowercase.
var exceptions = map[string]string{
	"ni":          "нь",
	"yu":          "ю",
	"yum":         "юм",
	"ug":          "үг",
	"odor":        "өдөр",
	"onoodor":     "өнөөдөр",
	"ondog":       "өндөг",
	"manai":       "манай",
	"gert":        "гэрт",
	"shuudangiin": "шуудангийн",
	"hurgelt":     "хүргэлт",
	"irsen":       "ирсэн",
	"zuir":        "зүйр",
	"tsetsen":     "цэцэн",
	"buleehen":    "бүлээхэн",
	"huiten":      "хүйтэн",
	"holduu":      "хөлдүү",
	"dagval":      "дагвал",
	"gerel":       "гэрэл",
	"mongol":      "монгол",
}

// baseMapping is consulted one character at a time, so the two-letter keys
// never match. They stay here so the table reads as the full romanization
// scheme.
var baseMapping = map[string]string{
	"a":  "а",
	"b":  "б",
	"v":  "в",
	"g":  "г",
	"d":  "д",
	"ye": "е",
	"yo": "ё",
	"j":  "ж",
	"z":  "з",
	"i":  "и",
	"k":  "к",
	"l":  "л",
	"m":  "м",
	"n":  "н",
	"p":  "п",
	"r":  "р",
	"s":  "с",
	"t":  "т",
	"f":  "ф",
	"h":  "х",
	"ts": "ц",
	"ch": "ч",
	"sh": "ш",
	"yu": "ю",
	"ya": "я",
	"e":  "э",
	"o":  "о",
	"u":  "у",
	"uu": "уу",
	"ee": "ээ",
	"aa": "аа",
	"oo": "оо",
	"ө":  "ө",
	"ү":  "ү",
}

type suffix struct {
	latin    string
	cyrillic string
}

// suffixes are written in their feminine form and tried in order; the first
// one the word ends with wins. Longer endings come before the shorter endings
// they contain.
var suffixes = []suffix{
	{"iyaatai", "ьяатай"},
	{"giin", "гийн"},
	{"iyaa", "ья"},
	{"tai", "тай"},
	{"tei", "тэй"},
	{"toi", "той"},
	{"iig", "ийг"},
	{"iin", "ийн"},
	{"nii", "ний"},
	{"iye", "ье"},
	{"oi", "ой"},
	{"ui", "уй"},
	{"ei", "эй"},
	{"ai", "ай"},
	{"ya", "я"},
}

// vowelClass lists the letters Classify looks at. Cyrillic а, о, у, э and и
// are not vowels here, so a fully converted word classifies as Feminine.
var vowelClass = map[rune]Harmony{
	'a': Masculine,
	'o': Masculine,
	'u': Masculine,
	'e': Feminine,
	'i': Feminine,
	'ө': Feminine,
	'ү': Feminine,
}
