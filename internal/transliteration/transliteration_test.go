package transliteration

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ni", "нь"},
		{"Ni", "нь"},
		{"sain bainuu", "сайн байнуу"},
		{"Sain Bainuu", "сайн байнуу"},
		{"mongol hel", "монгол хэл"},
		{"gert", "гэрт"},
		{"nomtoi", "номтой"},
		{"", ""},
		{"   ", ""},
		{"  sain   bainuu  ", "сайн байнуу"},
		{"sain\tbainuu\n", "сайн байнуу"},
		{"sain, bainuu.", "сайн, байнуу."},
		{"bayarlalaa", "баярлалаа"},
		{"ulaanbaatar", "улаанбаатар"},
		{"bagsh", "багш"},
		{"chi shine", "чи шинэ"},
		{"tsagaantei", "цагаантэй"},
		{"bagtei", "багтэй"},
		{"buir", "буир"},
		{"uil", "уил"},
		{"boid", "боид"},
		{"gertei", "гэртэй"},
		{"minii ner", "миний нэр"},
		{"2024 on", "2024 он"},
	}
	for _, tt := range tests {
		got := Convert(tt.input)
		if got != tt.want {
			t.Errorf("Convert(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConvertExceptions(t *testing.T) {
	for latin, cyrillic := range exceptions {
		if got := Convert(latin); got != cyrillic {
			t.Errorf("Convert(%q) = %q, want lexicon spelling %q", latin, got, cyrillic)
		}
	}
}

func TestExceptionEndingInSuffixIsStillSuffixResolved(t *testing.T) {
	words := Default.Explain("manai shuudangiin")
	require.Len(t, words, 2)

	assert.Equal(t, PathSuffix, words[0].Path)
	assert.Equal(t, "ai", words[0].Suffix)
	assert.Equal(t, "манай", words[0].Output)

	assert.Equal(t, PathSuffix, words[1].Path)
	assert.Equal(t, "giin", words[1].Suffix)
	assert.Equal(t, "шуудангийн", words[1].Output)
}

func TestExplainPaths(t *testing.T) {
	words := Default.Explain("ni gert hel nomtoi")
	require.Len(t, words, 4)

	assert.Equal(t, WordTrace{Input: "ni", Output: "нь", Path: PathSpecial, Harmony: Feminine}, words[0])
	assert.Equal(t, WordTrace{Input: "gert", Output: "гэрт", Path: PathException, Harmony: Feminine}, words[1])
	assert.Equal(t, WordTrace{Input: "hel", Output: "хэл", Path: PathRules, Harmony: Feminine}, words[2])
	assert.Equal(t, WordTrace{Input: "nomtoi", Output: "номтой", Path: PathSuffix, Suffix: "toi", Harmony: Feminine}, words[3])
}

func TestExplainEmpty(t *testing.T) {
	words := Default.Explain("")
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestBaseDigraphNeverFiresAfterHarmony(t *testing.T) {
	words := Default.Explain("bainuu")
	require.Len(t, words, 1)
	assert.Equal(t, PathRules, words[0].Path)
	assert.Equal(t, Masculine, words[0].Harmony)
	assert.Equal(t, "байнуу", words[0].Output)
}

func TestSingleEMapsToE(t *testing.T) {
	assert.Equal(t, "хэл", Convert("hel"))
	assert.Equal(t, "э", Convert("e"))
}

func TestUnmappedLatinPassesThrough(t *testing.T) {
	assert.Equal(t, "yэс", Convert("yes"))
	assert.Equal(t, "хоyор", Convert("hoyor"))
}

func TestConvertWordSkipsSuffixes(t *testing.T) {
	assert.Equal(t, "номтой", Convert("nomtoi"))
	assert.Equal(t, "номтои", Default.ConvertWord("nomtoi"))
	assert.Equal(t, "цагаантэй", Default.ConvertWord("tsagaantei"))
	assert.Equal(t, "гэрт", Default.ConvertWord("GERT"))
}

func TestWithExceptions(t *testing.T) {
	e := New(WithExceptions(map[string]string{
		"Ulaanbaatar": "Улаанбаатар",
		"gert":        "ГЭРТ",
		"ni":          "ни",
	}))

	assert.Equal(t, "Улаанбаатар хот", e.Convert("ulaanbaatar hot"))
	assert.Equal(t, "ГЭРТ", e.Convert("gert"))
	assert.Equal(t, "нь", e.Convert("ni"), "particle is handled before the lexicon")

	assert.Equal(t, "улаанбаатар", Convert("ulaanbaatar"), "default engine is unaffected")
	assert.Equal(t, "гэрт", Default.Lexicon()["gert"])
}

func TestLexiconReturnsCopy(t *testing.T) {
	lex := Default.Lexicon()
	lex["gert"] = "changed"
	assert.Equal(t, "гэрт", Convert("gert"))
	assert.Len(t, Default.Lexicon(), len(exceptions))
}

var corpus = []string{
	"ni",
	"sain bainuu",
	"mongol hel",
	"gert",
	"nomtoi",
	"manai gert shuudangiin hurgelt irsen",
	"onoodor odor huiten baina",
	"tsagaantai tsagaantei gertei",
	"nomiig gerliin hunii",
	"chi shine bagsh tand",
	"ochij zaluu tuuh udur",
	"nohoi tuhai tsai yuu",
	"ulaanbaatar hot",
	"minii ehnii usnii",
	"sain, bainuu.",
}

func TestConvertDeterministic(t *testing.T) {
	for _, text := range corpus {
		assert.Equal(t, Convert(text), Convert(text), text)
	}
}

func TestConvertPreservesTokenCount(t *testing.T) {
	for _, text := range corpus {
		in := strings.Fields(text)
		out := Convert(text)
		if len(in) == 0 {
			assert.Empty(t, out)
			continue
		}
		assert.Len(t, strings.Split(out, " "), len(in), text)
	}
}

func TestConvertHarmonyConsistency(t *testing.T) {
	for _, text := range corpus {
		for _, word := range strings.Fields(Convert(text)) {
			masculine := strings.ContainsAny(word, "оу")
			feminine := strings.ContainsAny(word, "өү")
			assert.False(t, masculine && feminine, "%q mixes harmony classes in %q", word, text)
		}
	}
}

func TestConvertConcurrent(t *testing.T) {
	want := make([]string, len(corpus))
	for i, text := range corpus {
		want[i] = Convert(text)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, text := range corpus {
				assert.Equal(t, want[i], Convert(text))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConvert(b *testing.B) {
	text := strings.Join(corpus, " ")
	for b.Loop() {
		Convert(text)
	}
}
