package transliteration

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigraphRuleOrder(t *testing.T) {
	want := []rule{
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
	assert.Equal(t, want, digraphRules)
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"sain", "sайn"},
		{"bagsh", "bagш"},
		{"chi", "чi"},
		{"tsetsen", "цeцen"},
		{"yum", "юm"},
		{"bayarlalaa", "baяrlalaa"},
		{"minii", "minий"},
		{"gertei", "gertэй"},
		{"nom", "nom"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := rewrite(tt.word); got != tt.want {
			t.Errorf("rewrite(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestRewriteOrderMatters(t *testing.T) {
	assert.Equal(t, "айi", rewrite("aii"))

	reordered := slices.Clone(digraphRules)
	reordered[0], reordered[2] = reordered[2], reordered[0]
	assert.Equal(t, "aий", applyRules("aii", reordered))
}

func TestRewriteEarlierRuleConsumesLater(t *testing.T) {
	// "ya" runs before "iyaa", so the longer pattern never sees its input.
	assert.Equal(t, "ahiяa", rewrite("ahiyaa"))
}
