// Package transliteration converts romanized Mongolian written in Latin
// letters into Mongolian Cyrillic.
package transliteration

import (
	"maps"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Path records which part of the engine produced a word.
type Path string

const (
	PathSpecial   Path = "special"
	PathSuffix    Path = "suffix"
	PathException Path = "exception"
	PathRules     Path = "rules"
)

// WordTrace describes how a single token was converted.
type WordTrace struct {
	Input   string  `json:"input"`
	Output  string  `json:"output"`
	Path    Path    `json:"path"`
	Suffix  string  `json:"suffix,omitempty"`
	Harmony Harmony `json:"harmony"`
}

// Engine holds the lookup tables used for conversion. It is safe for
// concurrent use; nothing is mutated after New returns.
type Engine struct {
	exceptions map[string]string
	suffixes   []suffix
}

type Option func(*Engine)

// WithExceptions adds entries to the exception lexicon, replacing built-in
// entries with the same key. It does not affect the "ni" particle.
func WithExceptions(extra map[string]string) Option {
	return func(e *Engine) {
		for k, v := range extra {
			e.exceptions[lower(k)] = v
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		exceptions: maps.Clone(exceptions),
		suffixes:   suffixes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Default uses the built-in tables only.
var Default = New()

// Convert transliterates text with the Default engine.
func Convert(text string) string {
	return Default.Convert(text)
}

// Convert lower-cases text, converts each whitespace separated token and
// joins the results with single spaces. Characters with no mapping, such as
// punctuation and digits, are copied through.
func (e *Engine) Convert(text string) string {
	return Join(e.Explain(text))
}

// Join assembles converted words into output text.
func Join(words []WordTrace) string {
	out := lo.Map(words, func(w WordTrace, _ int) string {
		return w.Output
	})
	return strings.Join(out, " ")
}

// Explain converts text like Convert but returns the per-token decisions.
func (e *Engine) Explain(text string) []WordTrace {
	tokens := strings.Fields(lower(text))
	return lo.Map(tokens, func(token string, _ int) WordTrace {
		return e.convertToken(token)
	})
}

// ConvertWord runs a single word through the lexicon and the rules, skipping
// suffix resolution.
func (e *Engine) ConvertWord(word string) string {
	out, _, _ := e.convertWord(lower(word))
	return out
}

// Lexicon returns a copy of the exception lexicon.
func (e *Engine) Lexicon() map[string]string {
	return maps.Clone(e.exceptions)
}

func (e *Engine) convertToken(token string) WordTrace {
	// The particle is handled ahead of everything else so that edits to the
	// lexicon cannot change it.
	if token == "ni" {
		return WordTrace{Input: token, Output: "нь", Path: PathSpecial, Harmony: Feminine}
	}
	return e.resolveSuffix(token)
}

func (e *Engine) convertWord(word string) (string, Path, Harmony) {
	if v, ok := e.exceptions[word]; ok {
		return v, PathException, Classify(v)
	}

	result := rewrite(word)
	h := Classify(result)
	result = applyHarmony(result, h)
	return mapRemaining(result), PathRules, h
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
