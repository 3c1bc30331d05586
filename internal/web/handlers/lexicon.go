package handlers

import (
	"net/http"
	"slices"

	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/samber/lo"
)

type LexiconHandler struct {
	engine *transliteration.Engine
}

func NewLexiconHandler(engine *transliteration.Engine) *LexiconHandler {
	return &LexiconHandler{engine: engine}
}

type lexiconEntry struct {
	Latin    string `json:"latin"`
	Cyrillic string `json:"cyrillic"`
}

// List returns the active exception lexicon sorted by its Latin keys.
func (h *LexiconHandler) List(w http.ResponseWriter, r *http.Request) {
	lexicon := h.engine.Lexicon()
	keys := lo.Keys(lexicon)
	slices.Sort(keys)

	writeJSON(w, http.StatusOK, struct {
		Data []lexiconEntry `json:"data"`
	}{
		Data: lo.Map(keys, func(k string, _ int) lexiconEntry {
			return lexiconEntry{Latin: k, Cyrillic: lexicon[k]}
		}),
	})
}
