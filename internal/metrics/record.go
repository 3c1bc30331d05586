package metrics

import "github.com/jusunglee/kirill/internal/transliteration"

// ObserveConversion records one converted text and the engine path taken for
// each of its words.
func ObserveConversion(surface string, input string, words []transliteration.WordTrace) {
	ConversionsTotal.WithLabelValues(surface).Inc()
	ConversionInputBytes.Observe(float64(len(input)))
	for _, w := range words {
		WordsTotal.WithLabelValues(string(w.Path)).Inc()
	}
}
