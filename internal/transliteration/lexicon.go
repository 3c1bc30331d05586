package transliteration

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// LoadLexicon reads extra exception entries from a YAML mapping of Latin
// words to their Cyrillic spelling.
func LoadLexicon(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	return ParseLexicon(data)
}

func ParseLexicon(data []byte) (map[string]string, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}

	entries := make(map[string]string, len(raw))
	for k, v := range raw {
		key := lower(strings.TrimSpace(k))
		value := strings.TrimSpace(v)
		if key == "" || value == "" {
			return nil, fmt.Errorf("lexicon entry %q: word and spelling must both be set", k)
		}
		if strings.ContainsFunc(key, unicode.IsSpace) {
			return nil, fmt.Errorf("lexicon entry %q: must be a single word", k)
		}
		entries[key] = value
	}
	return entries, nil
}

// LoadEngine returns Default when path is empty, otherwise an engine whose
// lexicon is extended with the entries in the file at path.
func LoadEngine(path string) (*Engine, error) {
	if path == "" {
		return Default, nil
	}
	extra, err := LoadLexicon(path)
	if err != nil {
		return nil, err
	}
	return New(WithExceptions(extra)), nil
}
