package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "args",
			args: []string{"sain", "bainuu"},
			want: "сайн байнуу\n",
		},
		{
			name:  "stdin keeps lines",
			stdin: "mongol hel\n\nni\n",
			want:  "монгол хэл\n\nнь\n",
		},
		{
			name: "args win over stdin",
			args:  []string{"gert"},
			stdin: "ignored",
			want:  "гэрт\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(tt.args, strings.NewReader(tt.stdin), &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunLongStdinLine(t *testing.T) {
	const words = 40_000 // well past bufio.Scanner's 64 KiB token limit
	in := strings.TrimSpace(strings.Repeat("nom ", words))
	want := strings.TrimSpace(strings.Repeat("ном ", words)) + "\n"

	var out bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader(in+"\n"), &out))
	assert.Equal(t, want, out.String())
}

func TestRunExplain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--explain", "ni", "nomtoi"}, strings.NewReader(""), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first transliteration.WordTrace
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "нь", first.Output)
	assert.Equal(t, transliteration.PathSpecial, first.Path)
}

func TestRunLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("darkhan: дархан\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--lexicon", path, "darkhan"}, strings.NewReader(""), &out))
	assert.Equal(t, "дархан\n", out.String())
}

func TestRunMissingLexicon(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--lexicon", filepath.Join(t.TempDir(), "nope.yaml"), "sain"}, strings.NewReader(""), &out)
	assert.Error(t, err)
}
