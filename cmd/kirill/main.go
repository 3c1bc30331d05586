package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := ff.NewFlagSet("kirill")
	var (
		explain     = fs.BoolLong("explain", "Print how each word was converted as JSON lines")
		lexiconPath = fs.StringLong("lexicon", "", "YAML file of extra exception words")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("KIRILL")); err != nil {
		fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	engine, err := transliteration.LoadEngine(*lexiconPath)
	if err != nil {
		return err
	}

	emit := func(line string) error {
		if !*explain {
			_, err := fmt.Fprintln(stdout, engine.Convert(line))
			return err
		}
		enc := json.NewEncoder(stdout)
		for _, w := range engine.Explain(line) {
			if err := enc.Encode(w); err != nil {
				return err
			}
		}
		return nil
	}

	if rest := fs.GetArgs(); len(rest) > 0 {
		return emit(strings.Join(rest, " "))
	}

	// Lines may exceed bufio.Scanner's 64 KiB token limit.
	reader := bufio.NewReader(stdin)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if emitErr := emit(line); emitErr != nil {
				return emitErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
}
