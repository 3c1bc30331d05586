package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kirill/internal/logger"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

type scenario struct {
	input string
	want  string
}

var corpus = []scenario{
	{"ni", "нь"},
	{"sain bainuu", "сайн байнуу"},
	{"mongol hel", "монгол хэл"},
	{"gert", "гэрт"},
	{"nomtoi", "номтой"},
	{"bayarlalaa", "баярлалаа"},
	{"minii ner", "миний нэр"},
	{"", ""},
}

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kirill-e2e")
	baseURL := fs.StringLong("base-url", "http://localhost:3000", "Web server to probe")

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("E2E")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 10 * time.Second}

	if err := checkHealth(ctx, client, *baseURL); err != nil {
		return err
	}
	log.InfoContext(ctx, "server healthy", "base_url", *baseURL)

	var errs []error
	results := make([]error, len(corpus))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, sc := range corpus {
		g.Go(func() error {
			got, err := convert(gctx, client, *baseURL, sc.input)
			switch {
			case err != nil:
				results[i] = fmt.Errorf("converting %q: %w", sc.input, err)
			case got != sc.want:
				results[i] = fmt.Errorf("converting %q: got %q, want %q", sc.input, got, sc.want)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err != nil {
			log.ErrorContext(ctx, "scenario failed", "input", corpus[i].input, "error", err)
			errs = append(errs, err)
			continue
		}
		log.InfoContext(ctx, "scenario passed", "input", corpus[i].input, "output", corpus[i].want)
	}
	return errors.Join(errs...)
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: status %d", resp.StatusCode)
	}
	return nil
}

func convert(ctx context.Context, client *http.Client, baseURL, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/convert", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var out struct {
		Output string `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.Output, nil
}
