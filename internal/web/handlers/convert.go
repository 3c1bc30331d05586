package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/metrics"
	"github.com/jusunglee/kirill/internal/transliteration"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxTextBytes bounds a single text submitted for conversion.
	MaxTextBytes = 10_000
	// MaxBatchTexts bounds the number of texts in one batch request.
	MaxBatchTexts = 100

	maxBodyBytes     = 2 << 20
	batchConcurrency = 8
)

type ConvertHandler struct {
	engine *transliteration.Engine
	repo   db.Repository
	log    *slog.Logger
}

func NewConvertHandler(engine *transliteration.Engine, repo db.Repository, log *slog.Logger) *ConvertHandler {
	return &ConvertHandler{engine: engine, repo: repo, log: log}
}

type convertRequest struct {
	Text    string `json:"text"`
	Explain bool   `json:"explain"`
	Save    bool   `json:"save"`
}

type convertResponse struct {
	ID     *int64                      `json:"id,omitempty"`
	Input  string                      `json:"input"`
	Output string                      `json:"output"`
	Words  []transliteration.WordTrace `json:"words,omitempty"`
}

func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Text) > MaxTextBytes {
		writeError(w, http.StatusBadRequest, "text must be 10000 bytes or fewer")
		return
	}

	words := h.engine.Explain(req.Text)
	metrics.ObserveConversion("web", req.Text, words)

	resp := convertResponse{
		Input:  req.Text,
		Output: transliteration.Join(words),
	}
	if req.Explain {
		resp.Words = words
	}

	if req.Save && resp.Output != "" {
		c, err := h.repo.CreateConversion(r.Context(), db.CreateConversionParams{
			Input:   req.Text,
			Output:  resp.Output,
			Surface: "web",
		})
		if err != nil {
			h.log.ErrorContext(r.Context(), "saving conversion", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.ID = &c.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

func (h *ConvertHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > MaxBatchTexts {
		writeError(w, http.StatusBadRequest, "at most 100 texts per batch")
		return
	}
	for _, text := range req.Texts {
		if len(text) > MaxTextBytes {
			writeError(w, http.StatusBadRequest, "each text must be 10000 bytes or fewer")
			return
		}
	}

	results := make([]batchResult, len(req.Texts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i, text := range req.Texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			words := h.engine.Explain(text)
			metrics.ObserveConversion("web", text, words)
			results[i] = batchResult{Input: text, Output: transliteration.Join(words)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.log.WarnContext(r.Context(), "batch conversion abandoned", "error", err)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Results []batchResult `json:"results"`
	}{Results: results})
}
