package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jusunglee/kirill/internal/db"
	"github.com/jusunglee/kirill/internal/metrics"
)

// MaxCorrectionChars bounds both the word and the suggestion of a correction.
const MaxCorrectionChars = 200

type HistoryHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewHistoryHandler(repo db.Repository, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

func (h *HistoryHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	total, err := h.repo.CountConversions(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	conversions, err := h.repo.ListConversions(r.Context(), db.ListConversionsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if conversions == nil {
		conversions = []db.Conversion{}
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []db.Conversion `json:"data"`
		Pagination paginationMeta  `json:"pagination"`
	}{
		Data:       conversions,
		Pagination: paginationMeta{Page: page, Limit: limit, Total: total},
	})
}

func (h *HistoryHandler) GetConversion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.repo.GetConversion(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "conversion not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting conversion", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type createCorrectionRequest struct {
	Word       string `json:"word"`
	Suggestion string `json:"suggestion"`
}

func (h *HistoryHandler) CreateCorrection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req createCorrectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Word = strings.TrimSpace(req.Word)
	req.Suggestion = strings.TrimSpace(req.Suggestion)
	if req.Word == "" || req.Suggestion == "" {
		metrics.CorrectionSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "word and suggestion are required")
		return
	}
	if utf8.RuneCountInString(req.Word) > MaxCorrectionChars || utf8.RuneCountInString(req.Suggestion) > MaxCorrectionChars {
		metrics.CorrectionSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "word and suggestion must be 200 characters or fewer")
		return
	}

	var correction db.Correction
	err := h.repo.WithTx(r.Context(), func(tx db.Repository) error {
		if _, err := tx.GetConversion(r.Context(), id); err != nil {
			return err
		}
		var err error
		correction, err = tx.CreateCorrection(r.Context(), db.CreateCorrectionParams{
			ConversionID: id,
			Word:         req.Word,
			Suggestion:   req.Suggestion,
		})
		return err
	})
	if err != nil {
		if db.IsNotFound(err) {
			metrics.CorrectionSubmissions.WithLabelValues("not_found").Inc()
			writeError(w, http.StatusNotFound, "conversion not found")
			return
		}
		metrics.CorrectionSubmissions.WithLabelValues("error").Inc()
		h.log.ErrorContext(r.Context(), "creating correction", "conversion_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.CorrectionSubmissions.WithLabelValues("created").Inc()
	h.log.InfoContext(r.Context(), "correction submitted", "conversion_id", id, "word", req.Word)
	writeJSON(w, http.StatusCreated, correction)
}

func (h *HistoryHandler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	total, err := h.repo.CountCorrections(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting corrections", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	corrections, err := h.repo.ListCorrections(r.Context(), db.ListCorrectionsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing corrections", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if corrections == nil {
		corrections = []db.Correction{}
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []db.Correction `json:"data"`
		Pagination paginationMeta  `json:"pagination"`
	}{
		Data:       corrections,
		Pagination: paginationMeta{Page: page, Limit: limit, Total: total},
	})
}
