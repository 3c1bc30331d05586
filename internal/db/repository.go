package db

import (
	"context"
	"time"
)

// Conversion is a converted text kept in history.
type Conversion struct {
	ID        int64     `json:"id"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Surface   string    `json:"surface"`
	CreatedAt time.Time `json:"created_at"`
}

// Correction is a user's suggested spelling for one word of a conversion.
type Correction struct {
	ID           int64     `json:"id"`
	ConversionID int64     `json:"conversion_id"`
	Word         string    `json:"word"`
	Suggestion   string    `json:"suggestion"`
	CreatedAt    time.Time `json:"created_at"`
}

// Parameter structs for repository methods

type CreateConversionParams struct {
	Input   string
	Output  string
	Surface string
}

type ListConversionsParams struct {
	Limit  int32
	Offset int32
}

type CreateCorrectionParams struct {
	ConversionID int64
	Word         string
	Suggestion   string
}

type ListCorrectionsParams struct {
	Limit  int32
	Offset int32
}

// Repository defines the interface for database operations
type Repository interface {
	// Conversions
	CreateConversion(ctx context.Context, arg CreateConversionParams) (Conversion, error)
	GetConversion(ctx context.Context, id int64) (Conversion, error)
	ListConversions(ctx context.Context, arg ListConversionsParams) ([]Conversion, error)
	CountConversions(ctx context.Context) (int64, error)

	// Corrections
	CreateCorrection(ctx context.Context, arg CreateCorrectionParams) (Correction, error)
	ListCorrections(ctx context.Context, arg ListCorrectionsParams) ([]Correction, error)
	CountCorrections(ctx context.Context) (int64, error)

	// Retention/Cleanup
	DeleteOldConversions(ctx context.Context, before time.Time) (int64, error)
	DeleteOldCorrections(ctx context.Context, before time.Time) (int64, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Lifecycle
	Close() error
}
