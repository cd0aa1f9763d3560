package domain

import (
	"math"
	"slices"
)

// EmbeddingRow holds the vector for a single document.
type EmbeddingRow struct {
	// DocID references the StoredDoc this vector describes.
	DocID string `json:"doc_id"`

	// Dim is the vector length.
	Dim int `json:"dim"`

	// Vector is the embedding itself. len(Vector) == Dim.
	Vector []float32 `json:"vector"`
}

// Clone returns a deep copy of the row.
func (r EmbeddingRow) Clone() EmbeddingRow {
	r.Vector = slices.Clone(r.Vector)
	return r
}

// Validate checks the row is well formed, filling Dim from the vector when unset.
// It does not check the row against any store dimension.
func (r *EmbeddingRow) Validate() error {
	if r.DocID == "" {
		return ErrInvalidArgument
	}
	if len(r.Vector) == 0 {
		return ErrInvalidArgument
	}
	if r.Dim == 0 {
		r.Dim = len(r.Vector)
	}
	if r.Dim != len(r.Vector) {
		return ErrInvalidArgument
	}
	if !Finite(r.Vector) {
		return ErrInvalidArgument
	}
	return nil
}

// Finite reports whether every component of v is a finite number.
func Finite(v []float32) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
