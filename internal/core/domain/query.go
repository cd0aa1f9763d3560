package domain

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// K is the maximum number of results. Must be positive.
	K int

	// UserID scopes the query to a single owner. Empty means unscoped.
	UserID string
}

// Scoped reports whether the query is restricted to one user.
func (o QueryOptions) Scoped() bool {
	return o.UserID != ""
}

// QueryResult is a single ranked retrieval hit.
type QueryResult struct {
	// Doc is the matched document.
	Doc StoredDoc `json:"doc"`

	// Score is the cosine similarity between the query and the document's vector.
	Score float64 `json:"score"`
}
