package apimodels

type CompareRequest struct {
	// Query is the free-text policy question to compare
	Query string `json:"query"`
}
