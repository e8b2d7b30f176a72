package apimodels

type CompareResponse struct {
	// Summary grounded in the Conservative Party document
	Conservative string `json:"conservative"`

	// Summary grounded in the Liberal Party document
	Liberal string `json:"liberal"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Message string `json:"message"`
}
