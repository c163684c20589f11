package api

// GenerateTokenRequest represents the request payload for token issuance
type GenerateTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerateTokenResponse represents the response payload for token issuance
type GenerateTokenResponse struct {
	Token            string `json:"token"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

// ValidateRequest represents the request payload for serial validation.
// materialCode, dealerCode and accessKey are optional under the
// serial-only ruleset.
type ValidateRequest struct {
	SerialNumber string `json:"serialNumber"`
	MaterialCode string `json:"materialCode,omitempty"`
	DealerCode   string `json:"dealerCode,omitempty"`
	AccessKey    string `json:"accessKey,omitempty"`
}

// ValidateResponse represents the response payload for serial validation.
// The status is string-typed; every outcome is carried in the body with
// HTTP 200.
type ValidateResponse struct {
	ResponseStatus  string `json:"responseStatus"`
	ResponseMessage string `json:"responseMessage"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
