package dtos

// ValidationErrorDetail is the structured shape of a single validation
// failure inside an error response.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
