package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// ValidationErrorResponse is returned when a submitted report is rejected. The
// draft is echoed back so the form can be re-presented as it was sent.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Draft   IssueReport       `json:"draft"`
}
