package models

// Response is the envelope every HTTP handler answers with.
type Response struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Data        any    `json:"data"`
}
