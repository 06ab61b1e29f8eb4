package models

// RawDocument is an uploaded or downloaded file held in memory for one request.
type RawDocument struct {
	Filename string
	Data     []byte
}

// RemoteDocument is what a fetch returned, whatever its status.
type RemoteDocument struct {
	Data        []byte
	ContentType string
	StatusCode  int
}

// StoredObject is a document read from object storage.
type StoredObject struct {
	Data        []byte
	ContentType string
}

// Envelope is the body of every /ocr and /ocr/url answer.
// Code 200 carries Data, any other code carries Msg.
type Envelope struct {
	Code       int      `json:"code"`
	Data       *string  `json:"data,omitempty"`
	Msg        *string  `json:"msg,omitempty"`
	CostTimeMs *float64 `json:"cost_time_ms,omitempty"`
}

// SuccessEnvelope wraps extracted text.
func SuccessEnvelope(text string, costMs float64) Envelope {
	return Envelope{Code: 200, Data: &text, CostTimeMs: &costMs}
}

// FailureEnvelope wraps an internal error message.
func FailureEnvelope(code int, msg string, costMs float64) Envelope {
	return Envelope{Code: code, Msg: &msg, CostTimeMs: &costMs}
}

// HealthStatus is the /health body.
type HealthStatus struct {
	Status string `json:"status"`
}
