package models

// Envelope is the uniform response shape for the three operation endpoints.
// Exactly one of Data/Error is set; the other is omitted from the JSON.
type Envelope struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`  // markdown, set when Success
	Error   string `json:"error,omitempty"` // summarized message, set when !Success
}

// Ok wraps markdown data in a success envelope.
func Ok(data string) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error message in a failure envelope.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// Health is the GET /health response. Always healthy; the probe carries no
// dependency on upstream reachability.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"` // UTC, RFC 3339
}

// APIInfo is the GET / response.
type APIInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Health      string `json:"health"`
	Tools       string `json:"tools"`
}

// Tool describes one operation in the GET /tools catalog, shaped for import
// into agent platforms (parameters follow JSON Schema conventions).
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolsResponse is the GET /tools response.
type ToolsResponse struct {
	Success bool   `json:"success"`
	Tools   []Tool `json:"tools"`
}
