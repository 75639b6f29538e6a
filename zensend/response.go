package zensend

import (
	"io"
	"mime"
	"net/http"
)

const jsonMediaType = "application/json"

// isJSON reports whether a Content-Type header names application/json.
// Parameters such as charset are ignored.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == jsonMediaType
}

// handleResponse classifies res and decodes its envelope. Non-JSON bodies
// such as HTML error pages are never read.
func handleResponse[T any](res *http.Response) (*T, error) {
	if !isJSON(res.Header.Get("Content-Type")) {
		return nil, unexpectedResponseError(res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(err)
	}

	return decodeEnvelope[T](res.StatusCode, body)
}
