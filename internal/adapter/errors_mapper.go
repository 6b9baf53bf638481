package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/go-resty/resty/v2"
)

// ipfsError is the error body of the Kubo RPC API.
type ipfsError struct {
	Message string `json:"Message"`
	Code    int    `json:"Code"`
	Type    string `json:"Type"`
}

// missingContentMarkers are fragments of Kubo error messages that mean the
// requested CID does not resolve to content.
var missingContentMarkers = []string{
	"not found",
	"invalid path",
	"invalid cid",
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var apiErr ipfsError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Message != "" {
		body = apiErr.Message
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", store.ErrBlobNotFound, body)
	}

	lower := strings.ToLower(body)
	for _, marker := range missingContentMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %s", store.ErrBlobNotFound, body)
		}
	}

	return fmt.Errorf("%w: http %d: %s", store.ErrBlobStoreUnavailable, resp.StatusCode(), body)
}
