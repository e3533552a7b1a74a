package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPExporter implements Exporter by posting an export request to a
// document-render service. The call is fire-and-forget from the catalog's
// perspective; callers log failures and move on.
type HTTPExporter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPExporter creates an exporter targeting endpoint. An empty endpoint
// disables export (ExportDocument becomes a no-op).
func NewHTTPExporter(endpoint string) *HTTPExporter {
	return &HTTPExporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ExportDocument asks the render service to produce a document for the given
// element, hinting the download filename.
func (e *HTTPExporter) ExportDocument(ctx context.Context, elementID, filename string) error {
	if e.endpoint == "" {
		return nil
	}
	body, err := json.Marshal(map[string]string{
		"elementId": elementID,
		"filename":  filename,
	})
	if err != nil {
		return fmt.Errorf("export: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("export: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("export: calling render service: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("export: render service returned %s", res.Status)
	}
	return nil
}
