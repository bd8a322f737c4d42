package odata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UpstreamError là response non-2xx từ SAP. Status được propagate nguyên văn
// về client; Details là body thô (SAP có thể trả HTML/XML, không giả định JSON).
type UpstreamError struct {
	Status  int
	Details string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("SAP OData request failed with status %d", e.Status)
}

// Result là response đã bóc khỏi envelope OData v2
type Result struct {
	// Data là d.results (collection), d (singleton) hoặc body thô
	Data interface{}
	// Count là len(Data) với collection, 1 với singleton
	Count int
}

// Fetcher issues authenticated GETs against the SAP OData backend.
// One fetch per invocation: no retry, no cache. The timeout is explicit —
// relying on http.DefaultClient would mean no timeout at all.
type Fetcher struct {
	client *http.Client
}

// NewFetcher tạo fetcher với timeout chỉ định cho outbound HTTP
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewFetcherWithClient cho phép inject http.Client (dùng trong tests)
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch gọi GET với Basic auth và bóc envelope OData v2.
// Non-2xx trả về *UpstreamError; lỗi network/parse trả về error thường.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, username, password string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Đọc body best-effort làm chi tiết chẩn đoán
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode, Details: string(body)}
	}

	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON from SAP OData service: %w", err)
	}

	data := unwrapEnvelope(body)

	count := 1
	if arr, ok := data.([]interface{}); ok {
		count = len(arr)
	}

	return &Result{Data: data, Count: count}, nil
}

// unwrapEnvelope bóc envelope OData v2: body.d.results (collection),
// body.d (singleton), hoặc body nguyên văn khi response không theo chuẩn.
func unwrapEnvelope(body interface{}) interface{} {
	m, ok := body.(map[string]interface{})
	if !ok {
		return body
	}
	d, ok := m["d"]
	if !ok {
		return body
	}
	if dm, ok := d.(map[string]interface{}); ok {
		if results, ok := dm["results"]; ok {
			return results
		}
	}
	return d
}
