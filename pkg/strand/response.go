package strand

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful (2xx) service response with its body fully read.
type Response struct {
	status int
	header http.Header
	body   []byte
}

func (r *Response) StatusCode() int {
	return r.status
}

func (r *Response) Header() http.Header {
	return r.header
}

func (r *Response) Body() []byte {
	return r.body
}

func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
