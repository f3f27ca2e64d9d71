package viewer

import (
	"net/http"
	"net/url"
)

// StaticRequest is a RequestContext over plain query values. It backs the
// CLI and tests.
type StaticRequest struct {
	Values url.Values
	Header http.Header
}

// NewStaticRequest returns a request with the given project ID; "" means none.
func NewStaticRequest(projectID string) *StaticRequest {
	v := url.Values{}
	if projectID != "" {
		v.Set(QueryProjectID, projectID)
	}
	return &StaticRequest{Values: v, Header: http.Header{}}
}

func (r *StaticRequest) Query(key string) string {
	return r.Values.Get(key)
}

func (r *StaticRequest) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
}
