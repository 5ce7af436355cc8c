package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// InvokeHandler accepts function-invocation events and re-dispatches them as
// regular HTTP requests against the service's own routes, so the API stays
// reachable for callers that can only invoke, not connect.
type InvokeHandler struct {
	BaseHandler
	target http.Handler
}

// NewInvokeHandler creates a new InvokeHandler. The dispatch target is set
// after the routes exist, via SetTarget.
func NewInvokeHandler() *InvokeHandler {
	return &InvokeHandler{}
}

// SetTarget wires the handler the events are replayed against
func (h *InvokeHandler) SetTarget(target http.Handler) {
	h.target = target
}

// RegisterRoutes registers the invocation route on the given group
func (h *InvokeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoke", h.Invoke)
}

// InvokeRequest is the API-gateway style event shape
type InvokeRequest struct {
	HTTPMethod  string            `json:"httpMethod" binding:"required"`
	Path        string            `json:"path" binding:"required"`
	QueryParams map[string]string `json:"queryParams"`
	Body        json.RawMessage   `json:"body"`
}

// InvokeResponse mirrors the API-gateway result shape
type InvokeResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// Invoke replays the embedded request against the service's routes and wraps
// the result in the invocation envelope
func (h *InvokeHandler) Invoke(c *gin.Context) {
	if h.target == nil {
		h.InternalError(c, "Invocation target is not configured")
		return
	}

	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	// The embedded path must stay inside the service; nested invocation
	// events are refused to prevent unbounded recursion.
	if strings.HasSuffix(strings.TrimRight(req.Path, "/"), "/invoke") {
		h.BadRequest(c, "Nested invocation events are not allowed")
		return
	}

	query := url.Values{}
	for k, v := range req.QueryParams {
		query.Set(k, v)
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	inner, err := http.NewRequestWithContext(c.Request.Context(), strings.ToUpper(req.HTTPMethod), req.Path, body)
	if err != nil {
		h.BadRequest(c, "Invalid embedded request")
		return
	}
	inner.URL.RawQuery = query.Encode()
	if body != nil {
		inner.Header.Set("Content-Type", "application/json")
	}

	recorder := newResponseCapture()
	h.target.ServeHTTP(recorder, inner)

	raw := recorder.body.Bytes()
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(string(raw))
		raw = quoted
	}

	c.JSON(http.StatusOK, InvokeResponse{
		StatusCode: recorder.status,
		Body:       raw,
	})
}

// responseCapture is a minimal in-memory http.ResponseWriter
type responseCapture struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseCapture() *responseCapture {
	return &responseCapture{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (r *responseCapture) Header() http.Header {
	return r.header
}

func (r *responseCapture) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

func (r *responseCapture) WriteHeader(status int) {
	r.status = status
}
