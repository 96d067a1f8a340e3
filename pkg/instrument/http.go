package instrument

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/jt828/observation/pkg/observation"
)

// HTTPServer wraps next so every request runs inside an
// "http.server.requests" observation. Low-cardinality key-values: method,
// status, outcome; the raw path is high-cardinality. 5xx responses record
// an error on the observation.
func HTTPServer(reg *observation.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		octx, obs := observation.Start(r.Context(), "http.server.requests", reg,
			observation.WithContextualName("HTTP "+r.Method),
			observation.WithLowCardinalityKeyValue("http.method", r.Method),
			observation.WithHighCardinalityKeyValue("http.url", r.URL.Path),
		)
		defer func() {
			if rec := recover(); rec != nil {
				obs.Error(fmt.Errorf("panic: %v", rec))
				obs.Stop()
				panic(rec)
			}
			obs.Stop()
		}()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(octx))

		obs.LowCardinalityKeyValue("http.status", strconv.Itoa(sw.status))
		obs.LowCardinalityKeyValue("outcome", outcome(sw.status))
		if sw.status >= http.StatusInternalServerError {
			obs.Error(fmt.Errorf("http server status %d", sw.status))
		}
	})
}

// HTTPTransport is an http.RoundTripper producing "http.client.requests"
// observations. Base defaults to http.DefaultTransport.
type HTTPTransport struct {
	Base     http.RoundTripper
	Registry *observation.Registry
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	octx, obs := observation.Start(req.Context(), "http.client.requests", t.Registry,
		observation.WithContextualName("HTTP "+req.Method),
		observation.WithLowCardinalityKeyValue("http.method", req.Method),
		observation.WithHighCardinalityKeyValue("http.url", req.URL.String()),
	)
	defer obs.Stop()

	resp, err := base.RoundTrip(req.WithContext(octx))
	if err != nil {
		obs.Error(err)
		return resp, err
	}

	obs.LowCardinalityKeyValue("http.status", strconv.Itoa(resp.StatusCode))
	obs.LowCardinalityKeyValue("outcome", outcome(resp.StatusCode))
	return resp, nil
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Flush and Hijack keep streaming and websocket handlers working behind
// the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func outcome(status int) string {
	switch {
	case status < 200:
		return "informational"
	case status < 300:
		return "success"
	case status < 400:
		return "redirection"
	case status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}
