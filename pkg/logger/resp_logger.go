// Package logger provides an http.ResponseWriter wrapper that records the
// response status code and body size for the access-log pipeline.
package logger

import "net/http"

// ResponseLogger wraps an http.ResponseWriter and remembers what was
// written to it. Handlers that never call WriteHeader are reported as
// http.StatusOK.
type ResponseLogger struct {
	w      http.ResponseWriter
	status int
	size   int
}

func New(w http.ResponseWriter) *ResponseLogger {
	return &ResponseLogger{w: w, status: http.StatusOK}
}

func (l *ResponseLogger) WriteHeader(code int) {
	l.status = code
	l.w.WriteHeader(code)
}

func (l *ResponseLogger) Write(b []byte) (int, error) {
	n, err := l.w.Write(b)
	l.size += n

	return n, err
}

func (l *ResponseLogger) Header() http.Header {
	return l.w.Header()
}

// Status returns the status code sent to the client.
func (l *ResponseLogger) Status() int {
	return l.status
}

// Size returns the number of response body bytes written so far.
func (l *ResponseLogger) Size() int {
	return l.size
}
