package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantBody   string
		wantSize   int64
	}{
		{
			name:       "explicit status",
			write:      func(rw *ResponseWriter) { rw.WriteHeader(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "first status wins",
			write: func(rw *ResponseWriter) {
				rw.WriteHeader(http.StatusBadGateway)
				rw.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "body implies 200",
			write:      func(rw *ResponseWriter) { _, _ = rw.Write([]byte("hello")) },
			wantStatus: http.StatusOK,
			wantBody:   "hello",
			wantSize:   5,
		},
		{
			name: "status then body",
			write: func(rw *ResponseWriter) {
				rw.WriteHeader(http.StatusAccepted)
				_, _ = rw.Write([]byte("ok"))
				_, _ = rw.Write([]byte("!"))
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "ok!",
			wantSize:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rw := NewResponseWriter(rec)
			if rw.Written() {
				t.Fatal("Written() = true before any write")
			}

			tt.write(rw)

			if !rw.Written() {
				t.Error("Written() = false after write")
			}
			if rw.Status() != tt.wantStatus || rec.Code != tt.wantStatus {
				t.Errorf("status = %d (recorder %d), want %d", rw.Status(), rec.Code, tt.wantStatus)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if rw.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", rw.Size(), tt.wantSize)
			}
		})
	}
}

func TestResponseWriter_FlushAndUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	rw.Flush()
	if !rec.Flushed {
		t.Error("Flush() did not reach the underlying writer")
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}

func TestNewContext_ReusesResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	outer := newContext(w, r, nil)
	inner := newContext(outer.Response(), r, nil)

	if inner.writer != outer.writer {
		t.Fatal("nested context wrapped the writer twice")
	}

	_ = inner.NoContent(http.StatusNoContent)
	if !outer.Written() {
		t.Error("outer context did not see the nested write")
	}
}
