package responsewriter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/internal/handler/http/responsewriter"
)

func TestWrap_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	if _, err := w.Write([]byte("missing")); err != nil {
		t.Fatal(err)
	}

	if w.StatusCode() != http.StatusNotFound {
		t.Fatalf("status = %d", w.StatusCode())
	}
	if w.BytesWritten() != len("missing") {
		t.Fatalf("bytes = %d", w.BytesWritten())
	}
}

func TestWrap_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	if _, err := w.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}
	if w.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", w.StatusCode())
	}
}

func TestWrap_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusCreated {
		t.Fatalf("status = %d", w.StatusCode())
	}
}
