package server

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxaudit/luxaudit/internal/common"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := common.ServerConfig{Addr: "127.0.0.1:0", MaxUploadBytes: 1 << 20}
	return New(cfg, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func multipartUpload(t *testing.T, filename, mode, standard string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("%PDF-1.4"))
	mw.WriteField("mode", mode)
	mw.WriteField("standard", standard)
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestHandleAnalyze_RejectsUnknownMode(t *testing.T) {
	s := newTestServer(t)
	body, ctype := multipartUpload(t, "report.pdf", "turbo", "")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleAnalyze_RejectsUnknownStandard(t *testing.T) {
	s := newTestServer(t)
	body, ctype := multipartUpload(t, "report.pdf", "fast", "DIN-5035")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleGetRun_RejectsMalformedID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}
