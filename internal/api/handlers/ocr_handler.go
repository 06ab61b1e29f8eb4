package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appMiddleware "github.com/markdave123-py/docsight/internal/api/middlewares"
	"github.com/markdave123-py/docsight/internal/models"
)

const (
	multipartMemory = 32 << 20
	maxURLBody      = 1 << 20
)

type documentExtractor interface {
	ExtractUpload(ctx context.Context, doc models.RawDocument) (string, error)
	ExtractURL(ctx context.Context, rawURL string) (string, error)
}

type OCRHandler struct {
	svc       documentExtractor
	maxUpload int64
}

func NewOCRHandler(svc documentExtractor, maxUploadBytes int64) *OCRHandler {
	return &OCRHandler{svc: svc, maxUpload: maxUploadBytes}
}

type urlRequest struct {
	URL string `json:"url"`
}

// ExtractFile handles a multipart upload in the "file" field.
func (h *OCRHandler) ExtractFile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, "field required: file")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeResult(w, r, "", err, start)
		return
	}

	logCaller(r, "ocr upload", "filename", header.Filename, "bytes", len(data))
	text, err := h.svc.ExtractUpload(r.Context(), models.RawDocument{Filename: header.Filename, Data: data})
	writeResult(w, r, text, err, start)
}

// ExtractURL handles {"url": "..."} and extracts the downloaded document.
func (h *OCRHandler) ExtractURL(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req urlRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxURLBody)).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: url")
		return
	}

	logCaller(r, "ocr url", "url", req.URL)
	text, err := h.svc.ExtractURL(r.Context(), req.URL)
	writeResult(w, r, text, err, start)
}

func logCaller(r *http.Request, msg string, args ...any) {
	if userID, ok := appMiddleware.UserIDFromContext(r.Context()); ok {
		args = append(args, "user_id", userID)
	}
	slog.InfoContext(r.Context(), msg, args...)
}
