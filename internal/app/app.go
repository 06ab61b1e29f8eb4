// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/markdave123-py/docsight/internal/config"
	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/core/external"
	"github.com/markdave123-py/docsight/internal/core/extraction_engine"
	"github.com/markdave123-py/docsight/internal/core/fetcher"
	"github.com/markdave123-py/docsight/internal/core/llm"
	objectclient "github.com/markdave123-py/docsight/internal/core/object-client"
	"github.com/markdave123-py/docsight/internal/services"
)

type App struct {
	OCR    core.OCREngine
	Server *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	ocr, err := newOCREngine(appCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the OCR engine, %w", err)
	}
	slog.Info("OCR engine initialized and ready.", "engine", ocr.Name())

	rasterizer, err := external.NewPdftoppmRasterizer(cfg.PdftoppmPath, cfg.PDFPageWorkers)
	if err != nil {
		closeEngine(ocr)
		return nil, fmt.Errorf("couldn't initialize the PDF rasterizer, %w", err)
	}

	dispatcher := extraction_engine.NewDispatcher(extraction_engine.Collaborators{
		OCR:        ocr,
		Rasterizer: rasterizer,
		Decoder:    external.NewCatpptDecoder(cfg.CatpptPath),
	}, &extraction_engine.EngineConfig{
		PDFDPI:      cfg.PDFDPI,
		PageWorkers: cfg.PDFPageWorkers,
	})

	var s3 core.Fetcher
	if cfg.S3Enabled() {
		objClient, err := objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			closeEngine(ocr)
			return nil, err
		}
		s3 = fetcher.NewS3Fetcher(objClient)
		slog.Info("Object client initialized and ready.", "region", cfg.AwsRegion)
	}
	web := fetcher.NewHTTPFetcher(cfg.URLFetchTimeout, cfg.MaxDownloadBytes())

	svc := services.NewDocumentService(dispatcher, fetcher.NewSchemeFetcher(web, s3))
	server := NewServer(cfg, svc)

	return &App{OCR: ocr, Server: server}, nil
}

func newOCREngine(ctx context.Context, cfg *config.Config) (core.OCREngine, error) {
	switch cfg.OCREngine {
	case config.EngineGemini:
		return llm.NewGeminiOCR(ctx, cfg.AIAPIKey, cfg.GeminiOCRModel)
	case config.EngineTesseract:
		return external.NewTesseractEngine(ctx, cfg.TesseractPath, cfg.TesseractLang)
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", cfg.OCREngine)
	}
}

func closeEngine(engine core.OCREngine) {
	if c, ok := engine.(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("close OCR engine", "err", err)
		}
	}
}

func (a *App) Close() {
	if a.OCR != nil {
		closeEngine(a.OCR)
	}
}
