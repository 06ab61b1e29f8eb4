package extraction_engine

import (
	"github.com/markdave123-py/docsight/internal/core"
)

const (
	// DefaultPDFDPI is the resolution PDF pages are rasterized at before OCR.
	DefaultPDFDPI = 200
	// DefaultPageWorkers bounds how many PDF pages are OCR'd at once per request.
	DefaultPageWorkers = 2
)

// EngineConfig tunes the extractors.
//
// PDFDPI:      rasterization resolution for PDF pages.
// PageWorkers: concurrent OCR calls per PDF request (1 = strictly sequential).
type EngineConfig struct {
	PDFDPI      int
	PageWorkers int
}

func (c *EngineConfig) withDefaults() EngineConfig {
	out := EngineConfig{PDFDPI: DefaultPDFDPI, PageWorkers: DefaultPageWorkers}
	if c == nil {
		return out
	}
	if c.PDFDPI > 0 {
		out.PDFDPI = c.PDFDPI
	}
	if c.PageWorkers > 0 {
		out.PageWorkers = c.PageWorkers
	}
	return out
}

// Collaborators are the external pieces the extractors delegate to.
//
// OCR:        shared recognition engine, built once at startup.
// Rasterizer: PDF page renderer.
// Decoder:    legacy .ppt text tool.
type Collaborators struct {
	OCR        core.OCREngine
	Rasterizer core.Rasterizer
	Decoder    core.ExternalDecoder
}

// route binds a lowercase filename suffix to its extractor.
type route struct {
	suffix    string
	extractor core.Extractor
}

// Dispatcher implements core.DocumentDispatcher by filename suffix.
type Dispatcher struct {
	routes   []route
	fallback *ImageExtractor
}
