// Package upload turns user-uploaded files into prompt context for diagram
// generation. PDFs get their text extracted and summarized, images get a
// metadata analysis and a base64 data URL for vision-capable models.
package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	// Register decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	_ "golang.org/x/image/webp"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Kinds of processed content.
const (
	KindPDF   = "pdf"
	KindImage = "image"
)

// keywords scanned in extracted PDF text to hint at the document's topics.
var technicalKeywords = []string{
	"system", "architecture", "database", "server", "api", "user", "client",
	"service", "component", "module", "interface", "data", "flow", "process",
	"network", "cloud", "aws", "azure", "gcp", "docker", "kubernetes",
}

// Result describes one processed upload.
type Result struct {
	Kind        string   `json:"kind"`
	Filename    string   `json:"filename"`
	MIME        string   `json:"mime"`
	Size        int64    `json:"size"`
	Summary     string   `json:"summary"`
	Text        string   `json:"text,omitempty"`
	PageCount   int      `json:"pageCount,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	DataURL     string   `json:"dataUrl,omitempty"`
	Prompt      string   `json:"prompt"`
}

// Processor validates and analyzes uploads.
type Processor struct {
	maxBytes int64
}

func NewProcessor(maxBytes int64) *Processor {
	return &Processor{maxBytes: maxBytes}
}

// Process reads the upload, sniffs its type from the content and dispatches
// to the PDF or image pipeline. The size cap is enforced while reading so an
// oversized body is never fully buffered.
func (p *Processor) Process(filename string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, p.maxBytes)
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/pdf"):
		return p.processPDF(filename, data)
	case strings.HasPrefix(mtype.String(), "image/"):
		return p.processImage(filename, data, mtype.String())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
}

func (p *Processor) processPDF(filename string, data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse PDF: %w", err)
	}

	var text string
	if plain, err := reader.GetPlainText(); err == nil {
		var sb strings.Builder
		if _, err := io.Copy(&sb, plain); err == nil {
			text = sb.String()
		}
	}

	keywords := scanKeywords(text)
	res := &Result{
		Kind:      KindPDF,
		Filename:  filename,
		MIME:      "application/pdf",
		Size:      int64(len(data)),
		Text:      truncate(text, 4000),
		PageCount: reader.NumPage(),
		Keywords:  keywords,
	}
	res.Summary = summarizePDF(res)
	res.Prompt = pdfPrompt(res)
	return res, nil
}

func (p *Processor) processImage(filename string, data []byte, mime string) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image (%s)", ErrUnsupportedType, mime)
	}

	res := &Result{
		Kind:        KindImage,
		Filename:    filename,
		MIME:        mime,
		Size:        int64(len(data)),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Orientation: orientation(cfg.Width, cfg.Height),
		DataURL:     fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)),
	}
	res.Summary = summarizeImage(res)
	res.Prompt = imagePrompt(res)
	return res, nil
}

func orientation(width, height int) string {
	if width > height {
		return "landscape"
	}
	return "portrait"
}

func scanKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	keywords := make([]string, 0, len(found))
	for kw := range found {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

func summarizePDF(res *Result) string {
	parts := []string{fmt.Sprintf("PDF with %d page(s), %d characters of text", res.PageCount, len(res.Text))}
	if len(res.Keywords) > 0 {
		parts = append(parts, "Technical topics: "+strings.Join(res.Keywords, ", "))
	}
	if sample := truncate(collapseWhitespace(res.Text), 500); sample != "" {
		parts = append(parts, "Sample content: "+sample)
	}
	return strings.Join(parts, " | ")
}

func summarizeImage(res *Result) string {
	ratio := 1.0
	if res.Height > 0 {
		ratio = float64(res.Width) / float64(res.Height)
	}

	var shape string
	switch {
	case ratio > 2:
		shape = "Wide image, possibly a flowchart or sequence diagram"
	case ratio < 0.5:
		shape = "Tall image, possibly a hierarchical diagram or mind map"
	default:
		shape = "Square/rectangular image, suitable for system architecture diagrams"
	}
	return fmt.Sprintf("%s (%dx%d, %s). Likely a technical diagram or sketch to convert into a draw.io diagram.",
		shape, res.Width, res.Height, res.Orientation)
}

func pdfPrompt(res *Result) string {
	return fmt.Sprintf(`You have been provided with a PDF document analysis. Create a system architecture diagram that represents the content and structure described below.

PDF ANALYSIS:
%s

DOCUMENT TEXT:
%s

INSTRUCTIONS:
1. Identify the key components, processes or systems the document describes
2. Use appropriate shapes for different component types (servers, databases, users, etc.)
3. Include relationships and data flow between components
4. Focus on the most important architectural elements mentioned`, res.Summary, res.Text)
}

func imagePrompt(res *Result) string {
	return fmt.Sprintf(`You have been provided with an image analysis. Create a system architecture diagram that represents or improves upon the visual content described below.

IMAGE ANALYSIS:
%s

INSTRUCTIONS:
1. If this appears to be an existing diagram, recreate an improved version
2. If this is a photo or sketch, interpret it as a system design and create a professional diagram
3. Use appropriate technical shapes and connectors
4. Maintain the original intent while improving clarity`, res.Summary)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Cut on a rune boundary so multi-byte text stays valid UTF-8.
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
