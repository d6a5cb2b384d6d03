package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Letter paper, portrait, half-inch margins (inches).
const (
	PaperWidth  = 8.5
	PaperHeight = 11.0
	Margin      = 0.5
)

// DefaultTimeout bounds a single browser session.
const DefaultTimeout = 60 * time.Second

// Exporter writes the element with elementID of a rendered page to <stem>.pdf and
// returns the file path.
type Exporter interface {
	Export(ctx context.Context, html, elementID, stem string) (string, error)
}

// PrintFunc prints a standalone HTML page to PDF bytes.
type PrintFunc func(ctx context.Context, html string) ([]byte, error)

// ChromeExporter exports through a headless Chrome started per export.
type ChromeExporter struct {
	outputDir  string
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger
	print      PrintFunc
}

// Option configures a ChromeExporter.
type Option func(*ChromeExporter)

// WithChromePath sets the Chrome executable (CHROME_PATH).
func WithChromePath(path string) Option {
	return func(e *ChromeExporter) { e.chromePath = path }
}

// WithTimeout bounds each browser session.
func WithTimeout(d time.Duration) Option {
	return func(e *ChromeExporter) { e.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *ChromeExporter) { e.logger = logger }
}

// WithPrintFunc replaces the browser, e.g. in tests.
func WithPrintFunc(f PrintFunc) Option {
	return func(e *ChromeExporter) { e.print = f }
}

// NewChromeExporter returns an exporter writing into outputDir.
func NewChromeExporter(outputDir string, opts ...Option) *ChromeExporter {
	e := &ChromeExporter{
		outputDir: outputDir,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.print == nil {
		e.print = e.printWithChrome
	}
	return e
}

// Export isolates the element, prints it and writes <outputDir>/<stem>.pdf.
func (e *ChromeExporter) Export(ctx context.Context, html, elementID, stem string) (string, error) {
	pdf, err := e.PDF(ctx, html, elementID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", &ExportError{Message: "failed to create output directory", Cause: err}
	}
	path := filepath.Join(e.outputDir, FileName(stem, "pdf"))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", &ExportError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}

	e.logger.Info("exported PDF", zap.String("path", path), zap.Int("bytes", len(pdf)))
	return path, nil
}

// PDF isolates the element and returns the printed bytes without writing a file.
func (e *ChromeExporter) PDF(ctx context.Context, html, elementID string) ([]byte, error) {
	standalone, err := Isolate(html, elementID)
	if err != nil {
		return nil, err
	}
	pdf, err := e.print(ctx, standalone)
	if err != nil {
		return nil, &ExportError{Message: "failed to print PDF", Cause: err}
	}
	return pdf, nil
}

// Isolate returns a copy of page whose body holds only the element with elementID.
// The head, and with it the stylesheet, is kept.
func Isolate(html, elementID string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ExportError{Message: "failed to parse page", Cause: err}
	}

	element := doc.Find("#" + elementID)
	if element.Length() == 0 {
		return "", &ExportError{Message: fmt.Sprintf("Element with ID %s not found", elementID)}
	}

	outer, err := goquery.OuterHtml(element.First())
	if err != nil {
		return "", &ExportError{Message: "failed to serialise element", Cause: err}
	}
	doc.Find("body").SetHtml(outer)

	out, err := doc.Html()
	if err != nil {
		return "", &ExportError{Message: "failed to serialise page", Cause: err}
	}
	return out, nil
}

// printWithChrome loads html into a blank tab and prints it.
func (e *ChromeExporter) printWithChrome(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(false).
				WithPaperWidth(PaperWidth).
				WithPaperHeight(PaperHeight).
				WithMarginTop(Margin).
				WithMarginBottom(Margin).
				WithMarginLeft(Margin).
				WithMarginRight(Margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser printing failed: %w", err)
	}
	return pdf, nil
}
