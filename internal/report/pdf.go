package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-exam2qti/internal/fileutil"
)

// DefaultTimeout bounds a PDF conversion when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// PDF page dimensions in inches (A4).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.6
	marginBottom      = 0.8 // Room for the page footer
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, footer string) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*rodRenderer)(nil)

// PDFConverter prints HTML reports to PDF with headless Chrome.
// Rod downloads Chromium on first use when no browser is configured.
type PDFConverter struct {
	renderer pdfRenderer
}

// NewPDFConverter creates a PDFConverter. A non-positive timeout uses
// DefaultTimeout.
func NewPDFConverter(timeout time.Duration) *PDFConverter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PDFConverter{renderer: &rodRenderer{timeout: timeout}}
}

// ToPDF prints the HTML document to PDF. The footer text, if any, is shown
// with the page numbers on every page.
func (c *PDFConverter) ToPDF(ctx context.Context, document []byte, footer string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(string(document), "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, footer)
}

// Close releases browser resources.
func (c *PDFConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// rodRenderer implements pdfRenderer using go-rod.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, footer string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(footer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPDFOptions returns A4 print options with a page-number footer.
func buildPDFOptions(footer string) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(marginInches),
		MarginBottom:        floatPtr(marginBottom),
		MarginLeft:          floatPtr(marginInches),
		MarginRight:         floatPtr(marginInches),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<span></span>",
		FooterTemplate:      buildFooterTemplate(footer),
	}
}

// buildFooterTemplate generates the footer for Chrome's print template.
// The pageNumber and totalPages classes are filled in by Chrome.
func buildFooterTemplate(text string) string {
	content := `<span class="pageNumber"></span>/<span class="totalPages"></span>`
	if text != "" {
		content = html.EscapeString(text) + " - " + content
	}
	return fmt.Sprintf(`<div style="font-size: 9px; color: #888; width: 100%%; text-align: right; padding: 0 0.6in;">%s</div>`, content)
}

func floatPtr(v float64) *float64 {
	return &v
}
