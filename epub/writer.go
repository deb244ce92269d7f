// Package epub assembles extracted chapters into an EPUB 3 file with a
// navigable table of contents and optional cover image.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/fwojciec/pageturner"
	"github.com/google/uuid"
)

// Ensure Writer implements pageturner.BookWriter at compile time.
var _ pageturner.BookWriter = (*Writer)(nil)

// Writer accumulates chapters and serializes them into an EPUB file.
// Table-of-contents entries follow chapter insertion order.
type Writer struct {
	book       pageturner.Book
	outputPath string
	fetcher    pageturner.Fetcher
	logger     *slog.Logger
	now        func() time.Time

	identifier string
	chapters   []pageturner.Chapter
}

// Option configures a Writer.
type Option func(*Writer)

// WithCoverFetcher sets the fetcher used to download the book's cover
// image. Without one, a configured cover URL is skipped.
func WithCoverFetcher(fetcher pageturner.Fetcher) Option {
	return func(w *Writer) {
		w.fetcher = fetcher
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer for the given book metadata and output
// path. Each book gets a fresh UUID as its package identifier.
func NewWriter(book pageturner.Book, outputPath string, opts ...Option) *Writer {
	w := &Writer{
		book:       book,
		outputPath: outputPath,
		identifier: "urn:uuid:" + uuid.NewString(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// AddChapters appends chapters in order.
func (w *Writer) AddChapters(chapters []pageturner.Chapter) {
	w.chapters = append(w.chapters, chapters...)
}

// Generate serializes the EPUB to the output path. Write errors
// propagate to the caller; an unreachable cover image does not.
func (w *Writer) Generate(ctx context.Context) error {
	f, err := os.Create(w.outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.outputPath, err)
	}

	if err := w.write(ctx, f); err != nil {
		f.Close()
		os.Remove(w.outputPath)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.outputPath, err)
	}

	w.logger.Info("EPUB generated", "path", w.outputPath, "chapters", len(w.chapters))
	return nil
}

func (w *Writer) write(ctx context.Context, out io.Writer) error {
	zw := zip.NewWriter(out)

	// The mimetype entry must come first and be stored uncompressed.
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	if _, err := mt.Write([]byte("application/epub+zip")); err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}

	if err := w.writeXML(zw, "META-INF/container.xml", containerXML()); err != nil {
		return err
	}

	cover := w.fetchCover(ctx)

	for i, chapter := range w.chapters {
		name := fmt.Sprintf("OEBPS/%s", chapterFile(i))
		body, err := normalizeBody(chapter.HTML)
		if err != nil {
			return fmt.Errorf("chapter %d: %w", i+1, err)
		}
		if err := w.writeFile(zw, name, []byte(chapterXHTML(chapter.Title, w.book.Language, body))); err != nil {
			return err
		}
	}

	if err := w.writeXML(zw, "OEBPS/nav.xhtml", w.navXHTML()); err != nil {
		return err
	}
	if err := w.writeXML(zw, "OEBPS/toc.ncx", w.tocNCX()); err != nil {
		return err
	}
	if err := w.writeXML(zw, "OEBPS/content.opf", w.packageOPF(cover)); err != nil {
		return err
	}
	if cover != nil {
		if err := w.writeFile(zw, "OEBPS/"+cover.filename, cover.data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

func (w *Writer) writeFile(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (w *Writer) writeXML(zw *zip.Writer, name string, doc *etree.Document) error {
	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", name, err)
	}
	return w.writeFile(zw, name, data)
}

// cover holds a downloaded cover image ready for embedding.
type coverImage struct {
	filename  string
	mediaType string
	data      []byte
}

// fetchCover downloads the configured cover image. Any failure is
// logged and yields no cover rather than failing the book.
func (w *Writer) fetchCover(ctx context.Context) *coverImage {
	if w.book.CoverImageURL == "" || w.fetcher == nil {
		return nil
	}

	parsed, err := url.Parse(w.book.CoverImageURL)
	if err != nil {
		w.logger.Warn("invalid cover image URL, skipping cover", "url", w.book.CoverImageURL)
		return nil
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if ext == "" {
		ext = ".jpg"
	}

	mediaType, ok := map[string]string{
		".jpg": "image/jpeg",
		".png": "image/png",
		".gif": "image/gif",
	}[ext]
	if !ok {
		w.logger.Warn("unsupported cover image format, skipping cover", "ext", ext)
		return nil
	}

	data, err := w.fetcher.FetchBytes(ctx, w.book.CoverImageURL)
	if err != nil {
		w.logger.Warn("failed to download cover image, skipping cover", "url", w.book.CoverImageURL, "err", err)
		return nil
	}

	return &coverImage{
		filename:  "cover" + ext,
		mediaType: mediaType,
		data:      data,
	}
}

func chapterFile(i int) string {
	return fmt.Sprintf("chapter_%d.xhtml", i+1)
}

func chapterID(i int) string {
	return fmt.Sprintf("chap_%d", i+1)
}

// containerXML points the reading system at the package document.
func containerXML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")
	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", "OEBPS/content.opf")
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")
	return doc
}

// packageOPF builds the EPUB 3 package document: metadata, manifest
// and spine, with chapters in insertion order.
func (w *Writer) packageOPF(cover *coverImage) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "pub-id")

	meta := pkg.CreateElement("metadata")
	meta.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	id := meta.CreateElement("dc:identifier")
	id.CreateAttr("id", "pub-id")
	id.SetText(w.identifier)
	meta.CreateElement("dc:title").SetText(w.book.Title)
	meta.CreateElement("dc:creator").SetText(w.book.Author)
	meta.CreateElement("dc:language").SetText(w.book.Language)

	modified := meta.CreateElement("meta")
	modified.CreateAttr("property", "dcterms:modified")
	modified.SetText(w.now().UTC().Format("2006-01-02T15:04:05Z"))

	if cover != nil {
		coverMeta := meta.CreateElement("meta")
		coverMeta.CreateAttr("name", "cover")
		coverMeta.CreateAttr("content", "cover-image")
	}

	manifest := pkg.CreateElement("manifest")

	nav := manifest.CreateElement("item")
	nav.CreateAttr("id", "nav")
	nav.CreateAttr("href", "nav.xhtml")
	nav.CreateAttr("media-type", "application/xhtml+xml")
	nav.CreateAttr("properties", "nav")

	ncx := manifest.CreateElement("item")
	ncx.CreateAttr("id", "ncx")
	ncx.CreateAttr("href", "toc.ncx")
	ncx.CreateAttr("media-type", "application/x-dtbncx+xml")

	if cover != nil {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", "cover-image")
		item.CreateAttr("href", cover.filename)
		item.CreateAttr("media-type", cover.mediaType)
		item.CreateAttr("properties", "cover-image")
	}

	for i := range w.chapters {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", chapterID(i))
		item.CreateAttr("href", chapterFile(i))
		item.CreateAttr("media-type", "application/xhtml+xml")
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	navRef := spine.CreateElement("itemref")
	navRef.CreateAttr("idref", "nav")
	navRef.CreateAttr("linear", "no")
	for i := range w.chapters {
		ref := spine.CreateElement("itemref")
		ref.CreateAttr("idref", chapterID(i))
	}

	return doc
}

// navXHTML builds the EPUB 3 navigation document from chapter titles
// in insertion order.
func (w *Writer) navXHTML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(w.book.Title)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateElement("h1").SetText("Table of Contents")

	ol := nav.CreateElement("ol")
	for i, chapter := range w.chapters {
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", chapterFile(i))
		a.SetText(chapter.Title)
	}

	return doc
}

// tocNCX builds the legacy NCX table of contents for EPUB 2 readers.
func (w *Writer) tocNCX() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	uid := head.CreateElement("meta")
	uid.CreateAttr("name", "dtb:uid")
	uid.CreateAttr("content", w.identifier)

	title := ncx.CreateElement("docTitle")
	title.CreateElement("text").SetText(w.book.Title)

	navMap := ncx.CreateElement("navMap")
	for i, chapter := range w.chapters {
		point := navMap.CreateElement("navPoint")
		point.CreateAttr("id", chapterID(i))
		point.CreateAttr("playOrder", fmt.Sprintf("%d", i+1))
		label := point.CreateElement("navLabel")
		label.CreateElement("text").SetText(chapter.Title)
		content := point.CreateElement("content")
		content.CreateAttr("src", chapterFile(i))
	}

	return doc
}

// chapterXHTML wraps normalized chapter body markup in an XHTML shell.
func chapterXHTML(title, language, body string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" lang="` + language + `">` + "\n")
	b.WriteString("<head><title>")
	b.WriteString(escapeText(title))
	b.WriteString("</title></head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// normalizeBody re-parses extracted chapter markup so the chapter file
// always carries well-formed body content, whatever subtree the
// extractor matched.
func normalizeBody(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parsing chapter markup: %w", err)
	}
	body, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("serializing chapter markup: %w", err)
	}
	return body, nil
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
