//go:build pdfcpu
// +build pdfcpu

package pdfdoc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pagecarve/selector"
)

// Analyzer is the default selector.Analyzer, backed by pdfcpu for page
// count / image presence / content-stream size and by ledongthuc/pdf for
// structured text extraction.
type Analyzer struct {
	path string

	mu        sync.Mutex
	pageCount int
	text      map[int]string
	kind      map[int]selector.PageKind
	size      map[int]uint64
}

// Open builds an Analyzer over path, reading the page count up front.
func Open(path string) (*Analyzer, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: page count: %w", err)
	}
	return &Analyzer{
		path:      path,
		pageCount: n,
		text:      make(map[int]string),
		kind:      make(map[int]selector.PageKind),
		size:      make(map[int]uint64),
	}, nil
}

func (a *Analyzer) PageCount() int { return a.pageCount }

func (a *Analyzer) PageText(page int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.text[page]; ok {
		return t, nil
	}
	t, err := a.readText(page)
	if err != nil {
		return "", err
	}
	a.text[page] = t
	return t, nil
}

func (a *Analyzer) PageKind(page int) (selector.PageKind, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if k, ok := a.kind[page]; ok {
		return k, nil
	}

	text, err := a.readText(page)
	if err != nil {
		return "", err
	}
	a.text[page] = text
	hasImage, err := a.pageHasImage(page)
	if err != nil {
		return "", err
	}

	hasText := strings.TrimSpace(text) != ""
	var k selector.PageKind
	switch {
	case hasText && hasImage:
		k = selector.KindMixed
	case hasImage:
		k = selector.KindImage
	case hasText:
		k = selector.KindText
	default:
		k = selector.KindEmpty
	}
	a.kind[page] = k
	return k, nil
}

func (a *Analyzer) PageSize(page int) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.size[page]; ok {
		return s, nil
	}
	n, err := a.contentStreamSize(page)
	if err != nil {
		return 0, err
	}
	a.size[page] = n
	return n, nil
}

func (a *Analyzer) readText(page int) (string, error) {
	f, r, err := pdf.Open(a.path)
	if err != nil {
		return "", fmt.Errorf("pdfdoc: open for text: %w", err)
	}
	defer f.Close()
	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("pdfdoc: page %d out of range", page)
	}
	p := r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	content, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("pdfdoc: extract text page %d: %w", page, err)
	}
	return asciiNormalize(content), nil
}

func (a *Analyzer) pageHasImage(page int) (bool, error) {
	dir, err := os.MkdirTemp("", "pagecarve_images_*")
	if err != nil {
		return false, fmt.Errorf("pdfdoc: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	err = api.ExtractImagesFile(a.path, dir, []string{strconv.Itoa(page)}, model.NewDefaultConfiguration())
	if err != nil {
		// pdfcpu returns an error for pages with nothing to extract; treat
		// as "no images" rather than a hard failure.
		return false, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, nil
	}
	return len(entries) > 0, nil
}

func (a *Analyzer) contentStreamSize(page int) (uint64, error) {
	dir, err := os.MkdirTemp("", "pagecarve_content_*")
	if err != nil {
		return 0, fmt.Errorf("pdfdoc: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := api.ExtractContentFile(a.path, dir, []string{strconv.Itoa(page)}, model.NewDefaultConfiguration()); err != nil {
		return 0, nil
	}
	var total uint64
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += uint64(info.Size())
	}

	imgDir, err := os.MkdirTemp("", "pagecarve_content_img_*")
	if err == nil {
		defer os.RemoveAll(imgDir)
		if err := api.ExtractImagesFile(a.path, imgDir, []string{strconv.Itoa(page)}, model.NewDefaultConfiguration()); err == nil {
			imgEntries, _ := os.ReadDir(imgDir)
			for _, e := range imgEntries {
				if e.IsDir() {
					continue
				}
				if info, err := e.Info(); err == nil {
					total += uint64(info.Size())
				}
			}
		}
	}

	return total, nil
}

func asciiNormalize(s string) string {
	ascii := strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r > 127 || !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, s)
	lines := strings.Split(ascii, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
