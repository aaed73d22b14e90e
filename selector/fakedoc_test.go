package selector

// fakeDoc is an in-memory Analyzer fake, used so predicate matching, range
// patterns, and boolean evaluation can be tested without a real PDF.
type fakeDoc struct {
	texts []string // 0-indexed by page-1
	kinds []PageKind
	sizes []uint64
}

func (f *fakeDoc) PageCount() int { return len(f.texts) }

func (f *fakeDoc) PageText(page int) (string, error) {
	return f.texts[page-1], nil
}

func (f *fakeDoc) PageKind(page int) (PageKind, error) {
	if f.kinds == nil {
		return KindText, nil
	}
	return f.kinds[page-1], nil
}

func (f *fakeDoc) PageSize(page int) (uint64, error) {
	if f.sizes == nil {
		return 0, nil
	}
	return f.sizes[page-1], nil
}

func newTextDoc(pages ...string) *fakeDoc {
	return &fakeDoc{texts: pages}
}
