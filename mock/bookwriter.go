package mock

import (
	"context"

	"github.com/fwojciec/pageturner"
)

var _ pageturner.BookWriter = (*BookWriter)(nil)

// BookWriter is a mock implementation of pageturner.BookWriter.
type BookWriter struct {
	AddChaptersFn func(chapters []pageturner.Chapter)
	GenerateFn    func(ctx context.Context) error
}

func (w *BookWriter) AddChapters(chapters []pageturner.Chapter) {
	w.AddChaptersFn(chapters)
}

func (w *BookWriter) Generate(ctx context.Context) error {
	return w.GenerateFn(ctx)
}
