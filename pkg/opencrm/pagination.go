package opencrm

import (
	"context"
	"iter"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// PageLister fetches one window of results. Resource clients satisfy it
// through their List method.
type PageLister[T any] interface {
	List(ctx context.Context, params *ListParams) ([]T, error)
}

// PaginationIterator walks every matching record by issuing List calls
// with growing limit_start/limit_end windows. It stops when a page comes
// back shorter than the batch size, so a result set that is an exact
// multiple of the batch size costs one extra, empty request.
//
// An iterator is not restartable and must not be advanced from more than
// one goroutine. A failed page ends iteration; nothing is retried.
type PaginationIterator[T any] struct {
	ctx       context.Context
	lister    PageLister[T]
	params    *ListParams
	batchSize int
	offset    int
	pages     int
	current   []T
	index     int
	done      bool
	err       error
	reported  bool
}

// NewPaginationIterator creates a new pagination iterator. A batchSize of
// zero or less uses the default of 100. Query and keywords are taken from
// params; its limits are replaced by the iterator's window.
func NewPaginationIterator[T any](ctx context.Context, lister PageLister[T], params *ListParams, batchSize int) *PaginationIterator[T] {
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}

	return &PaginationIterator[T]{
		ctx:       ctx,
		lister:    lister,
		params:    params.Clone(),
		batchSize: batchSize,
	}
}

// HasNext returns true if there are more items, fetching the next page
// when the current one is exhausted. It also returns true when a fetch
// failed and the error has not yet been handed out by Next.
func (p *PaginationIterator[T]) HasNext() bool {
	if p.index < len(p.current) {
		return true
	}

	if !p.done && p.err == nil {
		p.fetchNextPage()
	}

	if p.index < len(p.current) {
		return true
	}

	return p.err != nil && !p.reported
}

// Next returns the next item, the page error that ended iteration, or
// ErrNoMoreItems.
func (p *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !p.HasNext() {
		return zero, ErrNoMoreItems
	}

	if p.index < len(p.current) {
		item := p.current[p.index]
		p.index++

		return item, nil
	}

	p.reported = true

	return zero, p.err
}

// Err returns the error that ended iteration, if any.
func (p *PaginationIterator[T]) Err() error {
	return p.err
}

// Pages returns the number of List calls made so far.
func (p *PaginationIterator[T]) Pages() int {
	return p.pages
}

// All fetches all remaining items. On failure it returns the items
// collected so far together with the error.
func (p *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach calls fn for each remaining item, stopping at the first error.
func (p *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// Seq adapts the iterator for range-over-func. A page error is yielded
// once with a zero item, after which the sequence ends.
func (p *PaginationIterator[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.HasNext() {
			if !yield(p.Next()) {
				return
			}
		}
	}
}

func (p *PaginationIterator[T]) fetchNextPage() {
	err := p.ctx.Err()
	if err != nil {
		p.err = err
		p.done = true

		return
	}

	params := p.params.Clone().WithLimits(p.offset, p.offset+p.batchSize)

	items, err := p.lister.List(p.ctx, params)
	p.pages++

	if err != nil {
		p.err = err
		p.done = true
		p.current = nil
		p.index = 0

		return
	}

	p.current = items
	p.index = 0
	p.offset += p.batchSize

	if len(items) < p.batchSize {
		p.done = true
	}
}

// PaginationOptions controls FetchAllPages and StreamPages.
type PaginationOptions struct {
	// BatchSize is the number of records requested per page.
	BatchSize int
	// MaxPages caps the number of pages fetched; zero means no cap.
	MaxPages int
}

// DefaultPaginationOptions returns default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		BatchSize: constants.DefaultBatchSize,
		MaxPages:  0,
	}
}

// FetchAllPages fetches all pages and returns every item.
func FetchAllPages[T any](ctx context.Context, lister PageLister[T], params *ListParams, options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	iterator := NewPaginationIterator(ctx, lister, params, options.BatchSize)

	var all []T

	for {
		if options.MaxPages > 0 && iterator.pages >= options.MaxPages && iterator.index >= len(iterator.current) {
			break
		}

		if !iterator.HasNext() {
			break
		}

		item, err := iterator.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Page  int
	Items []T
	Err   error
}

// StreamPages fetches pages on a goroutine and delivers them in order on
// the returned channel, which is closed after the last page, the first
// error, or cancellation of ctx.
func StreamPages[T any](ctx context.Context, lister PageLister[T], params *ListParams, options *PaginationOptions) <-chan PageResult[T] {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	batchSize := options.BatchSize
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}

	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		offset := 0

		for page := 1; options.MaxPages <= 0 || page <= options.MaxPages; page++ {
			items, err := lister.List(ctx, params.Clone().WithLimits(offset, offset+batchSize))

			result := PageResult[T]{Page: page, Items: items, Err: err}
			if err == nil && len(items) == 0 {
				return
			}

			select {
			case results <- result:
			case <-ctx.Done():
				return
			}

			if err != nil || len(items) < batchSize {
				return
			}

			offset += batchSize
		}
	}()

	return results
}
