package playerok

import (
	"context"
	"fmt"
	"iter"
)

// PageInfo is the cursor envelope returned with every upstream page.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage" yaml:"has_next_page"`
	EndCursor   string `json:"endCursor"   yaml:"end_cursor"`
}

// Page is one upstream page of raw records.
type Page[R any] struct {
	Records    []R
	PageInfo   PageInfo
	TotalCount int
}

// PageFetcher requests up to pageSize records after cursor. An empty cursor
// means the first page.
type PageFetcher[R any] func(ctx context.Context, cursor string, pageSize int) (*Page[R], error)

// Pager runs cursor pagination over a PageFetcher. Records are optionally
// discarded by Filter and then turned into entities by Resolve, in server
// order.
type Pager[R, E any] struct {
	// Fetch requests one page. Required.
	Fetch PageFetcher[R]
	// PageSize is the server page cap; no request asks for more.
	PageSize int
	// Filter is a client-side predicate. Discarded records still consume
	// upstream pages but do not count against a List limit.
	Filter func(R) bool
	// Resolve turns a kept record into an entity. Required.
	Resolve func(R) E
}

// List returns at most limit entities starting at cursor. It stops when a
// page is empty, when the server reports no next page, or once limit
// entities were collected. Running out of upstream records before limit is
// not an error.
func (p *Pager[R, E]) List(ctx context.Context, limit int, cursor string) ([]E, error) {
	if limit <= 0 {
		return nil, InvalidArgumentError("limit must be positive, got %d", limit)
	}

	err := p.validate()
	if err != nil {
		return nil, err
	}

	result := make([]E, 0, min(limit, p.PageSize))
	requested := make(map[string]struct{})

	for len(result) < limit {
		requested[cursor] = struct{}{}

		page, err := p.Fetch(ctx, cursor, min(p.PageSize, limit-len(result)))
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}

		if page == nil || len(page.Records) == 0 {
			break
		}

		for _, record := range page.Records {
			if !p.keep(record) {
				continue
			}

			result = append(result, p.Resolve(record))
			if len(result) >= limit {
				break
			}
		}

		next, ok := nextCursor(page.PageInfo, requested)
		if !ok {
			break
		}

		cursor = next
	}

	return result, nil
}

// Iter returns a lazy iterator over every matching record starting at cursor.
func (p *Pager[R, E]) Iter(ctx context.Context, cursor string) *PaginationIterator[E] {
	return NewPaginationIterator(ctx, p, cursor)
}

func (p *Pager[R, E]) validate() error {
	if p.PageSize <= 0 {
		return InvalidArgumentError("page size must be positive, got %d", p.PageSize)
	}

	return nil
}

func (p *Pager[R, E]) keep(record R) bool {
	return p.Filter == nil || p.Filter(record)
}

// nextCursor reports the cursor to request next, refusing to advance when the
// server has no next page, sends no cursor, or repeats one already requested.
func nextCursor(info PageInfo, requested map[string]struct{}) (string, bool) {
	if !info.HasNextPage || info.EndCursor == "" {
		return "", false
	}

	if _, seen := requested[info.EndCursor]; seen {
		return "", false
	}

	return info.EndCursor, true
}

// PaginationIterator lazily walks every page of a Pager. Each call to
// NextPage is one upstream request; nothing is fetched ahead. The iterator is
// not restartable: resume from Cursor() with a new iterator instead.
type PaginationIterator[E any] struct {
	ctx       context.Context
	fetch     func(ctx context.Context, cursor string) ([]E, PageInfo, bool, error)
	cursor    string
	requested map[string]struct{}
	buffer    []E
	exhausted bool
	err       error
	pages     int
}

// NewPaginationIterator creates an iterator over pager starting at cursor.
func NewPaginationIterator[R, E any](ctx context.Context, pager *Pager[R, E], cursor string) *PaginationIterator[E] {
	return &PaginationIterator[E]{
		ctx:       ctx,
		cursor:    cursor,
		requested: make(map[string]struct{}),
		fetch: func(ctx context.Context, cursor string) ([]E, PageInfo, bool, error) {
			err := pager.validate()
			if err != nil {
				return nil, PageInfo{}, false, err
			}

			page, err := pager.Fetch(ctx, cursor, pager.PageSize)
			if err != nil {
				return nil, PageInfo{}, false, err
			}

			if page == nil || len(page.Records) == 0 {
				return nil, PageInfo{}, true, nil
			}

			batch := make([]E, 0, len(page.Records))

			for _, record := range page.Records {
				if pager.keep(record) {
					batch = append(batch, pager.Resolve(record))
				}
			}

			return batch, page.PageInfo, false, nil
		},
	}
}

// NextPage returns the next batch of entities. Buffered entities left over
// from Next are returned first without a request. A batch may be empty when
// every record of a page was filtered out. ErrNoMoreItems signals the end.
func (it *PaginationIterator[E]) NextPage() ([]E, error) {
	if len(it.buffer) > 0 {
		batch := it.buffer
		it.buffer = nil

		return batch, nil
	}

	if it.err != nil {
		return nil, it.err
	}

	if it.exhausted {
		return nil, ErrNoMoreItems
	}

	it.requested[it.cursor] = struct{}{}

	batch, info, empty, err := it.fetch(it.ctx, it.cursor)
	if err != nil {
		it.err = fmt.Errorf("fetching page: %w", err)

		return nil, it.err
	}

	it.pages++

	if empty {
		it.exhausted = true

		return nil, ErrNoMoreItems
	}

	next, ok := nextCursor(info, it.requested)
	if ok {
		it.cursor = next
	} else {
		it.exhausted = true
	}

	return batch, nil
}

// HasNext reports whether Next will yield an entity, fetching pages as
// needed.
func (it *PaginationIterator[E]) HasNext() bool {
	for len(it.buffer) == 0 {
		if it.exhausted || it.err != nil {
			return false
		}

		batch, err := it.NextPage()
		if err != nil {
			return false
		}

		it.buffer = batch
	}

	return true
}

// Next returns the next entity, ErrNoMoreItems at the end, or the fetch error.
func (it *PaginationIterator[E]) Next() (E, error) {
	var zero E

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// All drains the iterator.
func (it *PaginationIterator[E]) All() ([]E, error) {
	var all []E

	for it.HasNext() {
		all = append(all, it.buffer...)
		it.buffer = nil
	}

	if it.err != nil {
		return all, it.err
	}

	return all, nil
}

// ForEach calls fn for every entity until fn fails or the pages run out.
func (it *PaginationIterator[E]) ForEach(fn func(E) error) error {
	for it.HasNext() {
		item, _ := it.Next()

		err := fn(item)
		if err != nil {
			return err
		}
	}

	return it.err
}

// Seq adapts the iterator for range-over-func. Breaking out of the loop stops
// further page requests.
func (it *PaginationIterator[E]) Seq() iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		for it.HasNext() {
			item, _ := it.Next()
			if !yield(item, nil) {
				return
			}
		}

		if it.err != nil {
			var zero E

			yield(zero, it.err)
		}
	}
}

// Cursor is the cursor the next upstream request would use.
func (it *PaginationIterator[E]) Cursor() string {
	return it.cursor
}

// Done reports whether the upstream signalled completion.
func (it *PaginationIterator[E]) Done() bool {
	return it.exhausted && len(it.buffer) == 0
}

// Err returns the first fetch error.
func (it *PaginationIterator[E]) Err() error {
	return it.err
}

// Pages returns how many upstream pages were requested so far.
func (it *PaginationIterator[E]) Pages() int {
	return it.pages
}
