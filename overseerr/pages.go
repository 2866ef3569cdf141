package overseerr

import "context"

// PageIterator walks the paginated request listing one page at a time,
// in the bufio.Scanner style:
//
//	it := overseerr.NewPageIterator(client, "pending")
//	for it.Next(ctx) {
//		page := it.Page()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// The iterator trusts the page count reported by every response, not a
// snapshot of the first one, so a result set mutating mid-iteration
// shifts how many pages are fetched. It always yields at least one
// page and cannot be restarted.
type PageIterator struct {
	api    API
	filter string
	take   int
	skip   int
	page   *RequestsResponse
	err    error
	done   bool
}

// NewPageIterator returns an iterator over the request listing, using
// the client's configured page size. filter may be empty.
func NewPageIterator(api API, filter string) *PageIterator {
	take := api.PageSize()
	if take <= 0 {
		take = DefaultPageSize
	}
	return &PageIterator{
		api:    api,
		filter: filter,
		take:   take,
	}
}

// Next fetches the next page. It returns false once the listing is
// exhausted or a fetch failed; Err distinguishes the two.
func (it *PageIterator) Next(ctx context.Context) bool {
	if it.done || it.err != nil {
		return false
	}

	page, err := it.api.GetRequests(ctx, it.take, it.skip, it.filter)
	if err != nil {
		it.err = err
		it.page = nil
		return false
	}
	it.page = page

	// Current page number derives from the skip just used. Stop once
	// the server says we have seen everything, or reports no pages.
	currentPage := it.skip/it.take + 1
	if page.PageInfo.Pages <= currentPage || page.PageInfo.Pages == 0 {
		it.done = true
	} else {
		it.skip += it.take
	}

	return true
}

// Page returns the page fetched by the last successful call to Next.
func (it *PageIterator) Page() *RequestsResponse {
	return it.page
}

// Err returns the first error encountered while iterating.
func (it *PageIterator) Err() error {
	return it.err
}
