package adapter

import (
	"context"
	"fmt"

	"github.com/plantarium-app/plantarium/models"
)

// StartingPageIndex is the cursor of the first search page. An absent cursor
// means "load the first page".
const StartingPageIndex = 1

// Page is one successfully loaded page of search results. PrevKey is nil for
// the first page; NextKey is nil when the server reports no further pages
// beyond this one.
type Page struct {
	Photos  []models.UnsplashPhoto
	PrevKey *int
	NextKey *int
}

// PhotoPageSource loads pages of one search query through a [PhotoSearcher],
// translating the server's total-pages report into prev/next cursors.
// A source is stateless: every failure is surfaced to the caller, never
// retried, and the same cursor can be re-requested for a manual retry.
type PhotoPageSource struct {
	searcher PhotoSearcher
	query    string
	pageSize int
}

// NewPhotoPageSource constructs a page source for one search query.
func NewPhotoPageSource(searcher PhotoSearcher, query string, pageSize int) *PhotoPageSource {
	return &PhotoPageSource{
		searcher: searcher,
		query:    query,
		pageSize: pageSize,
	}
}

// Query returns the search string the source was built for.
func (s *PhotoPageSource) Query() string {
	return s.query
}

// Load fetches the page identified by key (nil means the first page). On
// failure the causing error is wrapped in [ErrLoadFailed] and returned
// verbatim to the caller.
func (s *PhotoPageSource) Load(ctx context.Context, key *int) (Page, error) {
	page := StartingPageIndex
	if key != nil {
		page = *key
	}

	resp, err := s.searcher.SearchPhotos(ctx, s.query, page, s.pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	var prevKey, nextKey *int
	if page != StartingPageIndex {
		prev := page - 1
		prevKey = &prev
	}
	if page != resp.TotalPages {
		next := page + 1
		nextKey = &next
	}

	return Page{
		Photos:  resp.Results,
		PrevKey: prevKey,
		NextKey: nextKey,
	}, nil
}

// RefreshKey computes the cursor to reload from after the observed position
// changed: the PrevKey of the loaded page containing the anchor position, so
// a refresh restarts just before the page the user is looking at instead of
// jumping back to page one.
func RefreshKey(pages []Page, anchorPosition int) *int {
	if anchorPosition < 0 {
		return nil
	}

	offset := 0
	for _, p := range pages {
		if anchorPosition < offset+len(p.Photos) {
			return p.PrevKey
		}
		offset += len(p.Photos)
	}

	if n := len(pages); n > 0 {
		return pages[n-1].PrevKey
	}
	return nil
}
