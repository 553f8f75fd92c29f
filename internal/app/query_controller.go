package app

import (
	"strings"

	"foreman/internal/client"
	"foreman/internal/logging"
	"foreman/internal/store"
	"foreman/internal/types"
)

const (
	sortAscending  = "asc"
	sortDescending = "desc"
)

// QueryController owns the table query state: page, search text, active
// filters and sort. Page, filters and search survive restarts through the
// UI state store; sort is deliberately session-only and always starts
// server-default.
type QueryController struct {
	store  store.UIStateStore
	logger logging.Logger

	page          int
	pageSize      int
	searchInput   string
	search        string
	filters       map[string]string
	sortBy        string
	sortDirection string
	hasUserSorted bool
	totalCount    int
	hasTotal      bool
	searchSeq     int
	fetchSeq      int
}

func NewQueryController(st store.UIStateStore, pageSize int, logger logging.Logger) *QueryController {
	if logger == nil {
		logger = logging.Nop()
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &QueryController{
		store:    st,
		logger:   logger,
		page:     1,
		pageSize: pageSize,
		filters:  map[string]string{},
	}
}

// Restore loads the persisted page, filters and search text. Sort is never
// restored; a fresh run always begins with the server's default order.
func (q *QueryController) Restore() {
	if q.store == nil {
		return
	}
	var page int
	if ok, err := q.store.Get(store.KeyCurrentPage, &page); err != nil {
		q.logger.Warn("restore page failed", logging.F("err", err))
	} else if ok && page >= 1 {
		q.page = page
	}
	var filters map[string]string
	if ok, err := q.store.Get(store.KeyActiveFilters, &filters); err != nil {
		q.logger.Warn("restore filters failed", logging.F("err", err))
	} else if ok && len(filters) > 0 {
		q.filters = filters
	}
	var search string
	if ok, err := q.store.Get(store.KeySearchText, &search); err != nil {
		q.logger.Warn("restore search failed", logging.F("err", err))
	} else if ok {
		q.search = search
		q.searchInput = search
	}
}

func (q *QueryController) Page() int           { return q.page }
func (q *QueryController) PageSize() int       { return q.pageSize }
func (q *QueryController) Search() string      { return q.search }
func (q *QueryController) SearchInput() string { return q.searchInput }
func (q *QueryController) SortBy() string      { return q.sortBy }
func (q *QueryController) SortDirection() string {
	if q.sortDirection == "" {
		return sortAscending
	}
	return q.sortDirection
}
func (q *QueryController) HasUserSorted() bool { return q.hasUserSorted }

func (q *QueryController) Filter(field string) string {
	return q.filters[field]
}

func (q *QueryController) Filters() map[string]string {
	out := make(map[string]string, len(q.filters))
	for field, value := range q.filters {
		out[field] = value
	}
	return out
}

func (q *QueryController) HasFilters() bool {
	return len(q.filters) > 0 || strings.TrimSpace(q.search) != ""
}

// SetSearchInput records a keystroke in the search box and returns the
// debounce sequence to schedule. Only the newest sequence commits; older
// timers see a stale sequence and drop out.
func (q *QueryController) SetSearchInput(text string) int {
	q.searchInput = text
	q.searchSeq++
	return q.searchSeq
}

// CommitSearch applies the debounced search input. It reports whether the
// committed query actually changed, which is when a refetch is due.
func (q *QueryController) CommitSearch(seq int) bool {
	if seq != q.searchSeq {
		return false
	}
	if q.searchInput == q.search {
		return false
	}
	q.search = q.searchInput
	q.page = 1
	q.persist(store.KeySearchText, q.search)
	q.persist(store.KeyCurrentPage, q.page)
	return true
}

func (q *QueryController) SetFilter(field, value string) bool {
	if field == "" {
		return false
	}
	if value == "" {
		return q.ClearFilter(field)
	}
	if q.filters[field] == value {
		return false
	}
	q.filters[field] = value
	q.page = 1
	q.persistFilters()
	q.persist(store.KeyCurrentPage, q.page)
	return true
}

func (q *QueryController) ClearFilter(field string) bool {
	if _, ok := q.filters[field]; !ok {
		return false
	}
	delete(q.filters, field)
	q.page = 1
	q.persistFilters()
	q.persist(store.KeyCurrentPage, q.page)
	return true
}

// ClearAll drops every filter, the search text and the sort, returns to page
// one and removes the persisted copies.
func (q *QueryController) ClearAll() bool {
	if len(q.filters) == 0 && q.search == "" && q.searchInput == "" && q.page == 1 && !q.hasUserSorted {
		return false
	}
	q.filters = map[string]string{}
	q.search = ""
	q.searchInput = ""
	q.searchSeq++
	q.page = 1
	q.sortBy = ""
	q.sortDirection = ""
	q.hasUserSorted = false
	if q.store != nil {
		if err := q.store.Delete(store.KeyActiveFilters, store.KeySearchText, store.KeyCurrentPage); err != nil {
			q.logger.Warn("clear persisted query failed", logging.F("err", err))
		}
	}
	return true
}

// ToggleSort sorts by the given field, flipping direction when the field is
// already the sort key. The first call marks the query as user-sorted; until
// then no sort parameters are sent and the server default order applies.
func (q *QueryController) ToggleSort(field string) bool {
	if field == "" {
		return false
	}
	if q.hasUserSorted && q.sortBy == field {
		if q.sortDirection == sortAscending {
			q.sortDirection = sortDescending
		} else {
			q.sortDirection = sortAscending
		}
	} else {
		q.sortBy = field
		q.sortDirection = sortAscending
	}
	q.hasUserSorted = true
	q.page = 1
	q.persist(store.KeyCurrentPage, q.page)
	return true
}

func (q *QueryController) SetPage(page int) bool {
	page = clamp(page, 1, q.pageCountOrMax())
	if page == q.page {
		return false
	}
	q.page = page
	q.persist(store.KeyCurrentPage, q.page)
	return true
}

func (q *QueryController) NextPage() bool { return q.SetPage(q.page + 1) }
func (q *QueryController) PrevPage() bool { return q.SetPage(q.page - 1) }

// SetTotalCount records the server's total. If the current page now falls
// past the last page (records deleted, filter narrowed elsewhere), the page
// resets to 1 and the caller should refetch.
func (q *QueryController) SetTotalCount(count int) (clamped bool) {
	q.totalCount = count
	q.hasTotal = true
	if q.page > types.PageCount(count, q.pageSize) {
		q.page = 1
		q.persist(store.KeyCurrentPage, q.page)
		return true
	}
	return false
}

func (q *QueryController) TotalCount() int { return q.totalCount }

func (q *QueryController) PageCount() int {
	if !q.hasTotal {
		return 1
	}
	return types.PageCount(q.totalCount, q.pageSize)
}

func (q *QueryController) pageCountOrMax() int {
	if !q.hasTotal {
		// Total unknown until the first response lands; allow forward paging.
		return q.page + 1
	}
	return q.PageCount()
}

// Request builds the list request for the current state. Sort parameters are
// only included once the user has explicitly sorted.
func (q *QueryController) Request() client.ListWorkOrdersRequest {
	req := client.ListWorkOrdersRequest{
		Page:     q.page,
		PageSize: q.pageSize,
		Search:   strings.TrimSpace(q.search),
		Filters:  q.Filters(),
	}
	if q.hasUserSorted {
		req.SortBy = q.sortBy
		req.SortDirection = q.SortDirection()
	}
	return req
}

// NextFetchSeq marks the start of a fetch. Responses carrying an older
// sequence are stale and must be dropped.
func (q *QueryController) NextFetchSeq() int {
	q.fetchSeq++
	return q.fetchSeq
}

func (q *QueryController) IsCurrentFetch(seq int) bool {
	return seq == q.fetchSeq
}

func (q *QueryController) persist(key string, value any) {
	if q.store == nil {
		return
	}
	if err := q.store.Set(key, value); err != nil {
		q.logger.Warn("persist query state failed", logging.F("key", key), logging.F("err", err))
	}
}

func (q *QueryController) persistFilters() {
	if q.store == nil {
		return
	}
	if len(q.filters) == 0 {
		if err := q.store.Delete(store.KeyActiveFilters); err != nil {
			q.logger.Warn("persist query state failed", logging.F("key", store.KeyActiveFilters), logging.F("err", err))
		}
		return
	}
	q.persist(store.KeyActiveFilters, q.filters)
}
