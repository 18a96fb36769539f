package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"linkeep/internal/events"
	"linkeep/internal/models"
)

const maxCategorySuggestions = 10

// QueryEngine composes the live memo stream with three independently
// updatable inputs (free-text query, selected category, date range) into a
// continuously recomputed result view. Recomputation happens synchronously
// inside each input change and each store snapshot delivery, so subscribers
// never observe a partially applied filter.
type QueryEngine struct {
	mu        sync.Mutex
	snapshot  []models.Memo
	query     string
	category  *string
	dateRange *models.DateRange

	results *events.State[[]models.Memo]
	now     func() time.Time

	cancelWatch func()
}

// NewQueryEngine binds the engine to a memo snapshot stream. Close detaches it.
func NewQueryEngine(memos *events.State[[]models.Memo]) *QueryEngine {
	q := &QueryEngine{
		results: events.NewState([]models.Memo{}),
		now:     time.Now,
	}
	q.cancelWatch = memos.Listen(func(snapshot []models.Memo) {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.snapshot = snapshot
		q.recomputeLocked()
	})
	return q
}

func (q *QueryEngine) Close() {
	if q.cancelWatch != nil {
		q.cancelWatch()
	}
}

// Results is the live filtered view, ordered like the store snapshot
// (created-at descending).
func (q *QueryEngine) Results() *events.State[[]models.Memo] {
	return q.results
}

func (q *QueryEngine) SetQuery(query string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.query = query
	q.recomputeLocked()
}

// SetCategory selects a category filter; nil clears it.
func (q *QueryEngine) SetCategory(category *string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.category = category
	q.recomputeLocked()
}

// SetDateRange selects a creation-date filter; nil clears it.
func (q *QueryEngine) SetDateRange(r *models.DateRange) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dateRange = r
	q.recomputeLocked()
}

func (q *QueryEngine) recomputeLocked() {
	q.results.Set(FilterMemos(q.snapshot, q.query, q.category, q.dateRange, q.now()))
}

// FilterMemos applies the filters in order: category equality, then
// case-insensitive substring over title/content/category, then date range.
// The filters intersect (AND), so application order does not change the
// result set.
func FilterMemos(memos []models.Memo, query string, category *string, dateRange *models.DateRange, now time.Time) []models.Memo {
	if category != nil {
		selected := *category
		memos = lo.Filter(memos, func(m models.Memo, _ int) bool {
			return m.Category == selected
		})
	}

	if strings.TrimSpace(query) != "" {
		needle := strings.ToLower(query)
		memos = lo.Filter(memos, func(m models.Memo, _ int) bool {
			return strings.Contains(strings.ToLower(m.Title), needle) ||
				strings.Contains(strings.ToLower(m.Content), needle) ||
				strings.Contains(strings.ToLower(m.Category), needle)
		})
	}

	if dateRange != nil {
		r := *dateRange
		memos = lo.Filter(memos, func(m models.Memo, _ int) bool {
			return r.Contains(m.CreatedAt, now)
		})
	}

	return memos
}

// Categories returns the distinct, case-sensitive category set of the full
// store, sorted ascending.
func (q *QueryEngine) Categories() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	categories := lo.Uniq(lo.Map(q.snapshot, func(m models.Memo, _ int) string {
		return m.Category
	}))
	sort.Strings(categories)
	return categories
}

// RecentCategories returns up to 10 categories by most recent use. The
// snapshot is already created-at descending, so first occurrence wins.
func (q *QueryEngine) RecentCategories() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	seen := make(map[string]struct{}, maxCategorySuggestions)
	recent := make([]string, 0, maxCategorySuggestions)
	for _, m := range q.snapshot {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		recent = append(recent, m.Category)
		if len(recent) == maxCategorySuggestions {
			break
		}
	}
	return recent
}

// SearchCategories ranks the category set against a partial input for the
// suggestion list. A blank input yields no suggestions.
func (q *QueryEngine) SearchCategories(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(input, q.Categories())
	sort.Sort(ranks)

	matches := make([]string, 0, maxCategorySuggestions)
	for _, r := range ranks {
		matches = append(matches, r.Target)
		if len(matches) == maxCategorySuggestions {
			break
		}
	}
	return matches
}
