package domain

import "time"

// Status is the lifecycle state of a draft. Only a single state exists
// today; finalization of a draft into an order is not implemented.
type Status string

// StatusDraft marks an order draft still being assembled.
const StatusDraft Status = "Draft"

// Item is one line entry in a draft. Items are immutable once stored;
// the only mutation is removal.
type Item struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
	Category string    `json:"category"`
	AddedBy  string    `json:"addedBy"`
	AddedAt  time.Time `json:"addedAt"`
}

// Draft is the single in-progress shopping list. Items keep insertion
// order; the grouped display view is derived, never stored.
type Draft struct {
	Items  []Item `json:"items"`
	Status Status `json:"status"`
}

// EmptyDraft returns the read-side default for a draft that has not been
// persisted yet.
func EmptyDraft() Draft {
	return Draft{Items: []Item{}, Status: StatusDraft}
}

// CategoryGroup is one display bucket of the grouped draft view.
type CategoryGroup struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// GroupByCategory buckets items by category. Bucket order is the order in
// which each category first appears in the sequence; insertion order is
// preserved within a bucket.
func GroupByCategory(items []Item) []CategoryGroup {
	groups := []CategoryGroup{}
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, CategoryGroup{Category: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
