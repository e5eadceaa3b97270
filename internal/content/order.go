package content

import "sort"

// Sort orders items newest first. Items with equal dates keep their
// relative order.
func Sort(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Metadata.Date.After(items[j].Metadata.Date)
	})
}

// Link sets navigation slugs on sorted items: Previous points to the newer
// neighbor and Next to the older one.
func Link(items []*Item) {
	for i, item := range items {
		item.Previous, item.Next = "", ""
		if i > 0 {
			item.Previous = items[i-1].Slug
		}
		if i < len(items)-1 {
			item.Next = items[i+1].Slug
		}
	}
}

// Order sorts and links items.
func Order(items []*Item) {
	Sort(items)
	Link(items)
}
