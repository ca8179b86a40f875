package analysis

import "sort"

type countedName struct {
	name  string
	count int
}

// topCounts orders by count descending, then name ascending, and keeps the first n.
func topCounts(items []countedName, n int) []countedName {
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].name < items[j].name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// sumInto adds every entry of src into dst.
func sumInto(dst map[string]int, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func rankMap(m map[string]int, n int) []string {
	items := make([]countedName, 0, len(m))
	for name, count := range m {
		items = append(items, countedName{name: name, count: count})
	}
	top := topCounts(items, n)
	names := make([]string, 0, len(top))
	for _, item := range top {
		names = append(names, item.name)
	}
	return names
}
