package dashboard

import "sort"

// CategoryCount is one row of a frequency table.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Frequency counts occurrences of each distinct value. Values are grouped by
// exact string equality. Rows are ordered by count descending; rows with equal
// counts keep the order in which their category first appeared in values.
func Frequency(values []string) []CategoryCount {
	index := make(map[string]int, len(values))
	rows := make([]CategoryCount, 0)

	for _, v := range values {
		if i, ok := index[v]; ok {
			rows[i].Count++
			continue
		}
		index[v] = len(rows)
		rows = append(rows, CategoryCount{Category: v, Count: 1})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}
