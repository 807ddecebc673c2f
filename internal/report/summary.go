package report

import (
	"fmt"
	"sort"
)

func isoWeekKey(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// summarize groups checkouts by period, newest period first.
func summarize(rows []ApprovedCheckout, period string) []Bucket {
	index := make(map[string]*Bucket)
	for _, row := range rows {
		key := bucketKey(row.ResolvedAt, period)
		b, ok := index[key]
		if !ok {
			b = &Bucket{Period: key}
			index[key] = b
		}
		b.Checkouts++
		b.Units += row.Quantity
	}

	buckets := make([]Bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period > buckets[j].Period
	})
	return buckets
}
