package todo

import (
	"sort"
	"strings"
	"time"
)

type SortPolicy string

const (
	SortInsertion SortPolicy = "insertion"
	SortDateTime  SortPolicy = "datetime"
)

func ParseSortPolicy(s string) SortPolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(SortInsertion)) {
		return SortInsertion
	}
	return SortDateTime
}

// Sort orders items in place. Under SortDateTime the scheduled records are
// ordered by due instant, earliest first, among the positions they already
// occupy; records without a readable date and time keep their position.
func Sort(items []Task, policy SortPolicy, loc *time.Location) {
	if policy != SortDateTime {
		return
	}
	type dated struct {
		task Task
		due  time.Time
	}
	var slots []int
	var scheduled []dated
	for i, t := range items {
		due, ok := t.Due(loc)
		if !ok {
			continue
		}
		slots = append(slots, i)
		scheduled = append(scheduled, dated{task: t, due: due})
	}
	sort.SliceStable(scheduled, func(a, b int) bool {
		return scheduled[a].due.Before(scheduled[b].due)
	})
	for n, i := range slots {
		items[i] = scheduled[n].task
	}
}
