package todo

import (
	"reflect"
	"testing"
	"time"
)

func ids(items []Task) []int {
	out := make([]int, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}

func TestSortDateTimeOrdersScheduled(t *testing.T) {
	items := []Task{
		{ID: 1, Title: "late", Date: "2026-05-02", Time: "09:00 AM"},
		{ID: 2, Title: "pm", Date: "2026-05-01", Time: "01:00 PM"},
		{ID: 3, Title: "am", Date: "2026-05-01", Time: "11:00 AM"},
		{ID: 4, Title: "midnight", Date: "2026-05-01", Time: "12:05 AM"},
	}
	Sort(items, SortDateTime, time.UTC)
	if got, want := ids(items), []int{4, 3, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortKeepsUnscheduledInPlace(t *testing.T) {
	items := []Task{
		{ID: 1, Title: "b", Date: "2026-05-02", Time: "09:00 AM"},
		{ID: 2, Title: "undated one"},
		{ID: 3, Title: "a", Date: "2026-05-01", Time: "09:00 AM"},
		{ID: 4, Title: "undated two"},
	}
	Sort(items, SortDateTime, time.UTC)
	if got, want := ids(items), []int{3, 2, 1, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortIsStableForEqualInstants(t *testing.T) {
	items := []Task{
		{ID: 7, Title: "x", Date: "2026-05-01", Time: "09:00 AM"},
		{ID: 3, Title: "y", Date: "2026-05-01", Time: "09:00 AM"},
		{ID: 5, Title: "z", Date: "2026-05-01", Time: "09:00 AM"},
	}
	Sort(items, SortDateTime, time.UTC)
	if got, want := ids(items), []int{7, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSortInsertionLeavesOrder(t *testing.T) {
	items := []Task{
		{ID: 1, Date: "2026-05-02", Time: "09:00 AM"},
		{ID: 2, Date: "2026-05-01", Time: "09:00 AM"},
	}
	Sort(items, SortInsertion, time.UTC)
	if got, want := ids(items), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestParseSortPolicy(t *testing.T) {
	if ParseSortPolicy(" Insertion ") != SortInsertion {
		t.Fatal("expected insertion")
	}
	if ParseSortPolicy("anything") != SortDateTime {
		t.Fatal("expected datetime fallback")
	}
}
