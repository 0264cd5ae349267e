package store

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/report"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	defer m.Close(ctx)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	runs := []*report.Run{
		{ID: "a", Solid: "rbc", Started: t0},
		{ID: "b", Solid: "prbc", Started: t0.Add(time.Hour)},
		{ID: "c", Solid: "rbc", Started: t0.Add(2 * time.Hour)},
	}
	for _, r := range runs {
		if err := m.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error: %v", r.ID, err)
		}
	}

	got, err := m.Get(ctx, "b")
	if err != nil || got.Solid != "prbc" {
		t.Errorf("Get(b) = %v, %v", got, err)
	}
	if _, err := m.Get(ctx, "zzz"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}

	list, _ := m.List(ctx, "rbc", 0)
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "a" {
		t.Errorf("List(rbc) = %v", ids(list))
	}
	list, _ = m.List(ctx, "", 2)
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Errorf("List(all, 2) = %v", ids(list))
	}

	if err := m.Save(ctx, &report.Run{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(no id) error = %v", err)
	}
}

func ids(runs []*report.Run) []string {
	var out []string
	for _, r := range runs {
		out = append(out, r.ID)
	}
	return out
}

func TestListQuery(t *testing.T) {
	filter, opts := listQuery("rbc", 0)
	if filter["solid"] != "rbc" {
		t.Errorf("filter = %v", filter)
	}
	if opts.Limit == nil || *opts.Limit != DefaultLimit {
		t.Errorf("limit = %v, want %d", opts.Limit, DefaultLimit)
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 1 || sort[0].Key != "started" || sort[0].Value != -1 {
		t.Errorf("sort = %v", opts.Sort)
	}

	filter, opts = listQuery("", 5)
	if len(filter) != 0 || *opts.Limit != 5 {
		t.Errorf("listQuery(all, 5) = %v, %v", filter, *opts.Limit)
	}
}
