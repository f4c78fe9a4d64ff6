package category

import (
	"reflect"
	"sort"
	"testing"
)

func intPtr(v int) *int { return &v }

func seedTree() *Service {
	return NewService(NewInMemoryRepository([]Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Phones", ParentID: intPtr(1)},
		{ID: 3, Name: "Laptops", ParentID: intPtr(1)},
		{ID: 4, Name: "Accessories", ParentID: intPtr(2)}, // grandchild of Electronics
		{ID: 5, Name: "Garden"},
	}))
}

func TestResolveExpandsOneLevel(t *testing.T) {
	svc := seedTree()

	ids, err := svc.Resolve("Electronics")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	sort.Ints(ids)
	// grandchild 4 must not be included
	if !reflect.DeepEqual(ids, []int{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	svc := seedTree()

	for _, name := range []string{"electronics", "ELECTRONICS", "eLeCtRoNiCs"} {
		ids, err := svc.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", name, err)
		}
		if len(ids) != 3 {
			t.Fatalf("Resolve(%q) returned %d ids, want 3", name, len(ids))
		}
	}
}

func TestResolveUnmatchedIsEmptyNotError(t *testing.T) {
	svc := seedTree()

	ids, err := svc.Resolve("does-not-exist")
	if err != nil {
		t.Fatalf("unmatched name must not error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("unmatched name must resolve to an empty set, got %v", ids)
	}
}

func TestResolveIdempotent(t *testing.T) {
	svc := seedTree()

	first, err := svc.Resolve("phones")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := svc.Resolve("phones")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Resolve is not idempotent: %v vs %v", first, second)
	}
}

func TestResolveLeafHasNoChildren(t *testing.T) {
	svc := seedTree()

	ids, err := svc.Resolve("Garden")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{5}) {
		t.Fatalf("expected [5], got %v", ids)
	}
}

func TestCreateRejectsMissingParent(t *testing.T) {
	svc := seedTree()

	_, err := svc.Create(Category{Name: "Orphans", ParentID: intPtr(99)})
	if err != ErrParentNotFound {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCreateRejectsCyclicParentChain(t *testing.T) {
	// build a broken tree where 11 -> 12 -> 11
	repo := NewInMemoryRepository([]Category{
		{ID: 11, Name: "A", ParentID: intPtr(12)},
		{ID: 12, Name: "B", ParentID: intPtr(11)},
	})
	svc := NewService(repo)

	_, err := svc.Create(Category{Name: "C", ParentID: intPtr(11)})
	if err != ErrCyclicParent {
		t.Fatalf("expected ErrCyclicParent, got %v", err)
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := seedTree()

	if _, err := svc.Create(Category{Name: "   "}); err == nil {
		t.Fatal("expected an error for a blank category name")
	}
}

func TestCreateValidParentChain(t *testing.T) {
	svc := seedTree()

	created, err := svc.Create(Category{Name: "Chargers", ParentID: intPtr(4)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}
