package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "ramesh", "hashed-secret")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero user id")
	}

	u, err := s.GetUserByUsername(ctx, "ramesh")
	if err != nil {
		t.Fatalf("GetUserByUsername returned error: %v", err)
	}
	if u.Username != "ramesh" || u.HashedPassword != "hashed-secret" {
		t.Errorf("Unexpected user row: %+v", u)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "ramesh", "h1"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	_, err := s.CreateUser(ctx, "ramesh", "h2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndListMedicines(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "ramesh", "h")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	medID, err := s.CreateMedicine(ctx, Medicine{Name: "Dolo 650", Generic: "Paracetamol", Company: "Micro Labs", Price: 30})
	if err != nil {
		t.Fatalf("CreateMedicine returned error: %v", err)
	}

	if err := s.SaveMedicine(ctx, userID, medID); err != nil {
		t.Fatalf("SaveMedicine returned error: %v", err)
	}
	// Saving twice is a no-op, not an error.
	if err := s.SaveMedicine(ctx, userID, medID); err != nil {
		t.Fatalf("Second SaveMedicine returned error: %v", err)
	}

	saved, err := s.GetSavedMedicines(ctx, userID)
	if err != nil {
		t.Fatalf("GetSavedMedicines returned error: %v", err)
	}
	if len(saved) != 1 || saved[0].Name != "Dolo 650" {
		t.Errorf("Unexpected saved list: %+v", saved)
	}
}

func TestSearchMedicines(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	results, err := s.SearchMedicines(ctx, "cro")
	if err != nil {
		t.Fatalf("SearchMedicines returned error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Crocin" {
		t.Errorf("Expected Crocin for case-insensitive substring, got %+v", results)
	}

	none, err := s.SearchMedicines(ctx, "zzz")
	if err != nil {
		t.Fatalf("SearchMedicines returned error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", none)
	}
}

func TestFindGeneric(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	generic, brands, err := s.FindGeneric(ctx, "dolo")
	if err != nil {
		t.Fatalf("FindGeneric returned error: %v", err)
	}
	if generic != "Paracetamol" {
		t.Errorf("Expected generic Paracetamol, got %s", generic)
	}
	if len(brands) != 3 {
		t.Fatalf("Expected 3 paracetamol brands, got %d", len(brands))
	}
	// Cheapest first.
	for i := 1; i < len(brands); i++ {
		if brands[i].Price < brands[i-1].Price {
			t.Errorf("Brands not ordered by price: %+v", brands)
		}
	}

	_, _, err = s.FindGeneric(ctx, "nosuchbrand")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("First Seed returned error: %v", err)
	}
	first, err := s.CountMedicines(ctx)
	if err != nil {
		t.Fatalf("CountMedicines returned error: %v", err)
	}
	if first == 0 {
		t.Fatal("Expected seeded catalog to be non-empty")
	}

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Second Seed returned error: %v", err)
	}
	second, err := s.CountMedicines(ctx)
	if err != nil {
		t.Fatalf("CountMedicines returned error: %v", err)
	}
	if second != first {
		t.Errorf("Seed reran on non-empty catalog: %d -> %d", first, second)
	}
}

func TestEssentials(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	cats := EssentialCategories()
	if len(cats) == 0 {
		t.Fatal("Expected at least one essentials category")
	}

	meds, err := s.EssentialsByCategory(ctx, "pain")
	if err != nil {
		t.Fatalf("EssentialsByCategory returned error: %v", err)
	}
	if len(meds) == 0 {
		t.Error("Expected pain essentials from the seeded catalog")
	}

	unknown, err := s.EssentialsByCategory(ctx, "no-such-category")
	if err != nil {
		t.Fatalf("EssentialsByCategory returned error: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("Expected empty list for unknown category, got %+v", unknown)
	}
}

func TestBlogPosts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", posts)
	}

	if _, err := s.CreatePost(ctx, "First", "content one"); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := s.CreatePost(ctx, "Second", "content two"); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	posts, err = s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "Second" {
		t.Errorf("Expected newest-first posts, got %+v", posts)
	}
}

func TestGetMedicineByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateMedicine(ctx, Medicine{Name: "Cetzine", Generic: "Cetirizine"})
	if err != nil {
		t.Fatalf("CreateMedicine returned error: %v", err)
	}

	m, err := s.GetMedicineByID(ctx, id)
	if err != nil {
		t.Fatalf("GetMedicineByID returned error: %v", err)
	}
	if m.Name != "Cetzine" {
		t.Errorf("Unexpected medicine: %+v", m)
	}

	if _, err := s.GetMedicineByID(ctx, 99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
