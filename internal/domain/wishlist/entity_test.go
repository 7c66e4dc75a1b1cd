package wishlist

import (
	"testing"

	"github.com/google/uuid"
)

func TestPackageItemID(t *testing.T) {
	gameID := uuid.MustParse("7a9e58a3-4a3c-4f34-9d25-0d1c9f6b8a11")

	got := PackageItemID(gameID, "100 Diamond", 8000)
	want := "7a9e58a3-4a3c-4f34-9d25-0d1c9f6b8a11_100Diamond_8000"
	if got != want {
		t.Fatalf("PackageItemID = %q, want %q", got, want)
	}

	// Same package always yields the same key.
	if again := PackageItemID(gameID, "100 Diamond", 8000); again != got {
		t.Fatal("item id is not stable")
	}

	// A different price is a different package.
	if other := PackageItemID(gameID, "100 Diamond", 7000); other == got {
		t.Fatal("price change must produce a different item id")
	}
}
