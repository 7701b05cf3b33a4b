package repository

import (
	"strings"
	"testing"
)

func TestListingWhere(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		where, args := listingWhere(ListingFilter{})
		if where != "WHERE status = $1" {
			t.Fatalf("unexpected clause: %s", where)
		}
		if len(args) != 1 || args[0] != "ACTIVE" {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("all filters", func(t *testing.T) {
		where, args := listingWhere(ListingFilter{
			Search:   "go",
			Location: "Berlin",
			Source:   "remotive",
		})
		if len(args) != 4 {
			t.Fatalf("expected 4 args, got %v", args)
		}
		if !strings.Contains(where, "title ILIKE $2") ||
			!strings.Contains(where, "description ILIKE $2") ||
			!strings.Contains(where, "company ILIKE $2") {
			t.Fatalf("search must match title, description and company: %s", where)
		}
		if !strings.Contains(where, "location ILIKE $3") {
			t.Fatalf("missing location clause: %s", where)
		}
		if !strings.Contains(where, "source = $4") {
			t.Fatalf("missing source clause: %s", where)
		}
		if args[1] != "%go%" || args[2] != "%Berlin%" || args[3] != "remotive" {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("blank filters are ignored", func(t *testing.T) {
		where, args := listingWhere(ListingFilter{Search: "  ", Location: "\t"})
		if where != "WHERE status = $1" || len(args) != 1 {
			t.Fatalf("blank filters must not add clauses: %s %v", where, args)
		}
	})
}

func TestNullableText(t *testing.T) {
	if got := nullableText("  "); got != nil {
		t.Fatalf("blank string must map to NULL, got %v", got)
	}
	if got := nullableText(" $90k "); got != "$90k" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}
