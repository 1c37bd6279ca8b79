package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func availableItem(id string, price int64) CatalogItem {
	return CatalogItem{
		ID:           id,
		Name:         "painting " + id,
		SellingPrice: decimal.NewFromInt(price),
		Status:       ItemStatusAvailable,
	}
}

func TestCartAdd_Success(t *testing.T) {
	cart := NewCart()

	if err := cart.Add(availableItem("p1", 12_000_000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", lines[0].Quantity)
	}
}

func TestCartAdd_Duplicate(t *testing.T) {
	cart := NewCart()
	item := availableItem("p1", 12_000_000)

	if err := cart.Add(item); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	err := cart.Add(item)
	if !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("expected ErrDuplicateItem, got: %v", err)
	}
	if cart.Len() != 1 {
		t.Errorf("expected 1 line after duplicate add, got %d", cart.Len())
	}
}

func TestCartAdd_Unavailable(t *testing.T) {
	cart := NewCart()

	for _, status := range []ItemStatus{ItemStatusSold, ItemStatusDiscontinued} {
		item := availableItem("p1", 12_000_000)
		item.Status = status

		err := cart.Add(item)
		if !errors.Is(err, ErrItemUnavailable) {
			t.Errorf("status %s: expected ErrItemUnavailable, got: %v", status, err)
		}
	}

	if !cart.Empty() {
		t.Error("cart should be unchanged after rejected adds")
	}
}

func TestCartRemove_FreesIdentifier(t *testing.T) {
	cart := NewCart()
	item := availableItem("p1", 12_000_000)

	if err := cart.Add(item); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart.Remove("p1")
	if !cart.Empty() {
		t.Fatal("expected empty cart after remove")
	}

	if err := cart.Add(item); err != nil {
		t.Errorf("re-add after remove should succeed, got: %v", err)
	}
}

func TestCartRemove_AbsentIsNoop(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(availableItem("p1", 12_000_000)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart.Remove("missing")
	if cart.Len() != 1 {
		t.Errorf("expected 1 line, got %d", cart.Len())
	}
}

func TestCartLines_InsertionOrder(t *testing.T) {
	cart := NewCart()
	ids := []string{"p3", "p1", "p2"}
	for _, id := range ids {
		if err := cart.Add(availableItem(id, 1_000_000)); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}

	lines := cart.Lines()
	for i, id := range ids {
		if lines[i].Item.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, lines[i].Item.ID)
		}
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(availableItem("p1", 12_000_000)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart.Clear()
	if !cart.Empty() {
		t.Error("expected empty cart after clear")
	}
}
