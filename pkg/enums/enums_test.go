package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseProductCategory(c.String())
		if err != nil {
			t.Fatalf("parsing %q: %v", c, err)
		}
		if parsed != c {
			t.Fatalf("expected %q, got %q", c, parsed)
		}
	}
	if _, err := ParseProductCategory("smoothies"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusWaiting.IsTerminal() {
		t.Fatal("waiting must not be terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("waiting"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseDeliveryType(t *testing.T) {
	if _, err := ParseDeliveryType("pickup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDeliveryType("drone"); err == nil {
		t.Fatal("expected error for unknown delivery type")
	}
}
