package domain

import (
	"errors"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewItemNotFoundError("B1")
		expected := "item not found: id=B1"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		err = NewOrderNotFoundError("ORD-00001")
		expected = "order not found: id=ORD-00001"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewItemNotFoundError("B1")
		target := &NotFoundError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect NotFoundError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewItemNotFoundError("B2")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatal("errors.As should convert to NotFoundError")
		}
		if nf.Kind != "item" || nf.ID != "B2" {
			t.Errorf("error fields not correctly preserved: %+v", nf)
		}
	})

	t.Run("IsNotFoundError helper", func(t *testing.T) {
		if !IsNotFoundError(NewOrderNotFoundError("ORD-00002")) {
			t.Error("IsNotFoundError should return true")
		}
	})
}

func TestInvalidArgumentError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInvalidArgumentError("total_quantity", "must be positive", 0)
		expected := "invalid argument: field=total_quantity, reason=must be positive, value=0"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewInvalidArgumentError("qty", "must be positive", -1)
		target := &InvalidArgumentError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect InvalidArgumentError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewInvalidArgumentError("price", "must be non-negative", -5)
		var ia *InvalidArgumentError
		if !errors.As(err, &ia) {
			t.Fatal("errors.As should convert to InvalidArgumentError")
		}
		if ia.Field != "price" || ia.Reason != "must be non-negative" {
			t.Errorf("error fields not correctly preserved")
		}
	})

	t.Run("IsInvalidArgumentError helper", func(t *testing.T) {
		if !IsInvalidArgumentError(NewInvalidArgumentError("title", "cannot be empty", "")) {
			t.Error("IsInvalidArgumentError should return true")
		}
	})
}

func TestInsufficientStockError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInsufficientStockError("B1", 3, 2)
		expected := "insufficient stock: item=B1, requested=3, available=2"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewInsufficientStockError("B1", 5, 0)
		var is *InsufficientStockError
		if !errors.As(err, &is) {
			t.Fatal("errors.As should convert to InsufficientStockError")
		}
		if is.ItemID != "B1" || is.Requested != 5 || is.Available != 0 {
			t.Errorf("error fields not correctly preserved: %+v", is)
		}
	})

	t.Run("IsInsufficientStockError helper", func(t *testing.T) {
		if !IsInsufficientStockError(NewInsufficientStockError("B1", 1, 0)) {
			t.Error("IsInsufficientStockError should return true")
		}
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInvalidTransitionError("ORD-00001", StatusDelivered, StatusCancelledRestocked)
		expected := "invalid transition: order=ORD-00001, from=DELIVERED, to=CANCELLED_RESTOCKED"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewInvalidTransitionError("ORD-00002", StatusPendingPayment, StatusDelivered)
		var it *InvalidTransitionError
		if !errors.As(err, &it) {
			t.Fatal("errors.As should convert to InvalidTransitionError")
		}
		if it.From != StatusPendingPayment || it.To != StatusDelivered {
			t.Errorf("error fields not correctly preserved: %+v", it)
		}
	})

	t.Run("IsInvalidTransitionError helper", func(t *testing.T) {
		if !IsInvalidTransitionError(NewInvalidTransitionError("ORD-00003", StatusPaid, StatusPaid)) {
			t.Error("IsInvalidTransitionError should return true")
		}
	})
}

func TestErrorTypeDiscrimination(t *testing.T) {
	nf := NewItemNotFoundError("B1")
	ia := NewInvalidArgumentError("price", "negative", -5)
	is := NewInsufficientStockError("B1", 2, 1)
	it := NewInvalidTransitionError("ORD-00001", StatusDelivered, StatusPaid)

	if IsInvalidArgumentError(nf) || IsInsufficientStockError(nf) || IsInvalidTransitionError(nf) {
		t.Error("NotFoundError should not match other types")
	}
	if IsNotFoundError(ia) || IsInsufficientStockError(ia) || IsInvalidTransitionError(ia) {
		t.Error("InvalidArgumentError should not match other types")
	}
	if IsNotFoundError(is) || IsInvalidArgumentError(is) || IsInvalidTransitionError(is) {
		t.Error("InsufficientStockError should not match other types")
	}
	if IsNotFoundError(it) || IsInvalidArgumentError(it) || IsInsufficientStockError(it) {
		t.Error("InvalidTransitionError should not match other types")
	}
}
