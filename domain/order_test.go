package domain

import "testing"

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{"pending to paid", StatusPendingPayment, StatusPaid, true},
		{"pending to cancelled", StatusPendingPayment, StatusCancelledRestocked, true},
		{"pending to delivered", StatusPendingPayment, StatusDelivered, false},
		{"paid to delivered", StatusPaid, StatusDelivered, true},
		{"paid to cancelled", StatusPaid, StatusCancelledRestocked, true},
		{"paid to pending", StatusPaid, StatusPendingPayment, false},
		{"delivered is terminal", StatusDelivered, StatusCancelledRestocked, false},
		{"delivered to paid", StatusDelivered, StatusPaid, false},
		{"cancelled is terminal", StatusCancelledRestocked, StatusPendingPayment, false},
		{"cancelled to cancelled", StatusCancelledRestocked, StatusCancelledRestocked, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
			}
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	if StatusPendingPayment.Terminal() || StatusPaid.Terminal() {
		t.Error("non-terminal statuses reported as terminal")
	}
	if !StatusDelivered.Terminal() || !StatusCancelledRestocked.Terminal() {
		t.Error("terminal statuses not reported as terminal")
	}
}

func TestOrder_CloneItems(t *testing.T) {
	o := Order{Items: map[string]int{"B1": 2, "B2": 1}}
	clone := o.CloneItems()
	clone["B1"] = 99
	if o.Items["B1"] != 2 {
		t.Fatal("CloneItems should return an independent copy")
	}
}
