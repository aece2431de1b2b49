package live

import (
	"testing"
	"time"
)

func TestHub_NotifyReachesSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("bookings")
	defer cancel()

	h.Notify("bookings")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("expected notification")
	}
}

func TestHub_NotifyIsScopedToCollection(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("users")
	defer cancel()

	h.Notify("bookings")

	select {
	case <-ch:
		t.Fatalf("users subscriber must not see bookings notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_NotificationsCoalesce(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("bookings")
	defer cancel()

	h.Notify("bookings")
	h.Notify("bookings")
	h.Notify("bookings")

	<-ch
	select {
	case <-ch:
		t.Fatalf("undrained notifications should coalesce into one")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("bookings")
	cancel()

	h.Notify("bookings")

	select {
	case <-ch:
		t.Fatalf("cancelled subscriber must not be notified")
	case <-time.After(50 * time.Millisecond):
	}
}
