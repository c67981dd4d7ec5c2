package services

import "github.com/harentsoaR/clinic-api/internal/models"

// AvailableSlots returns a copy of treatments where each service's slots are
// reduced to those not taken by a booking for that treatment. Bookings are
// expected to be filtered to a single date already. Slot order is preserved
// and a fully booked service comes back with an empty, non-nil slot list.
func AvailableSlots(treatments []models.Service, bookings []models.Booking) []models.Service {
	booked := make(map[string]map[string]struct{}, len(treatments))
	for _, b := range bookings {
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]models.Service, 0, len(treatments))
	for _, svc := range treatments {
		taken := booked[svc.Name]
		free := make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if _, ok := taken[slot]; !ok {
				free = append(free, slot)
			}
		}
		svc.Slots = free
		out = append(out, svc)
	}
	return out
}
