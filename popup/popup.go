package popup

import (
	"context"
	"log"

	"camstore-backend/models"
)

// Next returns the first offer in offers flagged as a popup that session has
// not been shown yet, and marks it shown. ok is false when there is none.
// A failing store is treated as "not shown" so a Redis outage never hides
// offers.
func Next(ctx context.Context, store Store, session string, offers []models.Offer) (offer models.Offer, ok bool) {
	for _, o := range offers {
		if !o.IsPopup {
			continue
		}
		id := o.ID.String()
		seen, err := store.Seen(ctx, session, id)
		if err != nil {
			log.Printf("[popup] seen check failed for %s: %v", id, err)
		}
		if seen {
			continue
		}
		if err := store.MarkSeen(ctx, session, id); err != nil {
			log.Printf("[popup] mark seen failed for %s: %v", id, err)
		}
		return o, true
	}
	return models.Offer{}, false
}
