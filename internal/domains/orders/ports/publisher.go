package ports

import "github.com/orderstack/inventory-service/internal/notify"

// Publisher fans out change events once the fulfillment outcome is decided.
type Publisher interface {
	Publish(event notify.Event)
}
