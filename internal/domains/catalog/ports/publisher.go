package ports

import "github.com/orderstack/inventory-service/internal/notify"

// Publisher fans out change events after a mutation has committed.
type Publisher interface {
	Publish(event notify.Event)
}
