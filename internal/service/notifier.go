package service

// Notifier receives change events after successful writes. ws.Hub implements it.
type Notifier interface {
	Publish(eventType string, data any)
}

const (
	EventProductCreated  = "product_created"
	EventProductUpdated  = "product_updated"
	EventProductDeleted  = "product_deleted"
	EventOrderCreated    = "order_created"
	EventOrderUpdated    = "order_updated"
	EventOrderDeleted    = "order_deleted"
	EventImagesChanged   = "images_changed"
	EventCategoryCreated = "category_created"
)

type nopNotifier struct{}

func (nopNotifier) Publish(string, any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
