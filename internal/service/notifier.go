package service

import "github.com/shopspring/decimal"

// Notifier pushes entity change events to connected clients. The websocket
// hub satisfies it; services tolerate a nil notifier.
type Notifier interface {
	Publish(eventType, entity, entityID, message string)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
