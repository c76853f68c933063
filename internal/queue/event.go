// Package queue defines message payloads exchanged over the message
// broker, the publisher the services call after a successful write,
// and the background consumer that turns events into audit log lines.
package queue

// SeatsReservedEvent is published when a reservation commits. It
// carries enough denormalized context for downstream consumers to
// log or notify without querying the primary store.
type SeatsReservedEvent struct {
	ScreeningID  string   `json:"screening_id"`
	UserID       string   `json:"user_id"`
	MovieTitle   string   `json:"movie_title"`
	LocationName string   `json:"location_name"`
	SeatIDs      []string `json:"seat_ids"`
	TotalPrice   uint32   `json:"total_price"`
	ReservedAt   string   `json:"reserved_at"`
}
