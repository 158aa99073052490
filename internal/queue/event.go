// Package queue defines message payloads exchanged over the message broker.
package queue

// SchedulePublishedEvent is published when a daily schedule crosses
// the DRAFT → ON_SALE gate.  Downstream consumers (box office sync,
// notifications, analytics) get everything they need without querying
// the schedule store.
type SchedulePublishedEvent struct {
	Date          string `json:"date"`
	ShowtimeCount int    `json:"showtime_count"`
	PublishedBy   uint64 `json:"published_by"`
	PublishedAt   string `json:"published_at"`
}

// TicketScannedEvent is published on every successful gate scan.
type TicketScannedEvent struct {
	TicketID   string `json:"ticket_id"`
	Date       string `json:"date"`
	ShowtimeID string `json:"showtime_id"`
	MovieID    uint64 `json:"movie_id"`
	TheaterID  uint64 `json:"theater_id"`
	Seat       string `json:"seat"`
	ScannedAt  string `json:"scanned_at"`
}
