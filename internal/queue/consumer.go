package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartScheduleConsumer connects to RabbitMQ, declares the two durable
// schedule queues and consumes them into logs/schedule.log, one line
// per event.  It runs a reconnect loop with capped backoff and keeps
// running across broker restarts; processing errors reject the
// offending message without requeueing so the loop cannot spin.
func StartScheduleConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(BrokerURL())
		if err != nil {
			log.Printf("schedule-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("schedule-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("schedule-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{SchedulePublishedQueue, TicketScannedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	published, err := ch.Consume(SchedulePublishedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", SchedulePublishedQueue, err)
	}
	scanned, err := ch.Consume(TicketScannedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", TicketScannedQueue, err)
	}

	for {
		select {
		case d, ok := <-published:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			ack(d, handlePublished(d.Body))
		case d, ok := <-scanned:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			ack(d, handleScanned(d.Body))
		}
	}
}

func ack(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("schedule-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
		return
	}
	_ = d.Ack(false)
}

func handlePublished(body []byte) error {
	var ev SchedulePublishedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Schedule published | date=%s | showtimes=%d | published_by=%d\n",
		ev.PublishedAt, ev.Date, ev.ShowtimeCount, ev.PublishedBy)
	return appendLog(line)
}

func handleScanned(body []byte) error {
	var ev TicketScannedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Ticket scanned | ticket_id=%s | date=%s | showtime_id=%s | theater_id=%d | seat=%q\n",
		ev.ScannedAt, ev.TicketID, ev.Date, ev.ShowtimeID, ev.TheaterID, ev.Seat)
	return appendLog(line)
}

func appendLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "schedule.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
