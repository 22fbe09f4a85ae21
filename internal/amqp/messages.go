package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"drivelog/internal/core"
)

// RecordRegisteredMessage announces that a record was appended to the journal.
// It carries enough to log and route the event; consumers reload the table for
// anything else.
type RecordRegisteredMessage struct {
	Date           string    `json:"date"`
	Worked         bool      `json:"worked"`
	NetProfitCents int64     `json:"net_profit_cents"`
	TableSize      int       `json:"table_size"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewRecordRegisteredMessage(r core.DailyRecord, tableSize int) *RecordRegisteredMessage {
	return &RecordRegisteredMessage{
		Date:           r.Date.String(),
		Worked:         r.Worked,
		NetProfitCents: r.NetProfit().Cents,
		TableSize:      tableSize,
		Timestamp:      time.Now().UTC(),
	}
}

func (m *RecordRegisteredMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordRegisteredMessageFromJSON decodes a message and checks its date.
func RecordRegisteredMessageFromJSON(data []byte) (*RecordRegisteredMessage, error) {
	var msg RecordRegisteredMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := core.ParseDate(msg.Date); err != nil {
		return nil, fmt.Errorf("record registered message: %w", err)
	}
	return &msg, nil
}
