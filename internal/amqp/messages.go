package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"retiresaveup/internal/core"
)

// EventCalculationRecorded is the AMQP message type of CalculationRecordedMessage.
const EventCalculationRecorded = "calculation.recorded"

// CalculationRecordedMessage announces a stored calculation. It carries only
// the identifiers; consumers load the full record from the shared store.
type CalculationRecordedMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Vehicle   string    `json:"vehicle"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCalculationRecordedMessage(rec core.CalculationRecord) *CalculationRecordedMessage {
	return &CalculationRecordedMessage{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Vehicle:   rec.Vehicle.String(),
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CalculationRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CalculationRecordedMessageFromJSON decodes a message and rejects one
// without a record id.
func CalculationRecordedMessageFromJSON(data []byte) (*CalculationRecordedMessage, error) {
	var msg CalculationRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, errors.New("calculation recorded message without id")
	}
	return &msg, nil
}
