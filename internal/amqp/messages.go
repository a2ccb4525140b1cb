package amqp

import (
	"encoding/json"
	"time"
)

// TransactionRecordedMessage announces that a transaction row was written
// to SQLite. It carries only the row ID; consumers fetch the full row from
// the database so the queue never holds stale copies.
type TransactionRecordedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(id int64) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
