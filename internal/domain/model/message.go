package model

import "time"

// Message is immutable once stored. Seq is assigned by the store on
// insert and breaks ordering ties between equal timestamps.
type Message struct {
	ID          string
	ClientMsgID string
	SenderID    string
	ReceiverID  string
	Body        string
	Timestamp   time.Time
	Seq         int64
}
