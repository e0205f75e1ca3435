package model

import "time"

// ReceivedLike is an inbound like awaiting a match decision. The entry
// is deleted once the recipient matches with or declines the liker.
type ReceivedLike struct {
	FromUserID string
	Image      string
	Comment    string
	CreatedAt  time.Time
}
