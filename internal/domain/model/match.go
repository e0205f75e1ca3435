package model

import "time"

// Match is a single normalized edge: UserAID < UserBID. One row
// represents the mutual relationship in both directions.
type Match struct {
	UserAID   string
	UserBID   string
	CreatedAt time.Time
}
