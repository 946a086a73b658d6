package models

import "time"

// StatusCheck records a client ping
// Collection: status_checks
type StatusCheck struct {
	ID         string    `bson:"_id" json:"id"`
	ClientName string    `bson:"client_name" json:"client_name"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
