package types

import "time"

// Snapshot is one complete catalog state: the normalized products together
// with the refresh sequence that produced them. Snapshots replace each
// other wholesale, there is no diffing.
type Snapshot struct {
	Seq       uint64    `json:"seq"`
	FetchedAt time.Time `json:"fetchedAt"`
	Products  []Product `json:"products"`
}
