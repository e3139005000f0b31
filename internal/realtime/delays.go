package realtime

// Key identifies a trip's visit to a stop.
type Key struct {
	StopID string
	TripID string
}

// Delays maps a trip's visit to a stop to how late it runs, in seconds.
// Only positive delays are kept. A nil Delays is an empty index.
type Delays map[Key]float64

// NewDelays creates an empty delay index.
func NewDelays() Delays {
	return make(Delays)
}

// Set records a delay, replacing any earlier value for the same stop and
// trip. Delays that are not positive are ignored.
func (d Delays) Set(stopID, tripID string, seconds float64) {
	if seconds <= 0 {
		return
	}
	d[Key{stopID, tripID}] = seconds
}

// Lookup returns the delay of tripID at stopID.
func (d Delays) Lookup(stopID, tripID string) (float64, bool) {
	s, ok := d[Key{stopID, tripID}]
	return s, ok
}

// Len returns the number of stop/trip pairs with a delay.
func (d Delays) Len() int {
	return len(d)
}
