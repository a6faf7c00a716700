package rediscache

import "strconv"

// Event is a cache event raised by the proxy for one transaction.
// Values outside the declared set are unknown events.
type Event int

const (
	EventLookup Event = iota + 1
	EventRead
	EventWrite
	EventWriteHeader
	EventDelete
	EventClose
)

func (e Event) String() string {
	switch e {
	case EventLookup:
		return "lookup"
	case EventRead:
		return "read"
	case EventWrite:
		return "write"
	case EventWriteHeader:
		return "write_header"
	case EventDelete:
		return "delete"
	case EventClose:
		return "close"
	default:
		return "event(" + strconv.Itoa(int(e)) + ")"
	}
}

// Outcome is what the adapter reports back to the transaction.
type Outcome int

const (
	LookupComplete Outcome = iota + 1
	LookupReady
	ReadComplete
	ReadReady
	WriteComplete
	DeleteComplete
	Closed
	Unhandled // neutral ack for events the adapter does not know
)

func (o Outcome) String() string {
	switch o {
	case LookupComplete:
		return "lookup_complete"
	case LookupReady:
		return "lookup_ready"
	case ReadComplete:
		return "read_complete"
	case ReadReady:
		return "read_ready"
	case WriteComplete:
		return "write_complete"
	case DeleteComplete:
		return "delete_complete"
	case Closed:
		return "closed"
	case Unhandled:
		return "unhandled"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// readOutcome picks the Complete or Ready variant for a lookup/read event.
func readOutcome(ev Event, more bool) Outcome {
	if ev == EventLookup {
		if more {
			return LookupReady
		}
		return LookupComplete
	}
	if more {
		return ReadReady
	}
	return ReadComplete
}
