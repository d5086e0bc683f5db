package state

// LogCapacity bounds the message log.
const LogCapacity = 100

// Log is a bounded, newest-first list of player-facing messages.
// Add never writes into an existing backing array, so copies of a Log may
// share storage freely.
type Log struct {
	entries []string
}

// NewLog returns a log holding msgs, newest first.
func NewLog(msgs ...string) Log {
	if len(msgs) > LogCapacity {
		msgs = msgs[:LogCapacity]
	}
	return Log{entries: append([]string(nil), msgs...)}
}

// Add prepends msg, dropping the oldest entry beyond capacity.
func (l *Log) Add(msg string) {
	keep := min(len(l.entries), LogCapacity-1)
	next := make([]string, 0, keep+1)
	next = append(next, msg)
	l.entries = append(next, l.entries[:keep]...)
}

// Entries returns the messages, newest first. Callers must not modify it.
func (l Log) Entries() []string { return l.entries }

// Latest returns the newest message, or "".
func (l Log) Latest() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[0]
}

// Len returns the number of stored messages.
func (l Log) Len() int { return len(l.entries) }
