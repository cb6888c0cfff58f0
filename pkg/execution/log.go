package execution

import "sync"

// Log is an append-only list of human readable records produced while a
// call executes. It is never persisted.
type Log struct {
	lock    sync.Mutex
	records []string
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(record string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.records = append(l.records, record)
}

// Records returns a copy of the log in append order.
func (l *Log) Records() []string {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]string, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Log) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.records)
}
