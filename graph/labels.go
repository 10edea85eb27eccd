package graph

import (
	"fmt"
	"sync"
)

// Labels recodes semantic labels (element symbols, bond orders) into compact
// int types and back.
type Labels struct {
	lock   sync.Mutex
	types  map[string]int
	labels []string
}

func NewLabels() *Labels {
	return &Labels{
		types:  make(map[string]int, 100),
		labels: make([]string, 0, 100),
	}
}

func (l *Labels) Type(label string) int {
	l.lock.Lock()
	defer l.lock.Unlock()
	if typ, has := l.types[label]; has {
		return typ
	} else {
		typ = len(l.labels)
		l.types[label] = typ
		l.labels = append(l.labels, label)
		return typ
	}
}

func (l *Labels) Label(typ int) string {
	l.lock.Lock()
	defer l.lock.Unlock()
	if typ < 0 || typ >= len(l.labels) {
		return fmt.Sprintf("type-[%d]", typ)
	}
	return l.labels[typ]
}

func (l *Labels) Labels() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	labels := make([]string, len(l.labels))
	copy(labels, l.labels)
	return labels
}
