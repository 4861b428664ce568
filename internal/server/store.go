package server

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsonscope/pkg/viewer"
)

// document is one uploaded session. mu serializes every use of session.
type document struct {
	id      string
	created time.Time

	mu      sync.Mutex
	session *viewer.Session
}

// store is a bounded LRU of documents.
type store struct {
	mu    sync.Mutex
	max   int
	order *list.List // front is most recently used
	byID  map[string]*list.Element
}

func newStore(max int) *store {
	return &store{max: max, order: list.New(), byID: make(map[string]*list.Element)}
}

// add stores s under a fresh id and returns the id and any evicted ids.
func (st *store) add(s *viewer.Session) (*document, []string) {
	doc := &document{id: uuid.NewString(), created: time.Now(), session: s}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.byID[doc.id] = st.order.PushFront(doc)

	var evicted []string
	for st.order.Len() > st.max {
		old := st.order.Back()
		st.order.Remove(old)
		id := old.Value.(*document).id
		delete(st.byID, id)
		evicted = append(evicted, id)
	}
	return doc, evicted
}

func (st *store) get(id string) (*document, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	el, ok := st.byID[id]
	if !ok {
		return nil, false
	}
	st.order.MoveToFront(el)
	return el.Value.(*document), true
}

func (st *store) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	el, ok := st.byID[id]
	if !ok {
		return false
	}
	st.order.Remove(el)
	delete(st.byID, id)
	return true
}

func (st *store) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.order.Len()
}
