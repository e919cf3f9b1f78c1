package mock

import (
	"fmt"
	"sync/atomic"
)

// IDs hands out predictable transaction ids: txn-1, txn-2, ...
type IDs struct {
	next atomic.Int64
}

func NewIDs() *IDs {
	return &IDs{}
}

func (g *IDs) NewID() (string, error) {
	return fmt.Sprintf("txn-%d", g.next.Add(1)), nil
}

func (g *IDs) Reset() {
	g.next.Store(0)
}
