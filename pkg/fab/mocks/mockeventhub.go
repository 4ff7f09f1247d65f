/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"sync"

	"github.com/hyperledger-labs/fabric-txn-go/pkg/common/providers/fab"
	"github.com/hyperledger-labs/fabric-txn-go/pkg/fab/events/service/dispatcher"
	cb "github.com/hyperledger/fabric-protos-go/common"
	"github.com/pkg/errors"
)

// MockEventHub is an in-memory fab.EventHub. Blocks and errors posted to
// Events are dispatched one at a time once Connect has been called.
type MockEventHub struct {
	Events     chan interface{}
	ConnectErr error
	BuildErr   error

	mutex      sync.Mutex
	calls      []string
	identity   fab.IdentityContext
	seek       fab.SeekRange
	notified   []int
	dispatcher *dispatcher.Dispatcher
	connected  bool
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
}

// NewMockEventHub returns a mock event hub with room for bufferSize pending events
func NewMockEventHub(bufferSize int) *MockEventHub {
	return &MockEventHub{
		Events:     make(chan interface{}, bufferSize),
		dispatcher: dispatcher.New("mock://eventhub"),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *MockEventHub) record(call string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.calls = append(h.calls, call)
}

// Build records the subscription scope
func (h *MockEventHub) Build(identity fab.IdentityContext, seek fab.SeekRange) error {
	h.record("build")
	if h.BuildErr != nil {
		return h.BuildErr
	}
	h.mutex.Lock()
	h.identity = identity
	h.seek = seek
	h.mutex.Unlock()
	return nil
}

// RegisterBlockListener registers a listener with the hub's dispatcher
func (h *MockEventHub) RegisterBlockListener(listener fab.BlockListener, opts fab.SubscriptionOpts) (fab.Registration, error) {
	h.record("register")
	reg, err := h.dispatcher.Register(listener, opts)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Connect starts dispatching posted events
func (h *MockEventHub) Connect(ctx reqContext.Context) error {
	h.record("connect")
	if h.ConnectErr != nil {
		return h.ConnectErr
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.connected {
		return errors.New("already connected")
	}
	h.connected = true
	go h.deliver()
	return nil
}

func (h *MockEventHub) deliver() {
	defer close(h.done)
	for {
		select {
		case <-h.stop:
			return
		case event := <-h.Events:
			var n int
			switch e := event.(type) {
			case *cb.Block:
				n = h.dispatcher.DispatchBlock(e)
			case error:
				n = h.dispatcher.DispatchError(e)
			}
			h.mutex.Lock()
			h.notified = append(h.notified, n)
			h.mutex.Unlock()
		}
	}
}

// Disconnect stops dispatching and drops every registration
func (h *MockEventHub) Disconnect() {
	h.record("disconnect")
	h.stopOnce.Do(func() {
		close(h.stop)
		h.mutex.Lock()
		connected := h.connected
		h.mutex.Unlock()
		if connected {
			<-h.done
		}
		h.dispatcher.Clear()
	})
}

// Calls returns the hub methods invoked so far, in order
func (h *MockEventHub) Calls() []string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]string(nil), h.calls...)
}

// Notified returns, per dispatched event, how many listeners received it
func (h *MockEventHub) Notified() []int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]int(nil), h.notified...)
}

// Scope returns the identity and range passed to Build
func (h *MockEventHub) Scope() (fab.IdentityContext, fab.SeekRange) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.identity, h.seek
}

// NumRegistrations returns the number of active listeners
func (h *MockEventHub) NumRegistrations() int {
	return h.dispatcher.NumRegistrations()
}
