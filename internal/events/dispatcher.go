package events

import (
	"context"
	"sync"
)

// NoticeHandler handles a published notice.
type NoticeHandler func(context.Context, Notice) error

// Dispatcher interface allows notice publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, notice Notice) error
	Subscribe(noticeType NoticeType, handler NoticeHandler)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[NoticeType][]NoticeHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[NoticeType][]NoticeHandler),
	}
}

// Publish synchronously invokes handlers for the given notice.
func (d *inMemoryDispatcher) Publish(ctx context.Context, notice Notice) error {
	d.mu.RLock()
	handlers := append([]NoticeHandler{}, d.listeners[notice.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		// handlers are independent; one failing must not starve the rest
		_ = handler(ctx, notice)
	}
	return nil
}

// Subscribe registers a handler for the given notice type.
func (d *inMemoryDispatcher) Subscribe(noticeType NoticeType, handler NoticeHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[noticeType] = append(d.listeners[noticeType], handler)
}

// Buffer retains published notices per session until the dashboard drains
// them. It subscribes itself to every notice type it should retain.
type Buffer struct {
	mu      sync.Mutex
	pending map[string][]Notice
}

// NewBuffer creates a buffer and hooks it into the dispatcher.
func NewBuffer(d Dispatcher) *Buffer {
	b := &Buffer{pending: make(map[string][]Notice)}
	d.Subscribe(NoticeLoadFailed, b.retain)
	d.Subscribe(NoticeToggleFailed, b.retain)
	return b
}

func (b *Buffer) retain(_ context.Context, notice Notice) error {
	if notice.SessionID == "" {
		return nil
	}
	b.mu.Lock()
	b.pending[notice.SessionID] = append(b.pending[notice.SessionID], notice)
	b.mu.Unlock()
	return nil
}

// Drain returns and clears the pending notices for a session.
func (b *Buffer) Drain(sessionID string) []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	notices := b.pending[sessionID]
	delete(b.pending, sessionID)
	return notices
}

// Forget drops any pending notices for a session, used on logout.
func (b *Buffer) Forget(sessionID string) {
	b.mu.Lock()
	delete(b.pending, sessionID)
	b.mu.Unlock()
}
