package pipeline

import "sync"

// Mailbox is a single-slot, latest-frame-wins hand-off between the
// framer and the classification worker. Put overwrites an unconsumed
// frame (the stale frame's Mat is released and counted as a drop), so
// a slow inference never causes unbounded queuing.
type Mailbox struct {
	mutex  sync.Mutex
	cond   *sync.Cond
	frame  *FrameData
	drops  uint64
	closed bool
}

func NewMailbox() *Mailbox {
	box := &Mailbox{}
	box.cond = sync.NewCond(&box.mutex)
	return box
}

// Put publishes a frame without blocking. The mailbox takes ownership
// of frame.Mat; if a previous frame is still unconsumed it is closed
// and counted as dropped.
func (box *Mailbox) Put(frame FrameData) {
	box.mutex.Lock()
	defer box.mutex.Unlock()

	if box.closed {
		frame.Mat.Close()
		return
	}

	if box.frame != nil {
		box.frame.Mat.Close()
		box.drops++
	}

	box.frame = &frame
	box.cond.Signal()
}

// Take blocks until a frame is available or the mailbox is closed.
// The caller takes ownership of the returned frame's Mat. The second
// return is false after Close.
func (box *Mailbox) Take() (FrameData, bool) {
	box.mutex.Lock()
	defer box.mutex.Unlock()

	for box.frame == nil && !box.closed {
		box.cond.Wait()
	}

	if box.frame == nil {
		return FrameData{}, false
	}

	frame := *box.frame
	box.frame = nil
	return frame, true
}

// Close releases any pending frame and wakes a blocked Take.
// Idempotent.
func (box *Mailbox) Close() {
	box.mutex.Lock()
	defer box.mutex.Unlock()

	if box.closed {
		return
	}
	box.closed = true

	if box.frame != nil {
		box.frame.Mat.Close()
		box.frame = nil
	}

	box.cond.Broadcast()
}

// Drops reports how many unconsumed frames have been overwritten.
func (box *Mailbox) Drops() uint64 {
	box.mutex.Lock()
	defer box.mutex.Unlock()
	return box.drops
}
