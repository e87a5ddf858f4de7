package eventloop

// eventPump decouples a backend's callback goroutine (OutputAdded,
// ViewMapped, KeyInput, ...) from Loop.drain: Send always returns
// quickly, queuing the event in a growable circular buffer if drain
// isn't ready to receive yet, so a backend's event-delivery goroutine
// is never blocked behind the core finishing its current tick.
//
// Unlike a plain buffered channel, the buffer grows on demand instead
// of needing a fixed capacity up front — but growth is capped at
// maxQueueDepth backendEvents. A backend that floods events faster
// than the core can ever drain (a misbehaving client, or a storm of
// pointer motion) should eventually lose events rather than grow this
// process's memory without bound; once the cap is hit, Send's queue
// drops the oldest pending event to make room for the new one.
type eventPump struct {
	in      chan backendEvent
	out     chan backendEvent
	release chan struct{}
}

const maxQueueDepth = 4096

// newEventPump starts the pump's internal goroutine and returns it.
// Call Release to stop pumping events.
func newEventPump() eventPump {
	p := eventPump{
		in:      make(chan backendEvent),
		out:     make(chan backendEvent),
		release: make(chan struct{}),
	}
	go p.run()
	return p
}

// Events returns the event channel.
func (p *eventPump) Events() <-chan backendEvent {
	return p.out
}

// Send queues event for delivery, buffering it internally if drain is
// not currently receiving.
func (p *eventPump) Send(event backendEvent) {
	select {
	case p.in <- event:
	case <-p.release:
	}
}

// Release stops the pump. Pending events may or may not be delivered.
func (p *eventPump) Release() {
	close(p.release)
}

func (p *eventPump) run() {
	const initialSize = 16
	i, j, buf, mask := 0, 0, make([]backendEvent, initialSize), initialSize-1

	for {
		maybeOut := p.out
		if i == j {
			maybeOut = nil
		}
		select {
		case maybeOut <- buf[i&mask]:
			buf[i&mask] = nil
			i++
		case e := <-p.in:
			if j-i >= maxQueueDepth {
				buf[i&mask] = nil
				i++
			}
			if i+len(buf) == j {
				b := make([]backendEvent, 2*len(buf))
				n := copy(b, buf[j&mask:])
				copy(b[n:], buf[:j&mask])
				i, j = 0, len(buf)
				buf, mask = b, len(b)-1
			}
			buf[j&mask] = e
			j++
		case <-p.release:
			return
		}
	}
}
