package engine

// Listener identifies one subscription so it can be removed later.
type Listener uint64

type listener[F any] struct {
	id Listener
	fn F
}

// Event is a multi-cast event: every listener runs, in subscription order.
// Listeners added or removed while the event is firing take effect on the
// next Invoke.
type Event struct {
	listeners []listener[func()]
	next      Listener
}

func (e *Event) AddListener(callback func()) Listener {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[func()]{e.next, callback})
	return e.next
}

func (e *Event) RemoveListener(id Listener) {
	e.listeners = without(e.listeners, id)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event) Invoke() {
	for _, l := range e.listeners {
		l.fn()
	}
}

func (e *Event) GetListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[func(T)]
	next      Listener
}

func (e *EventWithArg[T]) AddListener(callback func(T)) Listener {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[func(T)]{e.next, callback})
	return e.next
}

func (e *EventWithArg[T]) RemoveListener(id Listener) {
	e.listeners = without(e.listeners, id)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// without copies so an Invoke already ranging over the old slice is not
// disturbed.
func without[F any](ls []listener[F], id Listener) []listener[F] {
	out := make([]listener[F], 0, len(ls))
	for _, l := range ls {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}
