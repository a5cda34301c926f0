package param

// Dispatcher routes parameter change notifications to handlers by ID.
// Notifications for IDs without a handler are dropped.
//
// Handlers are registered during setup; Notify only reads the table and is
// safe to call from any goroutine once setup is done.
type Dispatcher struct {
	handlers map[ID]func(value float64)
}

// NewDispatcher creates an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[ID]func(float64))}
}

// Handle registers fn for id, replacing any previous handler.
func (d *Dispatcher) Handle(id ID, fn func(value float64)) {
	d.handlers[id] = fn
}

// Notify delivers value to the handler for id and reports whether one ran.
func (d *Dispatcher) Notify(id ID, value float64) bool {
	fn, ok := d.handlers[id]
	if !ok {
		return false
	}
	fn(value)
	return true
}

// NotifyName resolves name through the registry and dispatches by ID.
// Unknown names are ignored.
func (d *Dispatcher) NotifyName(r *Registry, name string, value float64) bool {
	p := r.ByName(name)
	if p == nil {
		return false
	}
	return d.Notify(p.ID, value)
}
