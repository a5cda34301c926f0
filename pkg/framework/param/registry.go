package param

// Registry holds a processor's parameters in declaration order. It is
// filled while the processor is constructed and only read afterwards, so
// lookups take no lock and are safe from the audio thread.
type Registry struct {
	list []*Parameter
	byID map[ID]int
}

// NewRegistry creates a registry holding params.
func NewRegistry(params ...*Parameter) *Registry {
	r := &Registry{byID: make(map[ID]int, len(params))}
	r.Add(params...)
	return r
}

// Add appends parameters. A parameter whose ID is already taken is skipped.
// Add must not run concurrently with lookups.
func (r *Registry) Add(params ...*Parameter) {
	for _, p := range params {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = len(r.list)
		r.list = append(r.list, p)
	}
}

// Get returns the parameter with id, or nil.
func (r *Registry) Get(id ID) *Parameter {
	if i, ok := r.byID[id]; ok {
		return r.list[i]
	}
	return nil
}

// IndexOf returns the declaration index of id.
func (r *Registry) IndexOf(id ID) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

// ByName is Get for toolkits that report parameters by name.
func (r *Registry) ByName(name string) *Parameter {
	for _, p := range r.list {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// GetByIndex returns the index-th parameter in declaration order, or nil.
func (r *Registry) GetByIndex(index int32) *Parameter {
	if index < 0 || int(index) >= len(r.list) {
		return nil
	}
	return r.list[index]
}

func (r *Registry) Count() int32 {
	return int32(len(r.list))
}

// All returns a copy of the parameter list.
func (r *Registry) All() []*Parameter {
	return append([]*Parameter(nil), r.list...)
}
