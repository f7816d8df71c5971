package orbit

// MaxDepth is the deepest parent chain allowed: sun → planet → moon.
const MaxDepth = 2

// Registry owns the bodies of a scene in registration order. Parents must
// be registered before their children, which keeps the parent graph a tree.
type Registry struct {
	bodies []*Body
	index  map[string]int
	depth  []int
}

func NewRegistry() *Registry {
	return &Registry{
		bodies: make([]*Body, 0),
		index:  make(map[string]int),
		depth:  make([]int, 0),
	}
}

// Register validates b and appends a copy of it. Registering an ID that
// already exists fails with ErrDuplicateBody and leaves the registry
// unchanged.
func (r *Registry) Register(b Body) error {
	if err := b.validate(); err != nil {
		return err
	}
	if _, ok := r.index[b.ID]; ok {
		return &ConfigError{Body: b.ID, Field: "name", Err: ErrDuplicateBody}
	}

	depth := 0
	if !b.IsRoot() {
		pi, ok := r.index[b.ParentID]
		if !ok {
			return &ConfigError{Body: b.ID, Field: "parent", Err: ErrUnknownParent}
		}
		depth = r.depth[pi] + 1
		if depth > MaxDepth {
			return &ConfigError{Body: b.ID, Field: "parent", Err: ErrTooDeep}
		}
	}

	b.Angle = Wrap(b.Angle)
	b.Rotation = Wrap(b.Rotation)
	b.place()

	r.index[b.ID] = len(r.bodies)
	r.bodies = append(r.bodies, &b)
	r.depth = append(r.depth, depth)
	return nil
}

// All returns the registered bodies in insertion order. The pointers are
// live: they observe every subsequent Step. Writing a field through them
// skips the checks Register made; read-only callers should use Lookup.
func (r *Registry) All() []*Body {
	out := make([]*Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Get returns the live body for id. See All for the mutation caveat.
func (r *Registry) Get(id string) (*Body, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.bodies[i], true
}

// Lookup returns a copy of the body for id.
func (r *Registry) Lookup(id string) (Body, bool) {
	b, ok := r.Get(id)
	if !ok {
		return Body{}, false
	}
	return *b, true
}

func (r *Registry) Len() int { return len(r.bodies) }

// Depth returns the number of ancestors of id, or -1 if it is unknown.
func (r *Registry) Depth(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return r.depth[i]
}

// Children returns the direct children of id in insertion order.
func (r *Registry) Children(id string) []*Body {
	var out []*Body
	for _, b := range r.bodies {
		if b.ParentID == id {
			out = append(out, b)
		}
	}
	return out
}
