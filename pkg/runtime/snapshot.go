package runtime

import "sort"

// InstanceSnapshot is a point-in-time view of one instance, taken on
// the loop. The devtools inspector serves these as JSON.
type InstanceSnapshot struct {
	ID           uint64              `json:"id"`
	Component    string              `json:"component"`
	Key          string              `json:"key,omitempty"`
	Branch       string              `json:"branch,omitempty"`
	Mounted      bool                `json:"mounted"`
	Connected    bool                `json:"connected"`
	PendingAsync int                 `json:"pendingAsync,omitempty"`
	Props        map[string]any      `json:"props,omitempty"`
	Children     []*InstanceSnapshot `json:"children,omitempty"`
}

// Snapshot captures the live instance tree. Safe from any goroutine;
// returns nil after Detach.
func (rt *Runtime) Snapshot() *InstanceSnapshot {
	var snap *InstanceSnapshot
	rt.loop.RunSync(func() {
		if rt.root != nil {
			snap = rt.snapshot(rt.root)
		}
	})
	return snap
}

func (rt *Runtime) snapshot(in *Instance) *InstanceSnapshot {
	s := &InstanceSnapshot{
		ID:        in.id,
		Component: in.fnName,
		Key:       in.key,
		Branch:    in.branch,
		Mounted:   in.mounted,
		Connected: in.anchor != nil && rt.backend.IsConnected(in.anchor),
		Props:     in.props.Snapshot(),
	}
	if in.boundary != nil {
		s.PendingAsync = in.boundary.pending()
	}
	kids := make([]*Instance, 0, len(in.children))
	for _, child := range in.children {
		kids = append(kids, child)
	}
	sort.Slice(kids, func(i, j int) bool { return kids[i].id < kids[j].id })
	for _, child := range kids {
		s.Children = append(s.Children, rt.snapshot(child))
	}
	return s
}
