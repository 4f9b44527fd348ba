// Package admin describes which entities the admin surface manages and how.
package admin

import "fmt"

// Registry holds the views mounted under /admin. It is built once at startup
// and handed to the HTTP layer.
type Registry struct {
	views map[string]*View
	order []string
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

// Register adds views in display order. Endpoints must be unique.
func (r *Registry) Register(views ...*View) error {
	for _, v := range views {
		if v.Endpoint == "" || v.New == nil {
			return fmt.Errorf("view %q: endpoint and constructor are required", v.Name)
		}
		if _, dup := r.views[v.Endpoint]; dup {
			return fmt.Errorf("view endpoint %q already registered", v.Endpoint)
		}
		if v.Permission == nil {
			return fmt.Errorf("view %q: permission policy is required", v.Name)
		}
		r.views[v.Endpoint] = v
		r.order = append(r.order, v.Endpoint)
	}
	return nil
}

// Views returns the registered views in registration order.
func (r *Registry) Views() []*View {
	out := make([]*View, 0, len(r.order))
	for _, ep := range r.order {
		out = append(out, r.views[ep])
	}
	return out
}

func (r *Registry) Lookup(endpoint string) (*View, bool) {
	v, ok := r.views[endpoint]
	return v, ok
}
