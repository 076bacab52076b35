package pathfind

import "fmt"

// EndpointPolicy decides what a search does when the start or goal cell is a
// wall.
type EndpointPolicy int

const (
	// EndpointAllow never checks the wall flag of the start cell; only
	// neighbour candidates are filtered. A walled start is still expanded,
	// while a walled goal is only reached when it is also the start.
	EndpointAllow EndpointPolicy = iota

	// EndpointReject fails the search with ErrEndpointWall before it starts.
	EndpointReject
)

// String returns the policy name used in configuration files.
func (p EndpointPolicy) String() string {
	switch p {
	case EndpointAllow:
		return "allow"
	case EndpointReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseEndpointPolicy converts a configuration value into a policy.
// An empty string selects EndpointAllow.
func ParseEndpointPolicy(s string) (EndpointPolicy, error) {
	switch s {
	case "", "allow":
		return EndpointAllow, nil
	case "reject":
		return EndpointReject, nil
	default:
		return EndpointAllow, fmt.Errorf("pathfind: unknown endpoint policy %q (want allow or reject)", s)
	}
}

// Options defines parameters for a search.
type Options struct {
	Endpoints EndpointPolicy
	AutoReset bool // Reset the grid's search state before searching
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithEndpointPolicy sets how walled start/goal cells are treated.
func WithEndpointPolicy(p EndpointPolicy) Option {
	return func(o *Options) { o.Endpoints = p }
}

// WithAutoReset makes every search call Grid.ResetSearchState first.
func WithAutoReset() Option {
	return func(o *Options) { o.AutoReset = true }
}
