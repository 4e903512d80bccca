// Package scrollfollow asks the host viewport to auto-scroll while a drag
// hovers near one of its edges.
package scrollfollow

// Direction is the requested scroll direction along the list axis.
type Direction int

const (
	None Direction = iota
	Backward
	Forward
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "none"
	}
}

// Follower turns a pointer position near a viewport edge into auto-scroll
// requests. Request and Cancel are host callbacks; either may be nil, in
// which case the follower stays silent. Stray updates arriving after the
// owning drag ended are expected and dropped, not reported.
type Follower struct {
	// Zone is how far from either edge, in the same units as positions,
	// auto-scroll kicks in.
	Zone float64
	// MaxVelocity is the scroll speed requested when the pointer sits
	// exactly on an edge. Velocity ramps linearly from 0 at the zone
	// boundary.
	MaxVelocity float64

	request func(Direction, float64)
	cancel  func()
	active  bool
}

// New creates a follower with the given edge zone and velocity ceiling.
func New(zone, maxVelocity float64, request func(Direction, float64), cancel func()) *Follower {
	return &Follower{
		Zone:        zone,
		MaxVelocity: maxVelocity,
		request:     request,
		cancel:      cancel,
	}
}

// Evaluate computes the auto-scroll a pointer position calls for, without
// side effects. pos is the pointer position, viewStart and viewExtent
// describe the visible window, all along the list axis.
func (f *Follower) Evaluate(pos, viewStart, viewExtent float64) (Direction, float64) {
	if f.Zone <= 0 || viewExtent <= 0 {
		return None, 0
	}
	viewEnd := viewStart + viewExtent

	if d := pos - viewStart; d < f.Zone {
		return Backward, f.velocity(d)
	}
	if d := viewEnd - pos; d < f.Zone {
		return Forward, f.velocity(d)
	}
	return None, 0
}

// Update evaluates pos and notifies the host: a request when inside an edge
// zone, a single cancel when leaving it.
func (f *Follower) Update(pos, viewStart, viewExtent float64) {
	dir, vel := f.Evaluate(pos, viewStart, viewExtent)
	if dir == None {
		f.Stop()
		return
	}
	f.active = true
	if f.request != nil {
		f.request(dir, vel)
	}
}

// Stop cancels an ongoing auto-scroll, if any.
func (f *Follower) Stop() {
	if !f.active {
		return
	}
	f.active = false
	if f.cancel != nil {
		f.cancel()
	}
}

// Active reports whether an auto-scroll request is outstanding.
func (f *Follower) Active() bool {
	return f.active
}

// velocity ramps linearly with edge penetration: 0 at the zone boundary,
// MaxVelocity at the edge itself and beyond.
func (f *Follower) velocity(distToEdge float64) float64 {
	if distToEdge < 0 {
		distToEdge = 0
	}
	v := f.MaxVelocity * (f.Zone - distToEdge) / f.Zone
	if v > f.MaxVelocity {
		v = f.MaxVelocity
	}
	return v
}
