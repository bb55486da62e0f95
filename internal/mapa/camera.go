package mapa

// CameraQueue collects the rendering effects of one transition and plays them in a fixed order:
// polylines, then one camera move, then popups. When both are queued, FitBounds wins over FlyTo,
// so framing a fresh route is never undone by the move to the suggested station.
type CameraQueue struct {
	lines  []DrawPolyline
	fit    *FitBounds
	fly    *FlyTo
	popups []OpenPopup
}

// Push queues e. Effects that do not touch the map are ignored.
func (q *CameraQueue) Push(e Effect) {
	switch e := e.(type) {
	case DrawPolyline:
		q.lines = append(q.lines, e)
	case FitBounds:
		q.fit = &e
	case FlyTo:
		q.fly = &e
	case OpenPopup:
		q.popups = append(q.popups, e)
	}
}

func (q *CameraQueue) Len() int {
	n := len(q.lines) + len(q.popups)
	if q.fit != nil || q.fly != nil {
		n++
	}
	return n
}

// Flush renders the queued effects and empties the queue.
func (q *CameraQueue) Flush(r Renderer) {
	for _, l := range q.lines {
		r.DrawPolyline(l.Points)
	}
	switch {
	case q.fit != nil:
		r.FitBounds(q.fit.Bounds, q.fit.Padding)
	case q.fly != nil:
		r.FlyTo(q.fly.Center, q.fly.Zoom)
	}
	for _, p := range q.popups {
		r.OpenPopup(p.Marker)
	}
	*q = CameraQueue{}
}
