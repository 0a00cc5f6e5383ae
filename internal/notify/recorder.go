package notify

import "sync"

// Recorder is a Notifier that remembers every push. Tests assert on it
// instead of opening websockets.
type Recorder struct {
	mu     sync.Mutex
	pushes []Push
}

type Push struct {
	UserID int64
	Toast  Toast
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Push(userID int64, t Toast) {
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, Push{UserID: userID, Toast: t})
}

// Sent returns a copy of everything pushed so far.
func (r *Recorder) Sent() []Push {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Push, len(r.pushes))
	copy(out, r.pushes)
	return out
}

// Last returns the most recent push, if any.
func (r *Recorder) Last() (Push, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return Push{}, false
	}
	return r.pushes[len(r.pushes)-1], true
}
