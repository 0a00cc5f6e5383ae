// Package notify carries one-way toast notifications from workflows to
// the UI shell. Pushes are fire-and-forget: no acknowledgment, no
// return value, and a user with no connected client simply misses the
// toast.
package notify

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

type Notifier interface {
	Push(userID int64, t Toast)
}
