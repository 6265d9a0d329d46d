package notify

import "slices"

// Phase is the state of a keyed operation.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseSuccess Phase = "success"
)

// Status is the current state of one key.
type Status struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
}

// ToastKind classifies a toast for styling.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// Toast is one queued transient message.
type Toast struct {
	ID      string    `json:"id"`
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Modal is one open dialog.
type Modal struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// DefaultMaxToasts bounds the toast queue when Options.MaxToasts is unset.
const DefaultMaxToasts = 5

// Options configures a Registry.
type Options struct {
	MaxToasts int
	IDs       IDGenerator
}

// Registry holds transient notification state. Not safe for concurrent use.
type Registry struct {
	statuses  map[string]Status
	toasts    []Toast
	modals    []Modal
	maxToasts int
	ids       IDGenerator
}

// New creates an empty registry.
func New(opts Options) *Registry {
	r := &Registry{maxToasts: opts.MaxToasts, ids: opts.IDs}
	if r.maxToasts <= 0 {
		r.maxToasts = DefaultMaxToasts
	}
	if r.ids == nil {
		r.ids = UUIDv7Generator{}
	}
	r.Reset()
	return r
}

// Reset clears every flag, toast and modal.
func (r *Registry) Reset() {
	r.statuses = make(map[string]Status)
	r.toasts = nil
	r.modals = nil
}

// SetLoading marks key as loading, or returns it to idle.
func (r *Registry) SetLoading(key string, loading bool) {
	if loading {
		r.statuses[key] = Status{Phase: PhaseLoading}
		return
	}
	if r.statuses[key].Phase == PhaseLoading {
		delete(r.statuses, key)
	}
}

// SetError records a failure for key, ending any loading state.
func (r *Registry) SetError(key, message string) {
	r.statuses[key] = Status{Phase: PhaseError, Message: message}
}

// SetSuccess records a success for key, ending any loading state.
func (r *Registry) SetSuccess(key, message string) {
	r.statuses[key] = Status{Phase: PhaseSuccess, Message: message}
}

// Clear returns key to idle.
func (r *Registry) Clear(key string) {
	delete(r.statuses, key)
}

// Status returns the state of key. Unknown keys are idle.
func (r *Registry) Status(key string) Status {
	if s, ok := r.statuses[key]; ok {
		return s
	}
	return Status{Phase: PhaseIdle}
}

// IsLoading reports whether key is loading.
func (r *Registry) IsLoading(key string) bool {
	return r.statuses[key].Phase == PhaseLoading
}

// PushToast queues a toast and returns its ID. When the queue is full the
// oldest toast is dropped.
func (r *Registry) PushToast(kind ToastKind, message string) string {
	t := Toast{ID: r.ids.Generate(), Kind: kind, Message: message}
	r.toasts = append(r.toasts, t)
	if over := len(r.toasts) - r.maxToasts; over > 0 {
		r.toasts = slices.Delete(r.toasts, 0, over)
	}
	return t.ID
}

// DismissToast removes a toast by ID.
func (r *Registry) DismissToast(id string) bool {
	i := slices.IndexFunc(r.toasts, func(t Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	r.toasts = slices.Delete(r.toasts, i, i+1)
	return true
}

// Toasts returns queued toasts, oldest first.
func (r *Registry) Toasts() []Toast {
	return slices.Clone(r.toasts)
}

// OpenModal pushes a modal on top of the stack.
func (r *Registry) OpenModal(name string, payload any) {
	r.modals = append(r.modals, Modal{Name: name, Payload: payload})
}

// CloseModal pops the top modal.
func (r *Registry) CloseModal() (Modal, bool) {
	if len(r.modals) == 0 {
		return Modal{}, false
	}
	top := r.modals[len(r.modals)-1]
	r.modals = r.modals[:len(r.modals)-1]
	return top, true
}

// TopModal returns the modal on top of the stack without removing it.
func (r *Registry) TopModal() (Modal, bool) {
	if len(r.modals) == 0 {
		return Modal{}, false
	}
	return r.modals[len(r.modals)-1], true
}
