package display

// Rotator cycles through a fixed list of messages.
type Rotator struct {
	messages []string
	index    int
}

func NewRotator(messages []string) *Rotator {
	return &Rotator{messages: append([]string(nil), messages...)}
}

// Advance moves to the next message, wrapping at the end. No-op when empty.
func (r *Rotator) Advance() {
	if len(r.messages) == 0 {
		return
	}
	r.index = (r.index + 1) % len(r.messages)
}

func (r *Rotator) Index() int { return r.index }

func (r *Rotator) Current() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[r.index]
}

func (r *Rotator) Messages() []string {
	return append([]string(nil), r.messages...)
}

// Reset replaces the list and starts over from the first message.
func (r *Rotator) Reset(messages []string) {
	r.messages = append([]string(nil), messages...)
	r.index = 0
}
