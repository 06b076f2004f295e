// Package notify implements the completion side effects: an audible tone,
// a desktop notification and fan-out between them. Every implementation
// tolerates a missing capability by doing nothing.
package notify

// Notifier receives completion messages.
type Notifier interface {
	NotifyCompletion(message string)
}

// Func adapts a function to Notifier.
type Func func(message string)

func (fn Func) NotifyCompletion(message string) {
	fn(message)
}

type multi []Notifier

// Multi fans a message out to every non-nil notifier. A panicking
// notifier does not prevent the others from running.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			out = append(out, notifier)
		}
	}
	return out
}

func (notifiers multi) NotifyCompletion(message string) {
	for _, notifier := range notifiers {
		deliver(notifier, message)
	}
}

func deliver(notifier Notifier, message string) {
	defer func() {
		_ = recover()
	}()
	notifier.NotifyCompletion(message)
}
