package wireframe

// RoleAssistant is the transcript role used for every state machine message.
const RoleAssistant = "assistant"

// Notifier receives user-facing messages about state machine outcomes.
// It is write-only from the manager's point of view.
type Notifier interface {
	AddMessage(role, text string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(role, text string)

func (f NotifierFunc) AddMessage(role, text string) { f(role, text) }

type discardNotifier struct{}

func (discardNotifier) AddMessage(string, string) {}
