package a2a

import "fmt"

// ValidateSendMessageResponse checks that a built message/send success
// response matches the shape A2A orchestrators expect. It is invoked after
// the response is assembled; a failure is logged by the caller for
// debugging but never alters the response actually sent.
func ValidateSendMessageResponse(resp *JSONRPCResponse) error {
	if resp.JSONRPC != "2.0" {
		return fmt.Errorf("jsonrpc must be \"2.0\", got %q", resp.JSONRPC)
	}
	if resp.Error != nil {
		return fmt.Errorf("success response carries an error object")
	}

	task, ok := resp.Result.(*Task)
	if !ok {
		return fmt.Errorf("result must be a Task, got %T", resp.Result)
	}
	if task.Kind != KindTask {
		return fmt.Errorf("task kind must be %q, got %q", KindTask, task.Kind)
	}
	if task.ID == "" {
		return fmt.Errorf("task id is empty")
	}
	if task.Status.State != TaskStateCompleted {
		return fmt.Errorf("task state must be %q, got %q", TaskStateCompleted, task.Status.State)
	}
	if task.Status.Message == nil {
		return fmt.Errorf("task status has no message")
	}
	if len(task.History) != 2 {
		return fmt.Errorf("task history must have 2 entries, got %d", len(task.History))
	}

	for i, msg := range task.History {
		if err := validateMessage(msg); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	if task.History[0].Role != RoleUser {
		return fmt.Errorf("history[0] role must be %q, got %q", RoleUser, task.History[0].Role)
	}
	if task.History[1].Role != RoleAgent {
		return fmt.Errorf("history[1] role must be %q, got %q", RoleAgent, task.History[1].Role)
	}
	return validateMessage(task.Status.Message)
}

func validateMessage(m *Message) error {
	if m.Kind != KindMessage {
		return fmt.Errorf("message kind must be %q, got %q", KindMessage, m.Kind)
	}
	if m.MessageID == "" {
		return fmt.Errorf("messageId is empty")
	}
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("role must be %q or %q, got %q", RoleUser, RoleAgent, m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message has no parts")
	}
	return nil
}
