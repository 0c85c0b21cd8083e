package chat

import "github.com/zhouzirui/querydesk/backend/internal/model/chat"

// View renders controller state. Implementations must not call back into the
// Controller from these methods; they run while the controller holds its lock.
type View interface {
	RenderMessage(msg chat.Message)
	RenderWelcome()
	ClearTranscript()

	// RenderHistoryEntry inserts an entry at the top of the history list.
	RenderHistoryEntry(title, sessionID string)
	RenameHistoryEntry(title, sessionID string)
	RemoveHistoryEntry(sessionID string)

	ShowTypingIndicator()
	HideTypingIndicator()

	// PromptRename asks the user for a new title. The answer, if any, comes
	// back through Controller.RenameSession.
	PromptRename(sessionID, currentTitle string)
}

// NopView discards every render command.
type NopView struct{}

func (NopView) RenderMessage(chat.Message) {}
func (NopView) RenderWelcome() {}
func (NopView) ClearTranscript() {}
func (NopView) RenderHistoryEntry(string, string) {}
func (NopView) RenameHistoryEntry(string, string) {}
func (NopView) RemoveHistoryEntry(string) {}
func (NopView) ShowTypingIndicator() {}
func (NopView) HideTypingIndicator() {}
func (NopView) PromptRename(string, string) {}
