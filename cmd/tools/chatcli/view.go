package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	"github.com/zhouzirui/querydesk/backend/internal/model/chat"
)

type historyEntry struct {
	id    string
	title string
}

type styles struct {
	heading   lipgloss.Style
	prompt    lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	clock     lipgloss.Style
	body      lipgloss.Style
	typing    lipgloss.Style
	notice    lipgloss.Style
	active    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA")),
		prompt:    r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		user:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399")),
		assistant: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")),
		clock:     r.NewStyle().Faint(true),
		body:      r.NewStyle().PaddingLeft(2),
		typing:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280")),
		notice:    r.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
		active:    r.NewStyle().Bold(true),
	}
}

// termView 把控制器的渲染指令输出到终端，同时维护侧边栏列表供命令按序号引用。
type termView struct {
	mu      sync.Mutex
	out     io.Writer
	profile assistant.Profile
	styles  styles

	entries  []historyEntry // 最新的在前
	renaming string         // 等待输入新标题的会话
}

func newTermView(out io.Writer, profile assistant.Profile, renderer *lipgloss.Renderer) *termView {
	return &termView{
		out:     out,
		profile: profile,
		styles:  newStyles(renderer),
	}
}

func (v *termView) RenderMessage(msg chat.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	who := v.styles.user.Render("You")
	if msg.Sender == chat.SenderAssistant {
		who = v.styles.assistant.Render(v.profile.Name)
	}
	fmt.Fprintf(v.out, "%s %s\n%s\n\n", who, v.styles.clock.Render(msg.Clock()), v.styles.body.Render(msg.Text))
}

func (v *termView) RenderWelcome() {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "%s\n%s\n\n", v.styles.heading.Render(v.profile.Heading), v.styles.prompt.Render(v.profile.Prompt))
}

func (v *termView) ClearTranscript() {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.out, v.styles.clock.Render(strings.Repeat("─", 40)))
}

func (v *termView) RenderHistoryEntry(title, sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries = append([]historyEntry{{id: sessionID, title: title}}, v.entries...)
	fmt.Fprintln(v.out, v.styles.notice.Render("+ "+title))
}

func (v *termView) RenameHistoryEntry(title, sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.entries {
		if v.entries[i].id == sessionID {
			v.entries[i].title = title
			fmt.Fprintln(v.out, v.styles.notice.Render("renamed to "+title))
			return
		}
	}
}

func (v *termView) RemoveHistoryEntry(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.entries {
		if v.entries[i].id == sessionID {
			fmt.Fprintln(v.out, v.styles.notice.Render("- "+v.entries[i].title))
			v.entries = append(v.entries[:i], v.entries[i+1:]...)
			return
		}
	}
}

func (v *termView) ShowTypingIndicator() {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.out, v.styles.typing.Render(v.profile.Name+" is typing..."))
}

// HideTypingIndicator 终端里没有可撤回的行，回复本身就是结束标志。
func (v *termView) HideTypingIndicator() {}

func (v *termView) PromptRename(sessionID, currentTitle string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.renaming = sessionID
	fmt.Fprintf(v.out, "%s\n", v.styles.notice.Render(fmt.Sprintf("New title for %q (empty line cancels):", currentTitle)))
}

// takeRename 返回并清除等待重命名的会话。
func (v *termView) takeRename() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.renaming
	v.renaming = ""
	return id, id != ""
}

// entryAt 按列表序号（从 1 开始）查找会话。
func (v *termView) entryAt(index int) (historyEntry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 1 || index > len(v.entries) {
		return historyEntry{}, false
	}
	return v.entries[index-1], true
}

func (v *termView) printHistory(activeID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.entries) == 0 {
		fmt.Fprintln(v.out, v.styles.prompt.Render("no chats yet"))
		return
	}
	for i, entry := range v.entries {
		line := fmt.Sprintf("%2d. %s", i+1, entry.title)
		if entry.id == activeID {
			line = v.styles.active.Render(line + " *")
		}
		fmt.Fprintln(v.out, line)
	}
}

func (v *termView) notice(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.out, v.styles.notice.Render(fmt.Sprintf(format, args...)))
}
