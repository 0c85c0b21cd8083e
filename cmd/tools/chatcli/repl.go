package main

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	chatservice "github.com/zhouzirui/querydesk/backend/internal/service/chat"
)

const helpText = `commands:
  /new            start a new chat
  /history        list recent chats
  /switch N       open chat N from /history
  /rename N       rename chat N
  /delete N       delete chat N
  /help           show this help
  /quit           exit
anything else is sent to the assistant`

type lineReader interface {
	Readline() (string, error)
}

type repl struct {
	ctrl *chatservice.Controller
	view *termView
	in   lineReader
}

func newREPL(ctrl *chatservice.Controller, view *termView, in lineReader) *repl {
	return &repl{ctrl: ctrl, view: view, in: in}
}

// run 读取输入直到 EOF、/quit 或在空行上按下 Ctrl+C。
func (r *repl) run() error {
	r.ctrl.StartNewChat()

	for {
		line, err := r.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := r.handle(line); quit {
			return nil
		}
	}
}

// handle 处理一行输入，返回 true 表示退出。
func (r *repl) handle(line string) bool {
	if id, ok := r.view.takeRename(); ok {
		if strings.TrimSpace(line) == "" {
			r.view.notice("rename cancelled")
			return false
		}
		r.ctrl.RenameSession(id, line)
		return false
	}

	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		r.ctrl.SubmitUserMessage(line)
		return false
	}

	name, arg, _ := strings.Cut(trimmed, " ")
	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		r.view.notice("%s", helpText)
	case "/new":
		r.ctrl.StartNewChat()
	case "/history":
		r.view.printHistory(r.ctrl.State().ActiveSessionID)
	case "/switch", "/rename", "/delete":
		entry, ok := r.lookup(arg)
		if !ok {
			r.view.notice("usage: %s N (see /history)", name)
			return false
		}
		switch name {
		case "/switch":
			r.ctrl.SwitchSession(entry.id)
		case "/rename":
			r.ctrl.BeginRename(entry.id)
		case "/delete":
			r.ctrl.DeleteSession(entry.id)
		}
	default:
		r.view.notice("unknown command %s, try /help", name)
	}
	return false
}

func (r *repl) lookup(arg string) (historyEntry, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return historyEntry{}, false
	}
	return r.view.entryAt(index)
}
