// Package explore implements the interactive conversation browser.
//
// Navigation is an explicit stack of frames over overview, conversation and
// message views. "Next message" advances an index on the current frame;
// nothing here recurses, so depth is bounded no matter the input.
package explore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hweber/raglog/internal/conversation"
	"github.com/hweber/raglog/internal/render"
)

type level int

const (
	levelOverview level = iota
	levelConversation
	levelMessage
)

type frame struct {
	level level
	conv  conversation.Conversation
	msg   int // 0-based message index, levelMessage only
}

// Explorer drives the menu loop over one reconstructed set.
type Explorer struct {
	set *conversation.Set
	r   *render.Renderer
	in  *bufio.Scanner
	out io.Writer
}

// New returns an Explorer reading commands from in and writing to out.
func New(set *conversation.Set, r *render.Renderer, in io.Reader, out io.Writer) *Explorer {
	return &Explorer{set: set, r: r, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user quits or input ends.
func (e *Explorer) Run() {
	stack := []frame{{level: levelOverview}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		switch top.level {
		case levelOverview:
			fmt.Fprint(e.out, e.r.Overview(e.set))
			choice, ok := e.prompt("Select conversation (number) or 'q' to quit: ")
			if !ok || choice == "q" {
				return
			}
			if c, ok := e.pickConversation(choice); ok {
				stack = append(stack, frame{level: levelConversation, conv: c})
			} else {
				fmt.Fprintln(e.out, "Invalid selection.")
			}

		case levelConversation:
			fmt.Fprint(e.out, e.r.Detail(top.conv))
			choice, ok := e.prompt("Select message (number), 'b' for back: ")
			if !ok {
				return
			}
			if choice == "b" {
				stack = stack[:len(stack)-1]
				continue
			}
			if i, ok := pickIndex(choice, len(top.conv.Messages)); ok {
				stack = append(stack, frame{level: levelMessage, conv: top.conv, msg: i})
			} else {
				fmt.Fprintln(e.out, "Invalid selection.")
			}

		case levelMessage:
			if done := e.messageView(top); done {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// messageView shows one message and handles its options. Returns true when
// the frame should be popped.
func (e *Explorer) messageView(f *frame) bool {
	msg := f.conv.Messages[f.msg]
	fmt.Fprint(e.out, e.r.MessageContext(msg))

	hasNext := f.msg < len(f.conv.Messages)-1

	var opts []string
	if len(msg.Documents) > 0 {
		opts = append(opts, "document (number)")
	}
	if hasNext {
		opts = append(opts, "'n' for next message")
	}
	opts = append(opts, "'b' for back")

	if len(msg.Documents) == 0 && !hasNext {
		e.prompt("Press enter to go back... ")
		return true
	}

	choice, ok := e.prompt(strings.Join(opts, ", ") + ": ")
	if !ok {
		return true
	}

	switch {
	case choice == "b":
		return true
	case choice == "n" && hasNext:
		f.msg++
		return false
	default:
		if i, ok := pickIndex(choice, len(msg.Documents)); ok {
			fmt.Fprint(e.out, e.r.Document(msg.Documents[i]))
			e.prompt("Press enter to go back... ")
		} else {
			fmt.Fprintln(e.out, "Invalid selection.")
		}
		return false
	}
}

func (e *Explorer) prompt(text string) (string, bool) {
	fmt.Fprint(e.out, "\n"+text)
	if !e.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(e.in.Text())), true
}

func (e *Explorer) pickConversation(choice string) (conversation.Conversation, bool) {
	convs := e.set.List()
	i, ok := pickIndex(choice, len(convs))
	if !ok {
		return conversation.Conversation{}, false
	}
	return convs[i], true
}

// pickIndex converts a 1-based menu choice into a 0-based index.
func pickIndex(choice string, n int) (int, bool) {
	v, err := strconv.Atoi(choice)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
