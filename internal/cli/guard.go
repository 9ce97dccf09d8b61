package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/output"
)

// Guard runs fn and turns any error or panic it produces into a single fatal
// message and a non-zero exit. exitcode.ErrDone exits successfully instead.
func (c *Context) Guard(fn func() error) {
	var err error
	var stack []byte
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if c.exited {
				panic(r)
			}
			stack = debug.Stack()
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}()
		err = fn()
	}()

	if err == nil {
		return
	}
	c.terminate(err, stack)
}

func (c *Context) terminate(err error, stack []byte) {
	if errors.Is(err, exitcode.ErrDone) {
		c.exitWith(exitcode.OK)
		return
	}
	if c.Debug() {
		c.trace(err, stack)
	}
	c.Die(Sentence(err.Error()))
}

func (c *Context) trace(err error, stack []byte) {
	for depth, e := 0, err; e != nil; depth, e = depth+1, errors.Unwrap(e) {
		c.log.Debug(fmt.Sprintf("#%d %T: %v", depth, e, e))
	}
	if stack == nil {
		stack = debug.Stack()
	}
	for _, line := range strings.Split(strings.TrimSpace(string(stack)), "\n") {
		c.log.Debug(line)
	}
}

// Info prints an informational message when --verbose is set.
func (c *Context) Info(msg string) {
	if !c.Verbose() {
		return
	}
	c.log.Info(msg)
}

// Warn prints a warning unless --no-warn is set.
func (c *Context) Warn(msg string) {
	if c.warningsSuppressed() {
		return
	}
	c.log.Warn(msg)
}

// Bye prints an informational message and exits successfully.
func (c *Context) Bye(msg string) {
	c.Info(msg)
	c.exitWith(exitcode.OK)
}

// Die prints a fatal message, whatever the verbosity flags say, and exits
// unsuccessfully.
func (c *Context) Die(msg string) {
	c.log.Fatal(msg)
	c.exitWith(exitcode.Failure)
}

func (c *Context) exitWith(code int) {
	c.exited = true
	c.exit(code)
}

var (
	dieOutput io.Writer = os.Stderr
	dieExit             = os.Exit
)

// Die prints a fatal message and exits, for failures that happen before any
// Context exists.
func Die(msg string) {
	output.NewLogger(dieOutput).Fatal(msg)
	dieExit(exitcode.Failure)
}

// Sentence folds msg onto a single line, capitalizes it and terminates it
// with a period unless it already ends in punctuation.
func Sentence(msg string) string {
	var lines []string
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	msg = strings.Join(lines, " ")
	if msg == "" {
		return "An unknown error occurred."
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	switch msg[len(msg)-1] {
	case '.', '!', '?':
		return msg
	}
	return msg + "."
}
