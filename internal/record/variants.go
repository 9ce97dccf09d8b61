package record

import (
	"fmt"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

var (
	// LoginSchema describes a username and password pair.
	LoginSchema = Declare("login",
		DataField("username", Insensitive),
		DataField("password"),
	)

	// SnippetSchema describes a code snippet with a description.
	SnippetSchema = Declare("snippet",
		DataField("code"),
		DataField("description", Insensitive),
	)

	// TodoSchema describes a todo item. Nothing in it is secret.
	TodoSchema = Declare("todo",
		DataField("todo", Insensitive),
		DataField("status", Insensitive),
		DataField("start", Insensitive),
		DataField("stop", Insensitive),
	)

	// UnstructuredSchema holds free-form text.
	UnstructuredSchema = Declare("unstructured",
		DataField("text"),
	)
)

// Login is a record holding a set of credentials.
type Login struct {
	*Record
}

// AsLogin views a generic record as a login record.
func AsLogin(r *Record) (*Login, error) {
	if r.schema != LoginSchema {
		return nil, exitcode.Wrap(exitcode.Schema,
			fmt.Errorf("record %q is a %s record, not a login record", r.label, r.Type()))
	}
	return &Login{Record: r}, nil
}

func (l *Login) Username() string {
	return l.field("username")
}

func (l *Login) Password() string {
	return l.field("password")
}
