package record

import (
	"fmt"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// EnvironmentSchema describes an environment variable and its value.
var EnvironmentSchema = Declare("environment",
	DataField("variable", Insensitive),
	DataField("value"),
)

// Environment is a record holding one environment variable.
type Environment struct {
	*Record
}

// NewEnvironment builds an environment record.
func NewEnvironment(label, variable, value string) (*Environment, error) {
	r, err := EnvironmentSchema.NewOrdered(label, variable, value)
	if err != nil {
		return nil, err
	}
	return &Environment{Record: r}, nil
}

// AsEnvironment views a generic record as an environment record.
func AsEnvironment(r *Record) (*Environment, error) {
	if r.schema != EnvironmentSchema {
		return nil, exitcode.Wrap(exitcode.Schema,
			fmt.Errorf("record %q is a %s record, not an environment record", r.label, r.Type()))
	}
	return &Environment{Record: r}, nil
}

func (e *Environment) Variable() string {
	return e.field("variable")
}

func (e *Environment) Value() string {
	return e.field("value")
}

// Assignment renders a sh-style assignment. Values are not quoted or escaped.
func (e *Environment) Assignment() string {
	return e.Variable() + "=" + e.Value()
}

// Export renders a sh-style export line.
func (e *Environment) Export() string {
	return "export " + e.Assignment()
}
