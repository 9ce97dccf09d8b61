// Package wizard collects record fields and confirmations from the terminal.
package wizard

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/kbsecret/kbsecret/internal/record"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C.
var ErrCancelled = terminal.InterruptErr

// ValidateNonEmpty ensures a required value is provided.
func ValidateNonEmpty(value interface{}) error {
	if strings.TrimSpace(fmt.Sprintf("%v", value)) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Prompter abstracts user interaction for testing.
type Prompter interface {
	Input(label, defaultValue string, validator survey.Validator) (string, error)
	Password(label string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter returns a survey-based prompter. Options are passed to
// every question, e.g. survey.WithStdio.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func (p *SurveyPrompter) Input(label, defaultValue string, validator survey.Validator) (string, error) {
	var value string
	opts := p.opts
	if validator != nil {
		opts = append(append([]survey.AskOpt{}, p.opts...), survey.WithValidator(validator))
	}
	err := survey.AskOne(&survey.Input{
		Message: label,
		Default: defaultValue,
	}, &value, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *SurveyPrompter) Password(label string) (string, error) {
	var value string
	if err := survey.AskOne(&survey.Password{Message: label}, &value, p.opts...); err != nil {
		return "", err
	}
	return value, nil
}

func (p *SurveyPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	var value bool
	err := survey.AskOne(&survey.Confirm{
		Message: label,
		Default: defaultValue,
	}, &value, p.opts...)
	if err != nil {
		return false, err
	}
	return value, nil
}

// PromptFields asks for every field of schema in declared order, except
// those already present in preset. Sensitive fields are read without echo
// unless echo is set.
func PromptFields(p Prompter, schema *record.Schema, echo bool, preset map[string]string) ([]string, error) {
	fields := schema.Fields()
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		if v, ok := preset[f.Name]; ok {
			values = append(values, v)
			continue
		}
		label := strings.ToUpper(f.Name[:1]) + f.Name[1:] + "?"

		var (
			v   string
			err error
		)
		if f.Sensitive && !echo {
			v, err = p.Password(label)
		} else {
			v, err = p.Input(label, "", nil)
		}
		if err != nil {
			return nil, fmt.Errorf("prompting for %s: %w", f.Name, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ConfirmRemoval asks before deleting the named records.
func ConfirmRemoval(p Prompter, labels []string) (bool, error) {
	return p.Confirm(fmt.Sprintf("Delete %s?", strings.Join(labels, ", ")), false)
}
