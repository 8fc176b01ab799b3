// Package prompt asks the operator which fields to enhance when the CLI runs
// interactively. The survey-backed Driver can be swapped for a stub in tests.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-editorbind/pkg/binder"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// SelectConfig configures a multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Defaults []int // indices into Options
	Help     string
	PageSize int
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts the terminal.
type Driver interface {
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewSurveyDriver returns the terminal driver.
func NewSurveyDriver() Driver {
	return surveyDriver{}
}

type surveyDriver struct{}

func (surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	question := &survey.MultiSelect{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		question.PageSize = cfg.PageSize
	}
	if len(cfg.Defaults) > 0 {
		question.Default = defaultsFromIndices(cfg.Options, cfg.Defaults)
	}
	if err := survey.AskOne(question, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return indicesOf(cfg.Options, out), nil
}

func (surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	question := &survey.Confirm{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(question, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// PickFields asks which of present to bind. Every field starts selected;
// the returned ids keep table order. No fields present means no question.
func PickFields(ctx context.Context, driver Driver, present []binder.Descriptor) ([]string, error) {
	if len(present) == 0 {
		return nil, nil
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}

	options := make([]string, len(present))
	defaults := make([]int, len(present))
	for i, d := range present {
		options[i] = describe(d)
		defaults[i] = i
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Fields to enhance",
		Options:  options,
		Defaults: defaults,
		Help:     "Deselect fields that should stay plain textareas.",
		PageSize: len(options),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(present) {
			ids = append(ids, present[idx].ID)
		}
	}
	return ids, nil
}

// ConfirmOverwrite asks before an existing output file is replaced. A
// declined prompt returns ErrAborted.
func ConfirmOverwrite(ctx context.Context, driver Driver, path string) error {
	if driver == nil {
		return errors.New("prompt: driver is required")
	}
	ok, err := driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %s?", path),
		Help:    "The enhanced page replaces the file contents.",
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func describe(d binder.Descriptor) string {
	label := fmt.Sprintf("%s (%s)", d.ID, d.Mode)
	if d.ReadOnly {
		label += " read-only"
	}
	return label
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
