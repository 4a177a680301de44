package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"stride/internal/activity"
)

// Wrapper for survey functions to allow mocking in tests
var askOneFunc = survey.AskOne

// pickMode asks the user to choose an activity from the catalog.
func pickMode() (string, error) {
	var options []string
	labels := make(map[string]string)
	for _, m := range activity.Catalog() {
		label := fmt.Sprintf("%s (goal %g %s)", m.Title(), m.Goal, m.Unit())
		options = append(options, label)
		labels[label] = m.Name
	}

	var choice string
	prompt := &survey.Select{
		Message: "Choose an activity:",
		Options: options,
	}
	if err := askOneFunc(prompt, &choice); err != nil {
		return "", fmt.Errorf("mode selection cancelled: %w", err)
	}

	name, ok := labels[choice]
	if !ok {
		return "", fmt.Errorf("%w: %q", activity.ErrUnknownMode, choice)
	}
	return name, nil
}
