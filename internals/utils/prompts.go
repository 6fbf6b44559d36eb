// Package utils contains interactive prompt helpers.
package utils

import (
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

// ErrAborted is returned when the user pressed ctrl+c or ctrl+d
var ErrAborted = errors.New("aborted")

func aborted(err error) error {
	if err == promptui.ErrInterrupt || err == promptui.ErrEOF || err == promptui.ErrAbort {
		return ErrAborted
	}
	return err
}

// SelectPrompt returns the selected item
func SelectPrompt(prompt *promptui.Select) (string, error) {
	_, res, err := prompt.Run()
	if err != nil {
		return "", aborted(err)
	}
	return res, nil
}

// StringPrompt returns the entered text
func StringPrompt(prompt *promptui.Prompt) (string, error) {
	res, err := prompt.Run()
	if err != nil {
		return "", aborted(err)
	}
	return res, nil
}

// BoolPrompt asks a yes/no question. Only ctrl+c is returned as error
func BoolPrompt(prompt *promptui.Prompt) (bool, error) {
	prompt.IsConfirm = true
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case err == promptui.ErrInterrupt:
		return false, ErrAborted
	}
	return false, nil
}
