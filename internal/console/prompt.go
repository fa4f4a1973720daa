package console

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Post-interview menu entries.
const (
	MenuDownload     = "Download interview transcript (JSON)"
	MenuNewInterview = "Start a new interview"
	MenuQuit         = "Quit"
)

// MenuItems is the post-interview menu in display order.
var MenuItems = []string{MenuDownload, MenuNewInterview, MenuQuit}

// ErrAborted is returned when the candidate presses Ctrl-C or Ctrl-D at a prompt.
var ErrAborted = errors.New("input aborted")

// Prompter reads candidate input.
type Prompter interface {
	Ask(label string) (string, error)
	Choose(label string, items []string) (string, error)
}

// Terminal is the promptui backed Prompter.
type Terminal struct{}

func (Terminal) Ask(label string) (string, error) {
	p := promptui.Prompt{Label: label}

	answer, err := p.Run()
	if err != nil {
		return "", translate(err)
	}
	return answer, nil
}

func (Terminal) Choose(label string, items []string) (string, error) {
	s := promptui.Select{Label: label, Items: items}

	_, choice, err := s.Run()
	if err != nil {
		return "", translate(err)
	}
	return choice, nil
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}
