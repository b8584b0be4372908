package provision

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
)

var ErrUserQuit = errors.New("provisioning cancelled")

// Run shows the form until the operator leaves it and returns the generated
// snippet. It returns [ErrUserQuit] when the form is left before a snippet
// was generated.
func Run(g *Generator, opts Options) (string, error) {
	model := newModel(g, opts, credentials.StoreInKeyring, clipboard.WriteAll)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(Model)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if !result.done {
		return "", ErrUserQuit
	}
	return result.snippet, nil
}
