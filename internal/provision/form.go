package provision

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldPassphrase = iota
	fieldConfirm
	fieldAppPassword
	fieldEmailPassword
)

var labels = []string{
	"Chave mestra        ",
	"Confirme a chave    ",
	"Senha da aplicação  ",
	"Senha do e-mail     ",
}

type generatedMsg struct {
	result  Result
	snippet string
	stored  bool
	err     error
}

type copiedMsg struct {
	err error
}

// Options tune the form.
type Options struct {
	// Keyring also saves the passphrase in the OS keyring under User.
	Keyring bool
	User    string
}

// Model is the Bubble Tea model of the provisioning form. It collects the
// passphrase twice and both passwords, then shows the generated snippet.
type Model struct {
	generator *Generator
	opts      Options
	storeKey  func(user, passphrase string) error
	copyText  func(text string) error

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string

	snippet string
	done    bool
}

func newModel(g *Generator, opts Options, storeKey func(string, string) error, copyText func(string) error) Model {
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 256
		inputs[i].EchoMode = textinput.EchoPassword
		inputs[i].EchoCharacter = '*'
	}
	inputs[fieldPassphrase].Focus()

	return Model{
		generator: g,
		opts:      opts,
		storeKey:  storeKey,
		copyText:  copyText,
		inputs:    inputs,
	}
}

// Init implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. While editing, tab and shift+tab move
// between fields and enter generates the snippet. Once generated, c copies
// it and q leaves. ctrl+c always aborts.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.clearInputs()
		m.errMsg = ""
		m.snippet = msg.snippet
		m.done = true
		if msg.stored {
			m.status = "Chave mestra salva no keyring do sistema."
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "não foi possível copiar: " + msg.err.Error()
		} else {
			m.status = "Trecho copiado para a área de transferência."
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.cancel) {
			m.clearInputs()
			return m, tea.Quit
		}
		if m.done {
			return m.updateDone(msg)
		}
		return m.updateEditing(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.quit), key.Matches(msg, keys.enter):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.clearInputs()
		return m, tea.Quit
	case key.Matches(msg, keys.tab):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, keys.backtab):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, keys.enter):
		if m.submitting {
			return m, nil
		}
		req, err := m.request()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdGenerate(req)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = (i%n + n) % n
	return m.inputs[m.focus].Focus()
}

func (m Model) request() (Request, error) {
	pass := m.inputs[fieldPassphrase].Value()
	if pass == "" {
		return Request{}, ErrEmptyPassphrase
	}
	if pass != m.inputs[fieldConfirm].Value() {
		return Request{}, ErrPassphraseMismatch
	}
	req := Request{
		Passphrase:    pass,
		AppPassword:   m.inputs[fieldAppPassword].Value(),
		EmailPassword: m.inputs[fieldEmailPassword].Value(),
	}
	if req.AppPassword == "" || req.EmailPassword == "" {
		return Request{}, ErrEmptyPassword
	}
	return req, nil
}

// clearInputs drops every typed secret from the form.
func (m *Model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

func (m Model) cmdGenerate(req Request) tea.Cmd {
	g := m.generator
	opts := m.opts
	storeKey := m.storeKey

	return func() tea.Msg {
		res, err := g.Generate(req)
		if err != nil {
			return generatedMsg{err: err}
		}
		snippet, err := res.Snippet()
		if err != nil {
			return generatedMsg{err: err}
		}

		var stored bool
		if opts.Keyring {
			if err = storeKey(opts.User, req.Passphrase); err != nil {
				return generatedMsg{err: err}
			}
			stored = true
		}
		return generatedMsg{result: res, snippet: snippet, stored: stored}
	}
}

func (m Model) cmdCopy() tea.Cmd {
	text := m.snippet
	copyText := m.copyText
	return func() tea.Msg {
		return copiedMsg{err: copyText(text)}
	}
}

// View implements [tea.Model].
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gerador de configuração criptografada"))
	b.WriteString("\n" + divider + "\n\n")

	if m.done {
		b.WriteString("Copie o trecho abaixo para o config.ini:\n\n")
		b.WriteString(snippetStyle.Render(strings.TrimRight(m.snippet, "\n")))
		b.WriteString("\n")
	} else {
		for i, in := range m.inputs {
			b.WriteString(labels[i])
			b.WriteString("│ [")
			b.WriteString(in.View())
			b.WriteString("]\n")
		}
		if m.submitting {
			b.WriteString("\n[Gerando...]\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Erro: "+m.errMsg) + "\n")
	}

	b.WriteString("\n" + divider + "\n")
	if m.done {
		b.WriteString(helpStyle.Render("c: copiar │ q: sair"))
	} else {
		b.WriteString(helpStyle.Render("tab: próximo campo │ enter: gerar │ esc: sair"))
	}
	return appStyle.Render(b.String())
}
