package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/report"
)

type pane int

const (
	paneEditor pane = iota
	paneResults
)

const (
	msgEmptySource     = "Please enter some code before submitting."
	msgGenerationError = "Error during model inference. Please try again."
	msgReviewComplete  = "Code Review Complete!"
	msgSyntaxOK        = "No syntax errors found."
)

type model struct {
	ctx    context.Context
	cfg    *config.Config
	styles styles

	reviewer  core.Reviewer
	cleanup   func()
	validator core.SyntaxValidator
	fixer     core.ErrorCorrector

	// UI Components
	editor  textarea.Model
	results viewport.Model
	spinner spinner.Model

	focus    pane
	busy     bool
	status   string
	markdown string
}

func initialModel(ctx context.Context, cfg *config.Config, theme ThemeName, validator core.SyntaxValidator, fixer core.ErrorCorrector) *model {
	styles := GetTheme(theme)

	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Enter your %s code here...", cfg.AI.Language)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(styles.focusBorder)

	vp := viewport.New(80, 12)

	return &model{
		ctx:       ctx,
		cfg:       cfg,
		styles:    styles,
		validator: validator,
		fixer:     fixer,
		editor:    ta,
		results:   vp,
		spinner:   sp,
		busy:      true,
		status:    styles.inactive.Render("Connecting to " + cfg.AI.LLMProvider + "..."),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, initializeReviewerCmd(m.ctx, m.cfg), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reviewerInitializedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = m.styles.error.Render("Reviewer unavailable: "+msg.err.Error()) +
				m.styles.inactive.Render(" (ctrl+k still checks syntax)")
			return m, nil
		}
		m.reviewer = msg.reviewer
		m.cleanup = msg.cleanup
		m.status = m.styles.success.Render(fmt.Sprintf("Ready: %s (%s)", m.cfg.AI.ModelName(), m.cfg.AI.LLMProvider))
		return m, nil

	case reviewDoneMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, core.ErrEmptySource) {
				m.status = m.styles.warning.Render(msgEmptySource)
			} else {
				m.status = m.styles.error.Render(msgGenerationError) + " " + m.styles.inactive.Render(msg.err.Error())
			}
			return m, nil
		}
		if msg.submission.Failed() {
			m.status = m.styles.error.Render(report.TitleSyntaxError + ": " + msg.submission.SyntaxError.Message)
		} else {
			m.status = m.styles.success.Render(msgReviewComplete)
		}
		return m, m.showMarkdown(report.Markdown(msg.submission))

	case checkDoneMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.status = m.styles.error.Render("Syntax check failed: " + msg.err.Error())
			return m, nil
		case msg.syntaxErr == nil:
			m.status = m.styles.success.Render(msgSyntaxOK)
			m.markdown = ""
			m.results.SetContent("")
			return m, nil
		}
		m.status = m.styles.error.Render(report.TitleSyntaxError + ": " + msg.syntaxErr.Message)
		sub := &core.Submission{
			Language:    m.validator.Language(),
			SyntaxError: msg.syntaxErr,
			Correction:  msg.correction,
		}
		return m, m.showMarkdown(report.Markdown(sub))

	case renderedMsg:
		if msg.err != nil {
			m.results.SetContent(m.markdown)
		} else {
			m.results.SetContent(msg.content)
		}
		m.results.GotoTop()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		m.toggleFocus()
		return m, nil
	case tea.KeyCtrlS:
		return m, m.submitReview()
	case tea.KeyCtrlK:
		return m, m.submitCheck()
	case tea.KeyCtrlL:
		m.editor.Reset()
		m.markdown = ""
		m.results.SetContent("")
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m *model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == paneEditor {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *model) toggleFocus() {
	if m.focus == paneEditor {
		m.focus = paneResults
		m.editor.Blur()
		return
	}
	m.focus = paneEditor
	m.editor.Focus()
}

func (m *model) submitReview() tea.Cmd {
	if m.busy {
		return nil
	}
	if m.reviewer == nil {
		m.status = m.styles.error.Render("Reviewer is not available.")
		return nil
	}
	code := m.editor.Value()
	if strings.TrimSpace(code) == "" {
		m.status = m.styles.warning.Render(msgEmptySource)
		return nil
	}

	m.busy = true
	m.status = m.styles.inactive.Render("Reviewing...")
	return tea.Batch(m.spinner.Tick, reviewCmd(m.ctx, m.reviewer, code))
}

func (m *model) submitCheck() tea.Cmd {
	if m.busy {
		return nil
	}
	code := m.editor.Value()
	if strings.TrimSpace(code) == "" {
		m.status = m.styles.warning.Render(msgEmptySource)
		return nil
	}

	m.busy = true
	m.status = m.styles.inactive.Render("Checking syntax...")
	return tea.Batch(m.spinner.Tick, checkCmd(m.ctx, m.validator, m.fixer, code))
}

func (m *model) showMarkdown(md string) tea.Cmd {
	m.markdown = md
	m.results.SetContent(md)
	return renderCmd(md)
}

func (m *model) resize(width, height int) {
	inner := max(width-6, 20)
	available := max(height-8, 8)
	editorHeight := available / 2

	m.editor.SetWidth(inner)
	m.editor.SetHeight(editorHeight)
	m.results.Width = inner
	m.results.Height = available - editorHeight
}

func (m *model) View() string {
	editorStyle, resultsStyle := m.styles.editor, m.styles.results
	if m.focus == paneEditor {
		editorStyle = editorStyle.BorderForeground(m.styles.focusBorder)
	} else {
		resultsStyle = resultsStyle.BorderForeground(m.styles.focusBorder)
	}

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}

	help := strings.Join([]string{
		m.styles.key.Render("ctrl+s") + " review",
		m.styles.key.Render("ctrl+k") + " check syntax",
		m.styles.key.Render("tab") + " switch pane",
		m.styles.key.Render("ctrl+l") + " clear",
		m.styles.key.Render("ctrl+c") + " quit",
	}, m.styles.inactive.Render(" │ "))

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.header.Render(m.cfg.AI.Language+" Code Reviewer"),
			editorStyle.Render(m.editor.View()),
			resultsStyle.Render(m.results.View()),
			status,
			m.styles.footer.Render(help),
		),
	)
}
