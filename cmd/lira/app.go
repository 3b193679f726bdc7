package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/avelinek/lira-core/core/conversations"
	"github.com/avelinek/lira-core/core/events"
)

const meterWidth = 20

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	connectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	logStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	settingsStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// eventMsg carries one session event into the UI loop.
type eventMsg struct {
	event events.Event
}

// logMsg carries one system log entry into the UI loop.
type logMsg struct {
	entry conversations.LogEntry
}

// settingsMsg toggles the settings panel from outside the UI loop, e.g. a
// recognized voice command.
type settingsMsg struct {
	open bool
}

type meterTickMsg time.Time

func meterTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return meterTickMsg(t)
	})
}

// transcriptLine is one rendered line of conversation.
type transcriptLine struct {
	speaker string
	text    string
	partial bool
	notice  bool
}

type appModel struct {
	session *session
	config  appConfig

	viewport viewport.Model
	ready    bool
	width    int

	settingsOpen bool
	volume       float64

	lines            []transcriptLine
	userPartial      string
	assistantPartial string
}

func newAppModel(session *session, config appConfig) appModel {
	return appModel{session: session, config: config}
}

func (m appModel) Init() tea.Cmd {
	return meterTick()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.session.shutdown()
			return m, tea.Quit
		case "s":
			m.session.setSettingsOpen(!m.settingsOpen)
			m.settingsOpen = !m.settingsOpen
		case "c":
			go m.session.connect()
		case "d":
			m.session.disconnect()
		case "g":
			go m.session.summarize()
		case "r":
			go m.session.recap()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - 4
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refreshViewport()

	case meterTickMsg:
		m.volume = m.session.volume()
		return m, meterTick()

	case settingsMsg:
		m.settingsOpen = msg.open

	case logMsg:
		m.lines = append(m.lines, transcriptLine{text: msg.entry.Text, notice: true})
		m.refreshViewport()

	case eventMsg:
		m.applyEvent(msg.event)
		m.refreshViewport()
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) applyEvent(event events.Event) {
	switch event := event.(type) {
	case events.SessionOpened:
		m.lines = append(m.lines, transcriptLine{text: "session opened", notice: true})

	case events.SessionClosed:
		m.userPartial = ""
		m.assistantPartial = ""
		m.lines = append(m.lines, transcriptLine{
			text:   fmt.Sprintf("session closed: %s", event.Reason),
			notice: true,
		})

	case events.UserTranscript:
		if event.IsFinal {
			text := strings.TrimSpace(m.userPartial + event.Text)
			m.userPartial = ""
			if text != "" {
				m.lines = append(m.lines, transcriptLine{speaker: "you", text: text})
			}
		} else {
			m.userPartial += event.Text
		}

	case events.AssistantTranscript:
		if event.IsFinal {
			text := strings.TrimSpace(m.assistantPartial + event.Text)
			m.assistantPartial = ""
			if text != "" {
				m.lines = append(m.lines, transcriptLine{speaker: "lira", text: text})
			}
		} else {
			m.assistantPartial += event.Text
		}

	case events.AssistantContent:
		var text strings.Builder
		for _, part := range event.Parts {
			text.WriteString(part.Text)
		}
		if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
			m.lines = append(m.lines, transcriptLine{speaker: "lira", text: trimmed})
		}

	case events.ToolCallAcknowledged:
		m.lines = append(m.lines, transcriptLine{
			text:   fmt.Sprintf("tool call acknowledged: %s", event.Name),
			notice: true,
		})
	}
}

func (m *appModel) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width
	if width < 8 {
		width = 8
	}

	var rendered []string
	for _, line := range m.lines {
		rendered = append(rendered, renderLine(line, width))
	}
	if m.userPartial != "" {
		rendered = append(rendered, renderLine(transcriptLine{
			speaker: "you", text: m.userPartial, partial: true,
		}, width))
	}
	if m.assistantPartial != "" {
		rendered = append(rendered, renderLine(transcriptLine{
			speaker: "lira", text: m.assistantPartial, partial: true,
		}, width))
	}

	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

func renderLine(line transcriptLine, width int) string {
	if line.notice {
		return logStyle.Render(wordwrap.String("· "+line.text, width))
	}

	style := userStyle
	if line.speaker == "lira" {
		style = assistantStyle
	}
	text := line.text
	if line.partial {
		return style.Render(line.speaker+": ") + partialStyle.Render(wordwrap.String(text+"…", width))
	}
	return style.Render(line.speaker+": ") + wordwrap.String(text, width)
}

func (m appModel) View() string {
	if !m.ready {
		return "starting…"
	}

	status := statusStyle.Render(string(m.session.client.State()))
	if m.session.client.IsConnected() {
		status = connectedStyle.Render("open")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("lira "),
		status,
		statusStyle.Render("  "),
		renderMeter(m.volume),
	)

	body := m.viewport.View()
	if m.settingsOpen {
		body = lipgloss.JoinVertical(lipgloss.Left, m.settingsPanel(), body)
	}

	help := helpStyle.Render("c connect · d disconnect · s settings · g summarize · r recap · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m appModel) settingsPanel() string {
	memory := m.session.memory.Snapshot()
	if memory == "" {
		memory = "(empty)"
	}
	return settingsStyle.Render(fmt.Sprintf(
		"model: %s\nvoice: %s\nlocale: %s\nmemory:\n%s",
		m.config.Model, m.config.Voice, m.config.Locale, memory,
	))
}

// renderMeter draws the live playback volume as a fixed-width bar.
func renderMeter(volume float64) string {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	filled := int(volume * meterWidth)
	return statusStyle.Render("[" +
		strings.Repeat("█", filled) +
		strings.Repeat(" ", meterWidth-filled) +
		"]")
}
