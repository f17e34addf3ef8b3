package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

// RunTimer starts the pomodoro TUI for the active profile. Each completed
// work phase logs one focus session through the service; breaks log
// nothing. Quitting mid-phase simply stops the ticks.
func RunTimer(ctx context.Context, svc *engine.Service, out io.Writer) error {
	_, rec, err := svc.CurrentRecord(ctx)
	if err != nil {
		return err
	}
	m := newTimerModel(ctx, svc, rec.Settings)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err = p.Run()
	return err
}

type phase int

const (
	phaseWork phase = iota
	phaseShortBreak
	phaseLongBreak
)

// longBreakEvery is the number of completed work phases per long break.
const longBreakEvery = 4

func (p phase) label() string {
	switch p {
	case phaseWork:
		return "Focus"
	case phaseShortBreak:
		return "Short break"
	default:
		return "Long break"
	}
}

type timerModel struct {
	ctx context.Context
	svc *engine.Service

	settings  engine.Settings
	phase     phase
	remaining time.Duration
	sessions  int // completed work phases
	running   bool

	width   int
	lastLog string
	err     error
}

type tickMsg time.Time

type sessionLoggedMsg struct {
	res *engine.LogResult
	err error
}

func newTimerModel(ctx context.Context, svc *engine.Service, settings engine.Settings) timerModel {
	return timerModel{
		ctx:       ctx,
		svc:       svc,
		settings:  settings,
		phase:     phaseWork,
		remaining: time.Duration(settings.PomodoroMinutes) * time.Minute,
		running:   true,
		lastLog:   "Timer started.",
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m timerModel) Init() tea.Cmd {
	return tick()
}

func (m timerModel) logSessionCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteFocusSession(m.ctx, minutes)
		return sessionLoggedMsg{res: res, err: err}
	}
}

func (m timerModel) phaseDuration(p phase) time.Duration {
	switch p {
	case phaseWork:
		return time.Duration(m.settings.PomodoroMinutes) * time.Minute
	case phaseShortBreak:
		return time.Duration(m.settings.ShortBreakMinutes) * time.Minute
	default:
		return time.Duration(m.settings.LongBreakMinutes) * time.Minute
	}
}

// advance moves to the next phase and reports whether a work phase just
// finished.
func (m *timerModel) advance() bool {
	workDone := m.phase == phaseWork
	if workDone {
		m.sessions++
		if m.sessions%longBreakEvery == 0 {
			m.phase = phaseLongBreak
		} else {
			m.phase = phaseShortBreak
		}
	} else {
		m.phase = phaseWork
	}
	m.remaining = m.phaseDuration(m.phase)
	return workDone
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.running {
			return m, tick()
		}
		m.remaining -= time.Second
		if m.remaining > 0 {
			return m, tick()
		}
		workMinutes := m.settings.PomodoroMinutes
		if m.advance() {
			m.lastLog = "Focus phase complete, logging…"
			return m, tea.Batch(tick(), m.logSessionCmd(workMinutes))
		}
		m.lastLog = "Break over. Back to it."
		return m, tick()
	case sessionLoggedMsg:
		if msg.err != nil {
			// Logging failed but the countdown keeps going; the session can
			// be logged manually.
			m.err = msg.err
			m.lastLog = "Could not log session: " + msg.err.Error()
			return m, nil
		}
		m.err = nil
		line := fmt.Sprintf("Logged focus session: +%d pts (streak %d)", msg.res.Entry.Points, msg.res.Streak)
		if msg.res.LevelUp {
			line += " " + ui.BadgeLevelUp
		}
		m.lastLog = line
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "p":
			m.running = !m.running
			if m.running {
				m.lastLog = "Resumed."
			} else {
				m.lastLog = "Paused."
			}
			return m, nil
		case "s":
			workMinutes := m.settings.PomodoroMinutes
			if m.advance() {
				m.lastLog = "Skipped to break, logging session…"
				return m, m.logSessionCmd(workMinutes)
			}
			m.lastLog = "Skipped break."
			return m, nil
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	mins := int(m.remaining.Minutes())
	secs := int(m.remaining.Seconds()) % 60

	title := ui.Heading(ui.IconTomato, m.phase.label())
	clock := ui.Gold.Render(fmt.Sprintf("%02d:%02d", mins, secs))
	state := ui.Good.Render("running")
	if !m.running {
		state = ui.Warn.Render("paused")
	}

	body := title + "\n\n" +
		clock + "  " + state + "\n" +
		ui.LabelValue("Sessions", m.sessions) + "\n\n" +
		ui.Muted.Render("space: pause/resume · s: skip · q: quit") + "\n" +
		ui.Muted.Render(m.lastLog)

	return ui.Panel.Render(body) + "\n"
}
