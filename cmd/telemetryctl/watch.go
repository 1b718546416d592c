package main

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ducky64/telemetry/hal/hostserial"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live-updating table of variable values",
	RunE:  runWatch,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// watchRow is one line of the live table: a variable's last known value
// and when it last changed.
type watchRow struct {
	meta      *variableMeta
	value     string
	updatedAt time.Time
}

type frameMsg struct {
	f   *frame
	err error
}

type tickMsg time.Time

// watchModel is the bubbletea model driving the live table, following the
// teacher pack's convention (Thermoquad-heliostat/cmd/tui.go) of a
// serial-read goroutine feeding tea.Msg values through a channel.
type watchModel struct {
	hal      *hostserial.HAL
	dec      *frameDecoder
	registry map[uint8]*variableMeta
	rows     map[uint8]*watchRow
	frames   chan *frame
	errs     chan error
	err      error
	quitting bool
}

func newWatchModel(h *hostserial.HAL) *watchModel {
	return &watchModel{
		hal:      h,
		dec:      &frameDecoder{},
		registry: map[uint8]*variableMeta{},
		rows:     map[uint8]*watchRow{},
		frames:   make(chan *frame, 64),
		errs:     make(chan error, 1),
	}
}

func (m *watchModel) readLoop() {
	for {
		if m.hal.RxAvailable() == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		if f := m.dec.decodeByte(m.hal.ReceiveByte()); f != nil {
			m.frames <- f
		}
	}
}

func (m *watchModel) Init() tea.Cmd {
	go m.readLoop()
	return tea.Batch(m.waitForFrame(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *watchModel) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return frameMsg{f: f}
		case err := <-m.errs:
			return frameMsg{err: err}
		}
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		return m, tick()

	case frameMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.waitForFrame()
		}
		m.applyFrame(msg.f)
		return m, m.waitForFrame()
	}
	return m, nil
}

func (m *watchModel) applyFrame(f *frame) {
	switch f.opcode {
	case opHeader:
		vars, err := parseHeader(f)
		if err != nil {
			m.err = err
			return
		}
		for _, v := range vars {
			m.registry[v.id] = v
			if _, ok := m.rows[v.id]; !ok {
				m.rows[v.id] = &watchRow{meta: v}
			}
		}

	case opData:
		applyDataToRows(f, m.registry, m.rows)
	}
}

// applyDataToRows walks a data frame's payload the same way formatData
// does, but records each value into rows instead of printing it.
func applyDataToRows(f *frame, registry map[uint8]*variableMeta, rows map[uint8]*watchRow) {
	p := f.payload
	i := 0
	for i < len(p) {
		dataID := p[i]
		i++
		if dataID == idTerminator {
			break
		}
		meta, ok := registry[dataID]
		if !ok {
			break
		}
		row, ok := rows[dataID]
		if !ok {
			row = &watchRow{meta: meta}
			rows[dataID] = row
		}

		if meta.dataType == dataTypeNumericArray {
			values := "["
			for e := uint32(0); e < meta.arrayCount; e++ {
				v, n := decodeScalar(meta.subtype, meta.length, p[i:])
				i += n
				if e > 0 {
					values += ", "
				}
				values += v
			}
			values += "]"
			row.value = values
		} else {
			v, n := decodeScalar(meta.subtype, meta.length, p[i:])
			i += n
			row.value = v
		}
		row.updatedAt = time.Now()
	}
}

func (m *watchModel) View() string {
	if m.quitting {
		return ""
	}

	out := headerStyle.Render(fmt.Sprintf("%-20s %-12s %s", "VARIABLE", "VALUE", "UNITS")) + "\n"

	ids := make([]int, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, id := range ids {
		row := m.rows[uint8(id)]
		line := fmt.Sprintf("%-20s %-12s %s", row.meta.displayName, row.value, row.meta.units)
		if time.Since(row.updatedAt) > time.Second {
			out += staleStyle.Render(line) + "\n"
		} else {
			out += valueStyle.Render(line) + "\n"
		}
	}

	if m.err != nil {
		out += "\n" + fmt.Sprintf("error: %v", m.err)
	}
	out += "\n(press q to quit)\n"
	return out
}

func runWatch(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return fmt.Errorf("no serial port given (use --port or set it in ~/.telemetryctl.yaml)")
	}

	h, err := hostserial.Open(portName, baudRate)
	if err != nil {
		return fmt.Errorf("opening %s: %w", portName, err)
	}
	defer h.Close()

	_, err = tea.NewProgram(newWatchModel(h)).Run()
	return err
}
