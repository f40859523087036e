package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// The debugger is embedder-side tooling: it drives the core exclusively
// through the public surface (Step, State, bus loads) and draws what it
// sees. Space or j executes one instruction, q quits.

type model struct {
	cpu    *Cpu
	offset uint16
	prevPC uint16
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.ProgramCounter
			m.cpu.Step()
		}
	}
	return m, nil
}

// peek reads a bus byte without caring whether the address is mapped;
// holes render as the open-bus 0xff, same as the CPU would see.
func (m model) peek(addr uint16) byte {
	value, _ := m.cpu.Bus.Load(addr)
	return value
}

// renderRow renders 16 consecutive bus bytes as one line, highlighting
// the current PC.
func (m model) renderRow(start uint16) string {
	if start%16 != 0 {
		panic("row start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.peek(start + i)
		if start+i == m.cpu.ProgramCounter {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) memoryTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	rows := []string{header}

	// zero page head, the top of the stack page, and the code around
	// the program counter
	starts := []uint16{
		0x0000, 0x0010, 0x0020, 0x0030,
		0x01f0,
	}
	pc := m.cpu.ProgramCounter &^ 0x000f
	for i := uint16(0); i < 5; i++ {
		starts = append(starts, pc+16*i)
	}

	for _, start := range starts {
		rows = append(rows, m.renderRow(start))
	}
	return strings.Join(rows, "\n")
}

func (m model) registers() string {
	st := m.cpu.State()

	var flags string
	for _, f := range []byte{
		FlagNegative,
		FlagOverflow,
		FlagUnused,
		FlagBreak,
		FlagDecimal,
		FlagInterrupt,
		FlagZero,
		FlagCarry,
	} {
		if m.cpu.flag(f) {
			flags += "/ "
		} else {
			flags += "  "
		}
	}

	return fmt.Sprintf(`
 PC: %04x (%04x)
  A: %02x
  X: %02x
  Y: %02x
 SP: %02x
cyc: %d
N V 1 B D I Z C
`,
		st.PC,
		m.prevPC,
		st.A,
		st.X,
		st.Y,
		st.SP,
		st.Cycles,
	) + flags
}

func (m model) View() string {
	next := Lookup(m.peek(m.cpu.ProgramCounter))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.memoryTable(),
			m.registers(),
		),
		"",
		fmt.Sprintf("next: %s %s", next.Op, next.Mode),
		spew.Sdump(next),
	)
}

// Debug stores a program image on the bus at offset, points the program
// counter at it and starts an interactive step-through TUI. The bus
// must already have something writable attached over the image range.
func (c *Cpu) Debug(program []byte, offset uint16) error {
	for i, b := range program {
		if !c.Bus.Store(offset+uint16(i), b) {
			return fmt.Errorf("cpu: no writable unit at %#04x", offset+uint16(i))
		}
	}
	c.ProgramCounter = offset

	_, err := tea.NewProgram(model{cpu: c, offset: offset}).Run()
	return err
}
