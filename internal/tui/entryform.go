package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

const (
	fieldDate = iota
	fieldHours
	fieldDescription
	fieldRate
	fieldClient
	fieldCount
)

// EntryFormResult carries the validated input out of the form.
type EntryFormResult struct {
	Input    tracker.EntryInput
	Canceled bool
}

// EntryForm is the interactive add-entry screen: date, hours, description,
// rate, and a client selector. Picking a client overrides the manual rate.
type EntryForm struct {
	inputs    []textinput.Model
	focus     int
	clients   []tracker.Client
	clientIdx int // 0 = no client, i+1 = clients[i]
	errMsg    string
	result    *EntryFormResult
}

func NewEntryForm(clients []tracker.Client, defaultRate decimal.Decimal) *EntryForm {
	inputs := make([]textinput.Model, fieldClient)

	date := textinput.New()
	date.Placeholder = "today"
	date.SetValue(time.Now().Format("2006-01-02"))
	date.CharLimit = 30
	date.Width = 20
	date.Focus()
	inputs[fieldDate] = date

	hours := textinput.New()
	hours.Placeholder = "2.5"
	hours.CharLimit = 8
	hours.Width = 20
	inputs[fieldHours] = hours

	description := textinput.New()
	description.Placeholder = "What did you work on?"
	description.CharLimit = 200
	description.Width = 50
	inputs[fieldDescription] = description

	rate := textinput.New()
	rate.Placeholder = defaultRate.String()
	rate.CharLimit = 10
	rate.Width = 20
	inputs[fieldRate] = rate

	return &EntryForm{
		inputs:  inputs,
		clients: clients,
	}
}

func (f *EntryForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *EntryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			f.result = &EntryFormResult{Canceled: true}
			return f, tea.Quit
		case "enter":
			if f.focus < fieldCount-1 {
				f.setFocus(f.focus + 1)
				return f, nil
			}
			return f.submit()
		case "tab", "down":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		case "left":
			if f.focus == fieldClient && f.clientIdx > 0 {
				f.clientIdx--
				return f, nil
			}
		case "right":
			if f.focus == fieldClient && f.clientIdx < len(f.clients) {
				f.clientIdx++
				return f, nil
			}
		}
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *EntryForm) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *EntryForm) submit() (tea.Model, tea.Cmd) {
	input, err := f.parse()
	if err != nil {
		f.errMsg = err.Error()
		return f, nil
	}
	f.result = &EntryFormResult{Input: input}
	return f, tea.Quit
}

func (f *EntryForm) parse() (tracker.EntryInput, error) {
	var input tracker.EntryInput

	date, err := ParseEntryDate(f.inputs[fieldDate].Value())
	if err != nil {
		return input, err
	}
	input.Date = date

	hours, err := decimal.NewFromString(strings.TrimSpace(f.inputs[fieldHours].Value()))
	if err != nil || !hours.IsPositive() {
		return input, fmt.Errorf("hours must be a positive number")
	}
	input.Hours = hours

	input.Description = strings.TrimSpace(f.inputs[fieldDescription].Value())
	if input.Description == "" {
		return input, fmt.Errorf("description is required")
	}

	if f.clientIdx > 0 {
		id := f.clients[f.clientIdx-1].ID
		input.ClientID = &id
	} else if raw := strings.TrimSpace(f.inputs[fieldRate].Value()); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() {
			return input, fmt.Errorf("rate must be a non-negative number")
		}
		input.Rate = rate
	}

	return input, nil
}

func (f *EntryForm) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("contractor — Log Hours"))
	b.WriteString("\n")

	labels := []string{"Date", "Hours", "Description", "Rate"}
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("%-12s %s\n", label+":", f.inputs[i].View()))
	}

	b.WriteString(fmt.Sprintf("%-12s %s\n", "Client:", f.clientView()))

	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("Tab: next field • ←/→: pick client • Enter: submit • Esc: cancel"))

	return b.String()
}

func (f *EntryForm) clientView() string {
	names := make([]string, 0, len(f.clients)+1)
	names = append(names, "No Client")
	for _, c := range f.clients {
		names = append(names, c.Name)
	}

	var parts []string
	for i, name := range names {
		switch {
		case i == f.clientIdx && f.focus == fieldClient:
			parts = append(parts, selectedStyle.Render("["+name+"]"))
		case i == f.clientIdx:
			parts = append(parts, "["+name+"]")
		default:
			parts = append(parts, dimStyle.Render(name))
		}
	}
	return strings.Join(parts, " ")
}

// Result returns nil while the form is still running.
func (f *EntryForm) Result() *EntryFormResult {
	return f.result
}

// ParseEntryDate accepts yyyy-mm-dd as well as natural phrases such as
// "yesterday" or "last friday".
func ParseEntryDate(raw string) (tracker.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return tracker.NewDate(time.Now()), nil
	}
	if date, err := tracker.ParseDate(raw); err == nil {
		return date, nil
	}
	t, err := naturaldate.Parse(raw, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return tracker.Date{}, fmt.Errorf("unrecognized date %q", raw)
	}
	return tracker.NewDate(t), nil
}
