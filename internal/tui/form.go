package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/foodboard/internal/food"
)

const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Price", "Image URL"}

// foodForm is the text input behind both dialogs.
type foodForm struct {
	values [fieldCount]string
	focus  int
}

func newForm() foodForm { return foodForm{} }

func formFor(f food.Food) foodForm {
	var ff foodForm
	ff.values[fieldName] = f.Name
	ff.values[fieldDescription] = f.Description
	ff.values[fieldPrice] = strconv.FormatFloat(f.Price, 'f', -1, 64)
	ff.values[fieldImage] = f.Image
	return ff
}

// handleKey edits the focused field. It reports false for keys it leaves to
// the caller (enter, esc).
func (f *foodForm) handleKey(m tea.KeyMsg) bool {
	switch m.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + fieldCount - 1) % fieldCount
	case tea.KeyBackspace, tea.KeyCtrlH:
		v := []rune(f.values[f.focus])
		if len(v) > 0 {
			f.values[f.focus] = string(v[:len(v)-1])
		}
	case tea.KeyCtrlU:
		f.values[f.focus] = ""
	case tea.KeySpace:
		f.values[f.focus] += " "
	case tea.KeyRunes:
		f.values[f.focus] += string(m.Runes)
	default:
		return false
	}
	return true
}

func (f foodForm) price() (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(f.values[fieldPrice], ",", "."))
	if raw == "" {
		return 0, nil
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || p < 0 {
		return 0, fmt.Errorf("price must be a non-negative number")
	}
	return p, nil
}

func (f foodForm) name() (string, error) {
	name := strings.TrimSpace(f.values[fieldName])
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}

// draft reads the add dialog. Availability is decided by the dashboard.
func (f foodForm) draft() (food.Draft, error) {
	name, err := f.name()
	if err != nil {
		return food.Draft{}, err
	}
	price, err := f.price()
	if err != nil {
		return food.Draft{}, err
	}
	return food.Draft{
		Name:        name,
		Description: strings.TrimSpace(f.values[fieldDescription]),
		Price:       price,
		Image:       strings.TrimSpace(f.values[fieldImage]),
	}, nil
}

// patch reads the edit dialog; every field it shows is submitted.
func (f foodForm) patch() (food.Patch, error) {
	d, err := f.draft()
	if err != nil {
		return food.Patch{}, err
	}
	return food.Patch{
		Name:        &d.Name,
		Description: &d.Description,
		Price:       &d.Price,
		Image:       &d.Image,
	}, nil
}

func (f foodForm) render() string {
	var b strings.Builder
	for i, label := range fieldLabels {
		marker := " "
		cursor := ""
		if i == f.focus {
			marker = "▶"
			cursor = "_"
		}
		fmt.Fprintf(&b, "%s %-12s %s%s\n", marker, label+":", f.values[i], cursor)
	}
	return b.String()
}
