package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/foodboard/internal/config"
	"github.com/jask/foodboard/internal/food"
	"github.com/jask/foodboard/internal/logging"
	"github.com/jask/foodboard/internal/service"
)

// App is the dashboard model. Remote calls run as commands; their results
// come back as messages and only Update touches the dashboard state.
type App struct {
	ctx      context.Context
	dash     *service.Dashboard
	log      logging.Logger
	currency string

	cursor    int
	status    string
	form      foodForm
	confirm   *food.Food // pending delete
	searching bool
	query     string
	busy      int    // requests in flight
	creating  uint64 // add session with a create in flight
}

func New(ctx context.Context, cfg config.Config, dash *service.Dashboard, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		ctx:      ctx,
		dash:     dash,
		log:      log,
		currency: cfg.UI.CurrencySymbol,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadFoods()
}

func (a *App) loadFoods() tea.Cmd {
	a.busy++
	return func() tea.Msg {
		list, err := a.dash.RequestList(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return foodsLoadedMsg(list)
	}
}

func (a *App) createFood(session uint64, d food.Draft) tea.Cmd {
	a.busy++
	a.creating = session
	return func() tea.Msg {
		created, err := a.dash.RequestCreate(a.ctx, d)
		if err != nil {
			return createFailedMsg{Session: session, err: err}
		}
		return foodCreatedMsg{Session: session, Food: created}
	}
}

func (a *App) updateFood(target food.Food, p food.Patch) tea.Cmd {
	a.busy++
	return func() tea.Msg {
		updated, err := a.dash.RequestUpdate(a.ctx, target, p)
		if err != nil {
			return errMsg{err}
		}
		return foodUpdatedMsg{TargetID: target.ID, Food: updated}
	}
}

func (a *App) deleteFood(id int64) tea.Cmd {
	a.busy++
	return func() tea.Msg {
		if err := a.dash.RequestRemove(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return foodDeletedMsg{ID: id}
	}
}

func (a *App) toggleAvailability(f food.Food) tea.Cmd {
	a.busy++
	return func() tea.Msg {
		updated, err := a.dash.RequestAvailability(a.ctx, f, !f.Available)
		if err != nil {
			return errMsg{err}
		}
		return availabilityMsg{Food: updated}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case foodsLoadedMsg:
		a.done()
		a.dash.ApplyLoaded([]food.Food(m))
		a.status = fmt.Sprintf("%d foods loaded", len(m))
	case foodCreatedMsg:
		a.done()
		a.createDone(m.Session)
		a.dash.ApplyCreated(m.Session, m.Food)
		a.log.Info(a.ctx, "food added", "id", m.Food.ID)
		a.status = fmt.Sprintf("added %s", m.Food.Name)
	case foodUpdatedMsg:
		a.done()
		a.dash.ApplyUpdated(m.TargetID, m.Food)
		a.log.Info(a.ctx, "food updated", "id", m.Food.ID)
		a.status = fmt.Sprintf("saved %s", m.Food.Name)
	case availabilityMsg:
		a.done()
		a.dash.ApplyAvailability(m.Food)
		a.status = fmt.Sprintf("%s is now %s", m.Food.Name, availabilityLabel(m.Food.Available))
	case foodDeletedMsg:
		a.done()
		a.dash.ApplyDeleted(m.ID)
		a.log.Info(a.ctx, "food deleted", "id", m.ID)
		a.status = "food removed"
	case createFailedMsg:
		a.done()
		a.createDone(m.Session)
		a.status = "error: " + m.err.Error()
	case errMsg:
		a.done()
		a.status = "error: " + m.Error()
	}
	a.clampCursor()
	return a, nil
}

func (a *App) done() {
	if a.busy > 0 {
		a.busy--
	}
}

func (a *App) createDone(session uint64) {
	if a.creating == session {
		a.creating = 0
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	st := a.dash.State()
	switch {
	case a.confirm != nil:
		return a.handleConfirmKey(m)
	case st.AddOpen():
		return a.handleAddKey(m)
	case st.EditOpen():
		return a.handleEditKey(m)
	case a.searching:
		return a.handleSearchKey(m)
	}

	visible := a.visible()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
	case "a", "n":
		a.form = newForm()
		st.OpenAdd()
		a.status = ""
	case "e", "enter":
		if len(visible) == 0 {
			a.status = "no foods to edit"
			return a, nil
		}
		f := visible[a.cursor]
		a.form = formFor(f)
		st.OpenEdit(f)
		a.status = ""
	case "d", "delete", "backspace":
		if len(visible) == 0 {
			return a, nil
		}
		f := visible[a.cursor]
		a.confirm = &f
	case " ", "space", "t":
		if len(visible) == 0 {
			return a, nil
		}
		a.status = "saving..."
		return a, a.toggleAvailability(visible[a.cursor])
	case "r":
		a.status = "loading..."
		return a, a.loadFoods()
	case "/":
		a.searching = true
	case "esc":
		a.query = ""
		a.status = ""
	}
	return a, nil
}

func (a *App) handleAddKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.dash.State().CloseAdd()
		return a, nil
	case tea.KeyEnter:
		session := a.dash.State().AddSession()
		if a.creating == session {
			return a, nil
		}
		d, err := a.form.draft()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.status = "saving..."
		return a, a.createFood(session, d)
	}
	a.form.handleKey(m)
	return a, nil
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.dash.State()
	switch m.Type {
	case tea.KeyEsc:
		st.CloseEdit()
		return a, nil
	case tea.KeyEnter:
		target, ok := st.EditTarget()
		if !ok {
			return a, nil
		}
		p, err := a.form.patch()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.status = "saving..."
		return a, a.updateFood(target, p)
	}
	a.form.handleKey(m)
	return a, nil
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		id := a.confirm.ID
		a.confirm = nil
		a.status = "deleting..."
		return a, a.deleteFood(id)
	case "n", "N", "esc":
		a.confirm = nil
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.query = ""
	case tea.KeyEnter:
		a.searching = false
	case tea.KeyBackspace, tea.KeyCtrlH:
		q := []rune(a.query)
		if len(q) > 0 {
			a.query = string(q[:len(q)-1])
		}
	case tea.KeySpace:
		a.query += " "
	case tea.KeyRunes:
		a.query += string(m.Runes)
	}
	a.cursor = 0
	return a, nil
}

// visible is the list as shown: the whole List State, narrowed by the search.
func (a *App) visible() []food.Food {
	return service.Filter(a.dash.State().Foods(), a.query)
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) View() string {
	body := a.renderList()
	if modal := a.renderModal(); modal != "" {
		body += "\n\n" + modalStyle.Render(modal)
	}
	return body
}

// messages
type foodsLoadedMsg []food.Food

type foodCreatedMsg struct {
	Session uint64
	Food    food.Food
}

type createFailedMsg struct {
	Session uint64
	err     error
}

type foodUpdatedMsg struct {
	TargetID int64
	Food     food.Food
}

type availabilityMsg struct{ Food food.Food }

type foodDeletedMsg struct{ ID int64 }

type errMsg struct{ error }

// styles
var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Underline(true)
	modalStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	unavailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	availableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

func (a *App) renderList() string {
	st := a.dash.State()
	title := titleStyle.Render(fmt.Sprintf("Foodboard - %d foods", st.Len()))
	out := title + "\n"
	if a.searching || a.query != "" {
		out += fmt.Sprintf("Search: %s", a.query)
		if a.searching {
			out += "_"
		}
		out += "\n"
	}

	visible := a.visible()
	if len(visible) == 0 {
		if st.Len() == 0 {
			out += "  (no foods yet)\n"
		} else {
			out += "  (no foods match)\n"
		}
	}
	for i, f := range visible {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-24s %s %8.2f  %s  %s\n", marker, truncate(f.Name, 24), a.currency, f.Price, renderAvailability(f.Available), truncate(f.Description, 48))
	}
	out += "[a] Add  [e] Edit  [d] Delete  [t] Toggle available  [/] Search  [r] Reload  [q] Quit"
	if a.busy > 0 && a.status == "" {
		out += "\n" + statusStyle.Render("working...")
	}
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}

func (a *App) renderModal() string {
	st := a.dash.State()
	switch {
	case a.confirm != nil:
		return titleStyle.Render("Delete food?") + fmt.Sprintf("\n%s will be removed.\n[y] Yes  [n] No", a.confirm.Name)
	case st.AddOpen():
		return titleStyle.Render("New food") + "\n" + a.form.render() + "[tab] Next field  [enter] Add  [esc] Cancel"
	case st.EditOpen():
		target, _ := st.EditTarget()
		return titleStyle.Render(fmt.Sprintf("Edit food #%d", target.ID)) + "\n" + a.form.render() + "[tab] Next field  [enter] Save  [esc] Cancel"
	default:
		return ""
	}
}

func availabilityLabel(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}

func renderAvailability(available bool) string {
	label := fmt.Sprintf("%-11s", availabilityLabel(available))
	if available {
		return availableStyle.Render(label)
	}
	return unavailableStyle.Render(label)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
