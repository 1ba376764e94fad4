package tui

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	DashboardStats(context.Context, string) (app.DashboardStats, error)
	AdvanceProgress(context.Context, string, int) (int, error)
	ListTasks(context.Context, string) ([]domain.Task, error)
	CreateTask(context.Context, app.CreateTaskInput) (domain.Task, error)
	UpdateTask(context.Context, app.UpdateTaskInput) (domain.Task, error)
	ListChecklists(context.Context, string) ([]domain.Checklist, error)
	CreateChecklist(context.Context, string, string, string) (domain.Checklist, error)
	ListChecklistItems(context.Context, string) ([]domain.ChecklistItem, error)
	AddChecklistItem(context.Context, string, string, domain.Priority) (domain.ChecklistItem, error)
	ToggleChecklistItem(context.Context, string) (domain.ChecklistItem, error)
	ReorderChecklistItems(context.Context, string, []string) ([]domain.ChecklistItem, error)
	RecentActivities(context.Context, string, int) ([]domain.Activity, error)
}

// clipboardWriteAll is swapped in tests; the default writes the system clipboard.
var clipboardWriteAll = clipboard.WriteAll

// tab represents a selectable top-level view.
type tab int

// tabDashboard and related constants define the view order.
const (
	tabDashboard tab = iota
	tabTasks
	tabChecklists
	tabActivity
)

// tabNames stores view titles in display order.
var tabNames = []string{"Dashboard", "Tasks", "Checklists", "Activity"}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddTask
	modeNewChecklist
	modeAddItem
	modeGotoDay
)

// Model represents model data used by this package.
type Model struct {
	svc Service

	ownerID          string
	activityLimit    int
	showDescriptions bool

	ready  bool
	width  int
	height int
	err    error

	status string

	help help.Model
	keys keyMap
	md   markdownRenderer

	tab tab

	stats      app.DashboardStats
	tasks      []domain.Task
	checklists []domain.Checklist
	items      map[string][]domain.ChecklistItem
	activities []domain.Activity

	selectedTask      int
	selectedChecklist int
	selectedItem      int

	mode  inputMode
	input string
}

// loadedMsg carries message data through update handling.
type loadedMsg struct {
	stats      app.DashboardStats
	tasks      []domain.Task
	checklists []domain.Checklist
	items      map[string][]domain.ChecklistItem
	activities []domain.Activity
	err        error
}

// actionMsg carries message data through update handling.
type actionMsg struct {
	err    error
	status string
	reload bool
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:              svc,
		ownerID:          "default",
		activityLimit:    20,
		showDescriptions: true,
		status:           "loading...",
		help:             h,
		keys:             newKeyMap(),
		items:            map[string][]domain.ChecklistItem{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// loadData fetches every view's data in one pass.
func (m Model) loadData() tea.Msg {
	ctx := context.Background()

	stats, err := m.svc.DashboardStats(ctx, m.ownerID)
	if err != nil {
		return loadedMsg{err: err}
	}
	tasks, err := m.svc.ListTasks(ctx, m.ownerID)
	if err != nil {
		return loadedMsg{err: err}
	}
	checklists, err := m.svc.ListChecklists(ctx, m.ownerID)
	if err != nil {
		return loadedMsg{err: err}
	}
	items := make(map[string][]domain.ChecklistItem, len(checklists))
	for _, checklist := range checklists {
		entries, itemsErr := m.svc.ListChecklistItems(ctx, checklist.ID)
		if itemsErr != nil {
			return loadedMsg{err: itemsErr}
		}
		items[checklist.ID] = entries
	}
	activities, err := m.svc.RecentActivities(ctx, m.ownerID, m.activityLimit)
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{
		stats:      stats,
		tasks:      tasks,
		checklists: checklists,
		items:      items,
		activities: activities,
	}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.stats = msg.stats
		m.tasks = msg.tasks
		m.checklists = msg.checklists
		m.items = msg.items
		m.activities = msg.activities
		m.clampSelections()
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	default:
		return m, nil
	}
}

// clampSelections keeps every cursor inside its freshly loaded slice.
func (m *Model) clampSelections() {
	m.selectedTask = clamp(m.selectedTask, 0, len(m.tasks)-1)
	m.selectedChecklist = clamp(m.selectedChecklist, 0, len(m.checklists)-1)
	m.selectedItem = clamp(m.selectedItem, 0, len(m.currentChecklistItems())-1)
}

// currentChecklistItems returns the item slice for the selected checklist.
func (m Model) currentChecklistItems() []domain.ChecklistItem {
	if len(m.checklists) == 0 {
		return nil
	}
	idx := clamp(m.selectedChecklist, 0, len(m.checklists)-1)
	return m.items[m.checklists[idx].ID]
}

// selectedChecklistID returns the selected checklist's ID, if any.
func (m Model) selectedChecklistID() (string, bool) {
	if len(m.checklists) == 0 {
		return "", false
	}
	idx := clamp(m.selectedChecklist, 0, len(m.checklists)-1)
	return m.checklists[idx].ID, true
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		if m.help.ShowAll {
			m.status = "help"
		} else {
			m.status = "ready"
		}
		return m, nil
	case msg.String() == "esc":
		if m.help.ShowAll {
			m.help.ShowAll = false
			m.status = "ready"
		}
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData
	case key.Matches(msg, m.keys.nextTab):
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.prevTab):
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	case msg.String() == "1" || msg.String() == "2" || msg.String() == "3" || msg.String() == "4":
		m.tab = tab(int(msg.String()[0] - '1'))
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		switch m.tab {
		case tabTasks:
			if m.selectedTask < len(m.tasks)-1 {
				m.selectedTask++
			}
		case tabChecklists:
			if m.selectedItem < len(m.currentChecklistItems())-1 {
				m.selectedItem++
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		switch m.tab {
		case tabTasks:
			if m.selectedTask > 0 {
				m.selectedTask--
			}
		case tabChecklists:
			if m.selectedItem > 0 {
				m.selectedItem--
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.prevList):
		if m.tab == tabChecklists && m.selectedChecklist > 0 {
			m.selectedChecklist--
			m.selectedItem = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.nextList):
		if m.tab == tabChecklists && m.selectedChecklist < len(m.checklists)-1 {
			m.selectedChecklist++
			m.selectedItem = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.toggleItem):
		if m.tab != tabChecklists {
			return m, nil
		}
		items := m.currentChecklistItems()
		if len(items) == 0 {
			m.status = "no item selected"
			return m, nil
		}
		item := items[clamp(m.selectedItem, 0, len(items)-1)]
		return m, m.toggleItemCmd(item.ID)
	case key.Matches(msg, m.keys.moveItemUp):
		return m.reorderSelectedItem(-1)
	case key.Matches(msg, m.keys.moveItemDown):
		return m.reorderSelectedItem(1)
	case key.Matches(msg, m.keys.addEntry):
		switch m.tab {
		case tabTasks:
			m.mode = modeAddTask
			m.input = ""
			m.status = "new task"
		case tabChecklists:
			if len(m.checklists) == 0 {
				m.status = "create a checklist first (N)"
				return m, nil
			}
			m.mode = modeAddItem
			m.input = ""
			m.status = "new checklist item"
		default:
			m.status = "switch to tasks or checklists to add entries"
		}
		return m, nil
	case key.Matches(msg, m.keys.newChecklist):
		m.mode = modeNewChecklist
		m.input = ""
		m.status = "new checklist"
		return m, nil
	case key.Matches(msg, m.keys.completeTask):
		if m.tab != tabTasks {
			return m, nil
		}
		if len(m.tasks) == 0 {
			m.status = "no task selected"
			return m, nil
		}
		task := m.tasks[clamp(m.selectedTask, 0, len(m.tasks)-1)]
		if task.Status == domain.TaskStatusCompleted {
			m.status = "task already completed"
			return m, nil
		}
		return m, m.completeTaskCmd(task)
	case key.Matches(msg, m.keys.advanceDay):
		if m.stats.CurrentDay >= domain.TotalDays {
			m.status = fmt.Sprintf("plan complete (day %d)", domain.TotalDays)
			return m, nil
		}
		return m, m.advanceCmd(m.stats.CurrentDay + 1)
	case key.Matches(msg, m.keys.rewindDay):
		if m.stats.CurrentDay <= 1 {
			m.status = "already at the start"
			return m, nil
		}
		return m, m.advanceCmd(m.stats.CurrentDay - 1)
	case key.Matches(msg, m.keys.gotoDay):
		m.mode = modeGotoDay
		m.input = ""
		m.status = fmt.Sprintf("go to day (1-%d)", domain.TotalDays)
		return m, nil
	case key.Matches(msg, m.keys.copyID):
		return m.copySelectedID()
	case key.Matches(msg, m.keys.toggleDescs):
		m.showDescriptions = !m.showDescriptions
		if m.showDescriptions {
			m.status = "showing descriptions"
		} else {
			m.status = "hiding descriptions"
		}
		return m, nil
	default:
		return m, nil
	}
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.input = ""
		m.status = "cancelled"
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case "enter":
		return m.submitInput()
	default:
		if msg.Text != "" {
			m.input += msg.Text
		}
		return m, nil
	}
}

// submitInput dispatches the active prompt's value.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input)
	mode := m.mode
	m.mode = modeNone
	m.input = ""

	switch mode {
	case modeAddTask:
		if value == "" {
			m.status = "title required"
			return m, nil
		}
		return m, m.addTaskCmd(value)
	case modeNewChecklist:
		if value == "" {
			m.status = "name required"
			return m, nil
		}
		return m, m.newChecklistCmd(value)
	case modeAddItem:
		if value == "" {
			m.status = "text required"
			return m, nil
		}
		checklistID, ok := m.selectedChecklistID()
		if !ok {
			m.status = "no checklist selected"
			return m, nil
		}
		return m, m.addItemCmd(checklistID, value)
	case modeGotoDay:
		day, err := strconv.Atoi(value)
		if err != nil {
			m.status = "day must be a number"
			return m, nil
		}
		return m, m.advanceCmd(day)
	default:
		return m, nil
	}
}

// reorderSelectedItem moves the selected item one slot and persists the full order.
func (m Model) reorderSelectedItem(delta int) (tea.Model, tea.Cmd) {
	if m.tab != tabChecklists {
		return m, nil
	}
	items := m.currentChecklistItems()
	if len(items) < 2 {
		m.status = "nothing to reorder"
		return m, nil
	}
	from := clamp(m.selectedItem, 0, len(items)-1)
	to := from + delta
	if to < 0 || to >= len(items) {
		return m, nil
	}
	checklistID, ok := m.selectedChecklistID()
	if !ok {
		return m, nil
	}

	orderedIDs := make([]string, len(items))
	for i, item := range items {
		orderedIDs[i] = item.ID
	}
	orderedIDs[from], orderedIDs[to] = orderedIDs[to], orderedIDs[from]
	m.selectedItem = to
	return m, m.reorderCmd(checklistID, orderedIDs)
}

// copySelectedID copies the selected row's ID to the system clipboard.
func (m Model) copySelectedID() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabTasks:
		if len(m.tasks) == 0 {
			m.status = "no task selected"
			return m, nil
		}
		task := m.tasks[clamp(m.selectedTask, 0, len(m.tasks)-1)]
		return m, m.copyCmd("task id", task.ID)
	case tabChecklists:
		items := m.currentChecklistItems()
		if len(items) == 0 {
			m.status = "no item selected"
			return m, nil
		}
		item := items[clamp(m.selectedItem, 0, len(items)-1)]
		return m, m.copyCmd("item id", item.ID)
	default:
		m.status = "select a task or checklist item to copy"
		return m, nil
	}
}

// toggleItemCmd flips one checklist item's completion state.
func (m Model) toggleItemCmd(itemID string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.svc.ToggleChecklistItem(context.Background(), itemID)
		if err != nil {
			return actionMsg{err: err}
		}
		state := "open"
		if item.Completed {
			state = "done"
		}
		return actionMsg{status: fmt.Sprintf("%q marked %s", truncate(item.Text, 28), state), reload: true}
	}
}

// reorderCmd persists a full checklist ordering.
func (m Model) reorderCmd(checklistID string, orderedIDs []string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.ReorderChecklistItems(context.Background(), checklistID, orderedIDs); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "items reordered", reload: true}
	}
}

// completeTaskCmd marks one task completed, keeping its other fields intact.
func (m Model) completeTaskCmd(task domain.Task) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.UpdateTask(context.Background(), app.UpdateTaskInput{
			TaskID:      task.ID,
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			Status:      domain.TaskStatusCompleted,
			PhaseID:     task.PhaseID,
			DueDate:     task.DueDate,
			Notes:       task.Notes,
		})
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("completed %q", truncate(task.Title, 28)), reload: true}
	}
}

// advanceCmd moves the progress pointer to the given day.
func (m Model) advanceCmd(day int) tea.Cmd {
	return func() tea.Msg {
		current, err := m.svc.AdvanceProgress(context.Background(), m.ownerID, day)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("advanced to day %d", current), reload: true}
	}
}

// addTaskCmd creates a pending medium-priority task from the quick prompt.
func (m Model) addTaskCmd(title string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.CreateTask(context.Background(), app.CreateTaskInput{
			OwnerID:  m.ownerID,
			Title:    title,
			Priority: domain.PriorityMedium,
			Status:   domain.TaskStatusPending,
		})
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("created %q", truncate(task.Title, 28)), reload: true}
	}
}

// newChecklistCmd creates an empty checklist.
func (m Model) newChecklistCmd(name string) tea.Cmd {
	return func() tea.Msg {
		checklist, err := m.svc.CreateChecklist(context.Background(), m.ownerID, name, "")
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("created checklist %q", truncate(checklist.Name, 28)), reload: true}
	}
}

// addItemCmd appends an item to the selected checklist.
func (m Model) addItemCmd(checklistID, text string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.svc.AddChecklistItem(context.Background(), checklistID, text, domain.PriorityMedium)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("added %q", truncate(item.Text, 28)), reload: true}
	}
}

// copyCmd writes a value to the clipboard off the update loop.
func (m Model) copyCmd(label, value string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWriteAll(value); err != nil {
			return actionMsg{err: fmt.Errorf("copy %s: %w", label, err)}
		}
		return actionMsg{status: fmt.Sprintf("copied %s %s", label, value)}
	}
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	header := m.renderTabs(accent, muted)
	var body string
	switch m.tab {
	case tabDashboard:
		body = m.renderDashboard()
	case tabTasks:
		body = m.renderTasks(accent, muted)
	case tabChecklists:
		body = m.renderChecklists(accent, muted)
	case tabActivity:
		body = m.renderActivity(muted)
	}

	statusLine := lipgloss.NewStyle().Foreground(dim).Render(m.statusText())
	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	chromeHeight := lipgloss.Height(header) + lipgloss.Height(statusLine) + lipgloss.Height(helpLine)
	if m.height > 0 {
		body = fitLines(body, max(0, m.height-chromeHeight))
	}

	v := tea.NewView(header + "\n" + body + "\n" + statusLine + "\n" + helpLine)
	v.AltScreen = true
	return v
}

// statusText prefixes the live prompt when an input mode is active.
func (m Model) statusText() string {
	if m.mode == modeNone {
		return m.status
	}
	return m.status + ": " + m.input + "█"
}

// renderTabs renders the top view selector.
func (m Model) renderTabs(accent, muted color.Color) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(accent)
	inactive := lipgloss.NewStyle().Foreground(muted)
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if tab(i) == m.tab {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, inactive.Render(label))
		}
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render("stride")
	return title + "  " + strings.Join(parts, "  ")
}

// renderDashboard renders the aggregated stats view as markdown.
func (m Model) renderDashboard() string {
	stats := m.stats
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Day %d of %d\n\n", stats.CurrentDay, domain.TotalDays)
	fmt.Fprintf(&sb, "`%s` **%d%%**\n\n", progressBar(float64(stats.OverallProgressPct), 30), stats.OverallProgressPct)
	if stats.CurrentDay > 0 {
		fmt.Fprintf(&sb, "Current phase: **%s** (%s, %.0f%%)\n\n", stats.CurrentPhase.Name, stats.CurrentPhaseStatus, stats.CurrentPhasePct)
	} else {
		sb.WriteString("Plan not started. Press `+` to begin day 1.\n\n")
	}
	sb.WriteString("## Phases\n\n")
	for _, phase := range stats.Phases {
		fmt.Fprintf(&sb, "- **%s** (days %d-%d): %s, %.0f%%\n", phase.Phase.Name, phase.Phase.StartDay, phase.Phase.EndDay, phase.Status, phase.PercentPct)
	}
	sb.WriteString("\n## Counters\n\n")
	fmt.Fprintf(&sb, "- Tasks: %d/%d completed\n", stats.TasksCompleted, stats.TotalTasks)
	fmt.Fprintf(&sb, "- Team members: %d (avg satisfaction %s)\n", stats.TeamMembers, formatAvg(stats.TeamSatisfactionAvg, "%.1f"))
	fmt.Fprintf(&sb, "- Learning resources: %d (avg progress %s)\n", stats.LearningResources, formatAvg(stats.LearningProgressAvg, "%.0f%%"))
	fmt.Fprintf(&sb, "- Active risks: %d\n", stats.ActiveRisks)
	fmt.Fprintf(&sb, "- Open follow-ups: %d\n", stats.OpenFollowUps)
	return (&m.md).render(sb.String(), max(24, m.width-4))
}

// renderTasks renders the task list view.
func (m Model) renderTasks(accent, muted color.Color) string {
	if len(m.tasks) == 0 {
		return "\nNo tasks yet. Press n to add one."
	}
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	descStyle := lipgloss.NewStyle().Foreground(muted)
	var sb strings.Builder
	for i, task := range m.tasks {
		glyph := "[ ]"
		switch task.Status {
		case domain.TaskStatusInProgress:
			glyph = "[~]"
		case domain.TaskStatusCompleted:
			glyph = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s)", glyph, truncate(task.Title, max(20, m.width-24)), task.Priority)
		if task.DueDate != nil {
			line += " due " + task.DueDate.Format("Jan 02")
		}
		if i == m.selectedTask {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
		if m.showDescriptions && task.Description != "" {
			sb.WriteString(descStyle.Render("      "+truncate(task.Description, max(20, m.width-10))) + "\n")
		}
	}
	return sb.String()
}

// renderChecklists renders the checklist selector plus the selected list's items.
func (m Model) renderChecklists(accent, muted color.Color) string {
	if len(m.checklists) == 0 {
		return "\nNo checklists yet. Press N to create one."
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(accent)
	inactive := lipgloss.NewStyle().Foreground(muted)

	names := make([]string, 0, len(m.checklists))
	for i, checklist := range m.checklists {
		label := truncate(checklist.Name, 24)
		if i == m.selectedChecklist {
			names = append(names, active.Render("["+label+"]"))
		} else {
			names = append(names, inactive.Render(" "+label+" "))
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(names, " ") + "\n\n")
	items := m.currentChecklistItems()
	if len(items) == 0 {
		sb.WriteString("No items yet. Press n to add one.\n")
		return sb.String()
	}
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	for i, item := range items {
		glyph := "[ ]"
		if item.Completed {
			glyph = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s)", glyph, truncate(item.Text, max(20, m.width-16)), item.Priority)
		if i == m.selectedItem {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// renderActivity renders the recent activity feed, newest first.
func (m Model) renderActivity(muted color.Color) string {
	if len(m.activities) == 0 {
		return "\nNo activity recorded yet."
	}
	typeStyle := lipgloss.NewStyle().Foreground(muted)
	var sb strings.Builder
	for _, activity := range m.activities {
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			activity.CreatedAt.Local().Format("Jan 02 15:04"),
			typeStyle.Render(string(activity.Type)),
			truncate(activity.Description, max(20, m.width-36))))
	}
	return sb.String()
}

// formatAvg renders an optional average; nil means no inputs existed.
func formatAvg(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// clamp bounds v to [lo, hi]; an empty range collapses to lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// fitLines pads or trims content to exactly height lines.
func fitLines(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
