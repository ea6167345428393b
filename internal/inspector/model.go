// Package inspector implements an interactive terminal browser over one
// AnalysisResult: a filterable class list, an outgoing-call-edge detail
// pane, and a fan-out bar chart.
package inspector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jvmcg/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// classItem adapts a ClassInfo to bubbles/list's DefaultItem interface.
type classItem struct {
	fqn       string
	kind      model.ClassKind
	outDegree int
}

func (i classItem) Title() string { return i.fqn }
func (i classItem) Description() string {
	return fmt.Sprintf("%s · %d outgoing calls", strings.ToLower(i.kind.String()), i.outDegree)
}
func (i classItem) FilterValue() string { return i.fqn }

// Model is the bubbletea program model.
type Model struct {
	result       *model.AnalysisResult
	edgesByOwner map[string][]model.CallEdge

	list   list.Model
	detail viewport.Model
	chart  barchart.Model

	width, height int
	ready         bool
}

// New builds an inspector Model over result.
func New(result *model.AnalysisResult) Model {
	edgesByOwner := make(map[string][]model.CallEdge)
	outDegree := make(map[string]int)
	for _, e := range result.CallEdges {
		edgesByOwner[e.Source.OwnerFQN] = append(edgesByOwner[e.Source.OwnerFQN], e)
		outDegree[e.Source.OwnerFQN]++
	}

	items := make([]list.Item, 0, len(result.Classes))
	for _, c := range result.Classes {
		items = append(items, classItem{fqn: c.FQN, kind: c.Kind, outDegree: outDegree[c.FQN]})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Classes"
	l.SetShowHelp(true)

	return Model{
		result:       result,
		edgesByOwner: edgesByOwner,
		list:         l,
		detail:       viewport.New(0, 0),
		chart:        topFanOutChart(outDegree, 0, 0),
	}
}

// topFanOutChart builds a bar chart of the ten highest out-degree classes.
func topFanOutChart(outDegree map[string]int, w, h int) barchart.Model {
	type pair struct {
		fqn    string
		degree int
	}
	pairs := make([]pair, 0, len(outDegree))
	for fqn, d := range outDegree {
		pairs = append(pairs, pair{fqn, d})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].degree != pairs[j].degree {
			return pairs[i].degree > pairs[j].degree
		}
		return pairs[i].fqn < pairs[j].fqn
	})
	if len(pairs) > 10 {
		pairs = pairs[:10]
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	data := make([]barchart.BarData, 0, len(pairs))
	for _, p := range pairs {
		label := p.fqn
		if idx := strings.LastIndex(label, "."); idx >= 0 {
			label = label[idx+1:]
		}
		data = append(data, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: float64(p.degree), Style: style}},
		})
	}

	bc := barchart.New(w, h)
	bc.PushAll(data)
	return bc
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth := m.width * 2 / 5
		detailWidth := m.width - listWidth - 4
		chartHeight := 8
		m.list.SetSize(listWidth, m.height-chartHeight-4)
		m.detail.Width = detailWidth
		m.detail.Height = m.height - chartHeight - 4
		m.chart.Resize(m.width-4, chartHeight)
		m.chart.Draw()
		m.ready = true
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.refreshDetail()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail()
	return m, cmd
}

func (m *Model) refreshDetail() {
	item, ok := m.list.SelectedItem().(classItem)
	if !ok {
		m.detail.SetContent("")
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(item.fqn))
	edges := m.edgesByOwner[item.fqn]
	if len(edges) == 0 {
		b.WriteString("(no outgoing calls reach the admitted target set)\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "  -> %s.%s\n", e.Target.OwnerFQN, e.Target.Name)
	}
	m.detail.SetContent(b.String())
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Render(m.list.View()),
		borderStyle.Render(m.detail.View()),
	)
	chartTitle := titleStyle.Render(fmt.Sprintf("Fan-out (%d classes, %d edges)", len(m.result.Classes), len(m.result.CallEdges)))
	return lipgloss.JoinVertical(lipgloss.Left, top, chartTitle, borderStyle.Render(m.chart.View()))
}

// Run starts the bubbletea program and blocks until the user quits.
func Run(result *model.AnalysisResult) error {
	_, err := tea.NewProgram(New(result), tea.WithAltScreen()).Run()
	return err
}
