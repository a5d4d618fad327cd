package update

import (
	"github.com/sandeepkv93/tasker/internal/views"
)

const helpMarkdown = `# tasker

## Keys

| key | action |
|---|---|
| j / k | move |
| space / x | toggle done |
| d | remove |
| a | quick add |
| t | dark mode |
| r | reload from disk |
| / | command palette |
| q | quit |

## Commands

- ` + "`/add <text> [due:DD.MM.YYYY] [cat:work]`" + `
- ` + "`/done N`" + ` toggles task N
- ` + "`/rm N`" + ` removes task N
- ` + "`/theme dark|light|toggle`" + `
- ` + "`/show all|open|done|overdue`" + `

Categories: personal, work, study, project, other.
`

func (m *Model) refreshHelpContent() {
	legend := views.RenderLegend()
	m.helpViewport.SetContent(views.RenderHelpPanel(views.HelpPanelData{
		Markdown: helpMarkdown,
		Dark:     m.Dark,
	}) + "\n\n" + legend)
}

func (m Model) renderHelpView() string {
	return m.helpModel.FullHelpView(m.Keys.FullHelp()) + "\n\n" + m.helpViewport.View()
}
