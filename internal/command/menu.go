package command

import (
	"fmt"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Menu builders are pure functions of the registry contents. Row IDs
// carry canonical command names so a list selection routes straight
// back into dispatch.

// MainMenu lists every category with its command count.
func (r *Registry) MainMenu(botName string) reply.Reply {
	rows := make([]reply.Row, 0, len(r.categories))
	for _, meta := range r.categories {
		cmds := r.byCategory[meta.Key]
		if len(cmds) == 0 {
			continue
		}
		rows = append(rows, reply.Row{
			ID:          "category:" + string(meta.Key),
			Title:       fmt.Sprintf("%s %s", meta.Emoji, meta.Title),
			Description: fmt.Sprintf("%d commands", len(cmds)),
		})
	}
	return reply.List(
		"Main Menu",
		fmt.Sprintf("📱 *%s MAIN MENU*\n\nSelect a category to view commands:", strings.ToUpper(botName)),
		[]reply.Section{{Title: "Categories", Rows: rows}},
		"Browse",
	)
}

// CategoryMenu lists the commands of one category.
func (r *Registry) CategoryMenu(cat Category) (reply.Reply, bool) {
	meta, ok := r.categoryTitle(cat)
	if !ok {
		return reply.Reply{}, false
	}
	cmds := r.byCategory[cat]
	if len(cmds) == 0 {
		return reply.Reply{}, false
	}
	rows := make([]reply.Row, 0, len(cmds))
	for _, d := range cmds {
		rows = append(rows, reply.Row{
			ID:          d.Canonical,
			Title:       d.Name,
			Description: d.Description,
		})
	}
	return reply.List(
		meta.Title,
		fmt.Sprintf("%s *%s*\n\nSelect a command:", meta.Emoji, strings.ToUpper(meta.Title)),
		[]reply.Section{{Title: meta.Title, Rows: rows}},
		"Select Command",
	), true
}

// AllCommandsMenu is the full catalog, one section per category.
func (r *Registry) AllCommandsMenu(botName string) reply.Reply {
	sections := make([]reply.Section, 0, len(r.categories))
	for _, meta := range r.categories {
		cmds := r.byCategory[meta.Key]
		if len(cmds) == 0 {
			continue
		}
		rows := make([]reply.Row, 0, len(cmds))
		for _, d := range cmds {
			title := d.Name
			if len(d.Aliases) > 0 {
				title = fmt.Sprintf("%s (%s)", d.Name, strings.Join(d.Aliases, ", "))
			}
			rows = append(rows, reply.Row{ID: d.Canonical, Title: title, Description: d.Description})
		}
		sections = append(sections, reply.Section{
			Title: fmt.Sprintf("%s %s", meta.Emoji, meta.Title),
			Rows:  rows,
		})
	}
	return reply.List(
		"All Commands",
		fmt.Sprintf("📱 *%s - ALL COMMANDS*\n\nSelect any command for details:", strings.ToUpper(botName)),
		sections,
		"Select Command",
	)
}

// HelpFor renders the usage card of a single command.
func (r *Registry) HelpFor(token string) (reply.Reply, bool) {
	d, ok := r.Resolve(token)
	if !ok {
		return reply.Reply{}, false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n%s\n\nUsage: `%s`", d.Name, d.Description, d.Usage)
	if len(d.Aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s", strings.Join(d.Aliases, ", "))
	}
	return reply.Text(b.String()), true
}
