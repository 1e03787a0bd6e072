package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/app"
	"taskdeck/internal/storage"
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	done    lipgloss.Style
	overdue lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errs    lipgloss.Style
}

func newStyles(theme string) styles {
	if theme == storage.ThemeDark {
		return styles{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
			muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			done:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
			overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			info:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("19")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		done:    lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Strikethrough(true),
		overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (s styles) severity(sev string) lipgloss.Style {
	switch sev {
	case app.SeveritySuccess:
		return s.success
	case app.SeverityWarning:
		return s.warning
	case app.SeverityError:
		return s.errs
	default:
		return s.info
	}
}
