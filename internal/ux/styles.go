package ux

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Escort  lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles returns the default styles, or unstyled ones when plain is set.
func NewStyles(plain bool) Styles {
	if plain {
		return Styles{
			Title:   lipgloss.NewStyle(),
			Header:  lipgloss.NewStyle().Padding(0, 1),
			Cell:    lipgloss.NewStyle().Padding(0, 1),
			Escort:  lipgloss.NewStyle().Padding(0, 1),
			Muted:   lipgloss.NewStyle(),
			Warning: lipgloss.NewStyle(),
			Border:  lipgloss.NewStyle(),
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")). // Cyan
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Escort: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")),
	}
}
