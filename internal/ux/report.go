package ux

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/coalition"
)

// OrderReport is an air-tasking order with its digest.
type OrderReport struct {
	Order  *ato.AirTaskingOrder `yaml:"ato" json:"ato"`
	Digest string               `yaml:"digest" json:"digest"`
}

// NewOrderReport digests order.
func NewOrderReport(order *ato.AirTaskingOrder) (*OrderReport, error) {
	digest, err := ato.Digest(order)
	if err != nil {
		return nil, err
	}
	return &OrderReport{Order: order, Digest: digest}, nil
}

// Render implements Renderer.
func (r *OrderReport) Render(styles Styles) string {
	var b strings.Builder

	title := fmt.Sprintf("%s air-tasking order (%d packages)", strings.ToUpper(r.Order.Side.String()), r.Order.Len())
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if r.Order.Len() == 0 {
		b.WriteString(styles.Muted.Render("No packages planned"))
	} else {
		b.WriteString(RenderATO(r.Order, styles))
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("digest " + r.Digest))
	return b.String()
}

// OrderReports renders several orders one after the other.
type OrderReports []*OrderReport

// Render implements Renderer.
func (rs OrderReports) Render(styles Styles) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.Render(styles)
	}
	return strings.Join(parts, "\n\n")
}

// PassReport is the outcome of a planning pass for one side.
type PassReport struct {
	OrderReport `yaml:",inline"`

	Turn               int                             `yaml:"turn" json:"turn"`
	Seed               uint64                          `yaml:"seed" json:"seed"`
	SaturationPackages int                             `yaml:"saturation_packages" json:"saturation_packages"`
	Procurement        []coalition.ProcurementRequest `yaml:"procurement,omitempty" json:"procurement,omitempty"`
}

// Render implements Renderer.
func (r *PassReport) Render(styles Styles) string {
	var b strings.Builder
	b.WriteString(r.OrderReport.Render(styles))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("turn %d, seed %d, %d saturation packages", r.Turn, r.Seed, r.SaturationPackages)))

	if len(r.Procurement) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.Warning.Render("Procurement requests"))
		for _, req := range r.Procurement {
			b.WriteString("\n  ")
			b.WriteString(req.String())
		}
	}
	return b.String()
}

// PassReports renders several passes one after the other.
type PassReports []*PassReport

// Render implements Renderer.
func (rs PassReports) Render(styles Styles) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.Render(styles)
	}
	return strings.Join(parts, "\n\n")
}

// RenderATO renders the packages of order as a table in scheduled order.
func RenderATO(order *ato.AirTaskingOrder, styles Styles) string {
	rows := make([][]string, 0, order.Len())
	escorted := make(map[int]bool)
	for i, p := range order.Packages {
		asap := ""
		if p.AutoASAP {
			asap = "yes"
		}
		if p.Origin == ato.OriginManual {
			asap += " (manual)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatTOT(p.TimeOverTarget),
			p.PrimaryTask.String(),
			p.Target.Name,
			formatFlights(p.Flights),
			strings.TrimSpace(asap),
		})
		escorted[i] = hasEscort(p.Flights)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers("#", "TOT", "TASK", "TARGET", "FLIGHTS", "ASAP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == 4 && escorted[row]:
				return styles.Escort
			}
			return styles.Cell
		})
	return t.String()
}

// FormatTOT formats a time over target as an offset from mission start.
func FormatTOT(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("T+%02d:%02d:%02d", h, m, s)
}

func formatFlights(flights []ato.Flight) string {
	parts := make([]string, len(flights))
	for i, f := range flights {
		part := fmt.Sprintf("%dx %s", f.Count, f.Type)
		if f.Escort {
			part += "*"
		}
		if f.Squadron != "" {
			part += " (" + f.Squadron + ")"
		}
		parts[i] = part
	}
	return strings.Join(parts, ", ")
}

func hasEscort(flights []ato.Flight) bool {
	for _, f := range flights {
		if f.Escort {
			return true
		}
	}
	return false
}
