package ux

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/coalition"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/theater"
)

func sampleOrder() *ato.AirTaskingOrder {
	order := ato.NewAirTaskingOrder(domain.SideBlue)

	cas := ato.NewPackage(domain.FlightCAS, theater.Target{ID: "front", Name: "Batumi-Kutaisi", Kind: domain.KindFrontLine})
	cas.AddFlight(ato.Flight{Type: domain.FlightCAS, Count: 2, Squadron: "74th FS"})
	cas.TimeOverTarget = 12*time.Minute + 30*time.Second
	order.Add(cas)

	dead := ato.NewPackage(domain.FlightDEAD, theater.Target{ID: "sam", Name: "SA-11 Kutaisi", Kind: domain.KindAirDefense})
	dead.AddFlight(ato.Flight{Type: domain.FlightDEAD, Count: 2, Squadron: "VFA-113"})
	dead.AddFlight(ato.Flight{Type: domain.FlightEscort, Count: 4, Squadron: "VFA-113", Escort: true})
	dead.AutoASAP = true
	order.Add(dead)

	return order
}

func TestFormatTOT(t *testing.T) {
	assert.Equal(t, "T+00:00:00", FormatTOT(0))
	assert.Equal(t, "T+00:12:30", FormatTOT(12*time.Minute+30*time.Second))
	assert.Equal(t, "T+01:05:01", FormatTOT(time.Hour+5*time.Minute+time.Second+400*time.Millisecond))
}

func TestRenderATO(t *testing.T) {
	out := RenderATO(sampleOrder(), NewStyles(true))

	for _, want := range []string{
		"TOT", "TARGET",
		"T+00:12:30", "Batumi-Kutaisi", "2x CAS (74th FS)",
		"SA-11 Kutaisi", "4x ESCORT* (VFA-113)", "yes",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Batumi-Kutaisi"), strings.Index(out, "SA-11 Kutaisi"))
}

func TestPassReport_Render(t *testing.T) {
	order, err := NewOrderReport(sampleOrder())
	require.NoError(t, err)
	assert.Len(t, order.Digest, 64)

	report := &PassReport{
		OrderReport: *order,
		Turn:        3,
		Seed:        7,
		Procurement: []coalition.ProcurementRequest{{Task: domain.FlightOCARunway, Count: 2, TargetID: "kutaisi"}},
	}

	out := report.Render(NewStyles(true))
	assert.Contains(t, out, "BLUE air-tasking order (2 packages)")
	assert.Contains(t, out, "digest "+order.Digest)
	assert.Contains(t, out, "turn 3, seed 7")
	assert.Contains(t, out, "2 x OCA_RUNWAY for kutaisi")
}

func TestPassReport_EmptyOrder(t *testing.T) {
	order, err := NewOrderReport(ato.NewAirTaskingOrder(domain.SideRed))
	require.NoError(t, err)

	out := (&PassReport{OrderReport: *order}).Render(NewStyles(true))
	assert.Contains(t, out, "No packages planned")
	assert.NotContains(t, out, "Procurement requests")
}

func TestPassReports_YAML(t *testing.T) {
	order, err := NewOrderReport(sampleOrder())
	require.NoError(t, err)
	reports := PassReports{{OrderReport: *order, Turn: 1}}

	var buf bytes.Buffer
	formatter, err := NewFormatter(FormatYAML, &FormatterOptions{Writer: &buf})
	require.NoError(t, err)
	require.NoError(t, formatter.Format(reports))

	var decoded []struct {
		Digest string               `yaml:"digest"`
		Turn   int                  `yaml:"turn"`
		Order  *ato.AirTaskingOrder `yaml:"ato"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, order.Digest, decoded[0].Digest)
	assert.Equal(t, 1, decoded[0].Turn)
	assert.Equal(t, 2, decoded[0].Order.Len())
}
