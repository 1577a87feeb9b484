package navsim

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailReport() *Report {
	return &Report{
		Scenario: "detail",
		Snapshots: []Snapshot{
			{
				Index:          1,
				Op:             OpPopTo,
				Target:         "Detail",
				Visible:        []string{"Root", "Detail1"},
				Attached:       []string{"Root", "Detail"},
				GestureEnabled: true,
			},
		},
	}
}

func TestPrintReportEnglish(t *testing.T) {
	var out bytes.Buffer
	printer, err := NewPrinter(&out, "en")
	require.NoError(t, err)

	printer.PrintReport(detailReport())

	want := strings.Join([]string{
		"Scenario detail",
		"1. pop_to Detail",
		"   visible: [Root Detail1]",
		"   attached: [Root Detail]",
		"   back gesture: enabled",
		"1 step passed, 0 released by the platform",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestPrintReportGerman(t *testing.T) {
	var out bytes.Buffer
	printer, err := NewPrinter(&out, "de-AT")
	require.NoError(t, err)

	printer.PrintReport(detailReport())

	assert.Contains(t, out.String(), "Szenario detail")
	assert.Contains(t, out.String(), "sichtbar: [Root Detail1]")
	assert.Contains(t, out.String(), "Zurück-Geste: aktiv")
	assert.Contains(t, out.String(), "1 Schritt bestanden")
}

func TestPrintSnapshotPlurals(t *testing.T) {
	var out bytes.Buffer
	printer, err := NewPrinter(&out, "en")
	require.NoError(t, err)

	printer.PrintSnapshot(Snapshot{
		Index:          4,
		Op:             OpSystemPop,
		Visible:        []string{"Root"},
		Attached:       []string{"Root"},
		Released:       []string{"C", "B"},
		GestureIgnored: true,
		Pending:        1,
	})

	assert.Contains(t, out.String(), "4. system_pop\n")
	assert.Contains(t, out.String(), "released 2 routers: [C B]")
	assert.Contains(t, out.String(), "gesture ignored, the stack is still animating")
	assert.Contains(t, out.String(), "1 transition pending")
	assert.Contains(t, out.String(), "back gesture: disabled")
}

func TestPrinterFallsBackToEnglish(t *testing.T) {
	var out bytes.Buffer
	printer, err := NewPrinter(&out, "fr")
	require.NoError(t, err)

	printer.PrintReport(detailReport())

	assert.Contains(t, out.String(), "Scenario detail")
}

func TestPrinterRejectsMalformedLanguage(t *testing.T) {
	_, err := NewPrinter(&bytes.Buffer{}, "not a tag!")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `navsim: language "not a tag!"`)
}

func TestPrinterStyles(t *testing.T) {
	var out bytes.Buffer
	bracket := func(s ...string) string { return "<" + strings.Join(s, "") + ">" }
	printer, err := NewPrinter(&out, "en", WithStyles(Styles{Heading: bracket, Failure: bracket}))
	require.NoError(t, err)

	printer.PrintReport(&Report{Scenario: "empty"})
	printer.PrintError(&StepError{Index: 3, Op: OpPop, Err: errors.New("boom")})

	assert.Contains(t, out.String(), "<Scenario empty>\n")
	assert.Contains(t, out.String(), "0 steps passed")
	assert.Contains(t, out.String(), "<step 3 failed: boom>\n")
}
