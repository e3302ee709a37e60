package netlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshnodal/pkg/circuit"
)

const dividerDeck = `Voltage divider
* source and two resistors
V1 1 0 DC 10
R1 1 2 1k
R2 2 0
+ 2k
.end
`

func TestParse_Divider(t *testing.T) {
	deck, err := Parse(dividerDeck)
	require.NoError(t, err)

	assert.Equal(t, "Voltage divider", deck.Title)
	require.Len(t, deck.Elements, 3)

	v1 := deck.Elements[0]
	assert.Equal(t, "V", v1.Type)
	assert.Equal(t, "V1", v1.Name)
	assert.Equal(t, []string{"1", "0"}, v1.Nodes)
	assert.Equal(t, 10.0, v1.Value)

	r2 := deck.Elements[2]
	assert.Equal(t, "R2", r2.Name)
	assert.Equal(t, 2000.0, r2.Value, "continuation line carries the value")
}

func TestParse_UnsupportedDirective(t *testing.T) {
	_, err := Parse("title\n.tran 1u 1m\n")
	assert.Error(t, err)
}

func TestParse_UnsupportedElement(t *testing.T) {
	_, err := Parse("title\nC1 1 0 10u\n")
	assert.Error(t, err)
}

func TestParse_MissingFields(t *testing.T) {
	_, err := Parse("title\nR1 1 100\n")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"4.7k", 4700},
		{"1K", 1000},
		{"2meg", 2e6},
		{"3MEG", 3e6},
		{"10m", 10e-3},
		{"47u", 47e-6},
		{"5n", 5e-9},
		{"2p", 2e-12},
		{"1.5e3", 1500},
		{"-12", -12},
		{"10kohm", 10e3},
	}
	for _, tc := range cases {
		got, err := ParseValue(tc.in)
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, math.Abs(tc.want)*1e-12, tc.in)
	}

	_, err := ParseValue("abc")
	assert.Error(t, err)
	_, err = ParseValue("10q")
	assert.Error(t, err)
}

func TestBuildCircuit(t *testing.T) {
	deck, err := Parse(dividerDeck)
	require.NoError(t, err)

	ckt, err := deck.BuildCircuit()
	require.NoError(t, err)

	assert.Equal(t, "0", ckt.Reference())
	assert.ElementsMatch(t, []string{"0", "1", "2"}, ckt.Nodes())

	branches := ckt.Branches()
	require.Len(t, branches, 3)
	assert.Equal(t, circuit.VoltageSource, branches[0].Kind)
	assert.Equal(t, circuit.Resistor, branches[1].Kind)
}

func TestBuildCircuit_DuplicateElement(t *testing.T) {
	deck, err := Parse("title\nR1 1 0 100\nR1 1 0 200\n")
	require.NoError(t, err)

	_, err = deck.BuildCircuit()
	assert.ErrorIs(t, err, circuit.ErrDuplicateID)
}
