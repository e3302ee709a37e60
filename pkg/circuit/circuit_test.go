package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode_Duplicate(t *testing.T) {
	ckt := New("dup")
	require.NoError(t, ckt.AddNode("a"))
	err := ckt.AddNode("a")
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestAddBranch_DanglingEndpoint(t *testing.T) {
	ckt := New("dangling")
	require.NoError(t, ckt.AddNode("a"))

	err := ckt.AddBranch("R1", "a", "missing", Resistor, 100)
	assert.ErrorIs(t, err, ErrDanglingReference)

	err = ckt.AddBranch("R1", "missing", "a", Resistor, 100)
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestAddBranch_DuplicateID(t *testing.T) {
	ckt := New("dup-branch")
	require.NoError(t, ckt.AddNode("a"))
	require.NoError(t, ckt.AddNode("b"))
	require.NoError(t, ckt.AddBranch("R1", "a", "b", Resistor, 100))

	err := ckt.AddBranch("R1", "b", "a", Resistor, 200)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestRemoveNode_CascadesBranches(t *testing.T) {
	ckt := New("cascade")
	for _, n := range []string{"0", "a", "b"} {
		require.NoError(t, ckt.AddNode(n))
	}
	require.NoError(t, ckt.AddBranch("R1", "a", "0", Resistor, 100))
	require.NoError(t, ckt.AddBranch("R2", "a", "b", Resistor, 200))
	require.NoError(t, ckt.AddBranch("R3", "b", "0", Resistor, 300))

	require.NoError(t, ckt.RemoveNode("a"))

	assert.Equal(t, []string{"0", "b"}, ckt.Nodes())
	branches := ckt.Branches()
	require.Len(t, branches, 1)
	assert.Equal(t, "R3", branches[0].ID)

	// The freed ids are reusable.
	assert.NoError(t, ckt.AddNode("a"))
	assert.NoError(t, ckt.AddBranch("R1", "a", "b", Resistor, 50))
}

func TestRemoveBranch(t *testing.T) {
	ckt := New("rm")
	require.NoError(t, ckt.AddNode("a"))
	require.NoError(t, ckt.AddNode("b"))
	require.NoError(t, ckt.AddBranch("V1", "a", "b", VoltageSource, 5))

	assert.ErrorIs(t, ckt.RemoveBranch("nope"), ErrUnknownBranch)
	require.NoError(t, ckt.RemoveBranch("V1"))
	assert.Empty(t, ckt.Branches())
}

func TestUpdateBranch(t *testing.T) {
	ckt := New("upd")
	require.NoError(t, ckt.AddNode("a"))
	require.NoError(t, ckt.AddNode("b"))
	require.NoError(t, ckt.AddBranch("R1", "a", "b", Resistor, 100))

	require.NoError(t, ckt.UpdateBranch("R1", 470))
	assert.Equal(t, 470.0, ckt.Branches()[0].Value)

	assert.ErrorIs(t, ckt.UpdateBranch("R9", 1), ErrUnknownBranch)
}

func TestReference_Resolution(t *testing.T) {
	ckt := New("ref")
	require.NoError(t, ckt.AddNode("in"))
	require.NoError(t, ckt.AddNode("out"))
	assert.Equal(t, "in", ckt.Reference(), "first node wins without an explicit ground")

	require.NoError(t, ckt.AddNode("GND"))
	assert.Equal(t, "GND", ckt.Reference())

	require.NoError(t, ckt.AddNode("0"))
	assert.Equal(t, "0", ckt.Reference(), "literal 0 beats GND")
}

func TestReference_Empty(t *testing.T) {
	assert.Equal(t, "", New("empty").Reference())
}

func TestBranches_PreserveDirectionAndOrder(t *testing.T) {
	ckt := New("order")
	for _, n := range []string{"0", "1", "2"} {
		require.NoError(t, ckt.AddNode(n))
	}
	require.NoError(t, ckt.AddBranch("V1", "1", "2", VoltageSource, 10))
	require.NoError(t, ckt.AddBranch("R1", "1", "0", Resistor, 100))

	branches := ckt.Branches()
	require.Len(t, branches, 2)
	assert.Equal(t, "V1", branches[0].ID)
	assert.Equal(t, "1", branches[0].From)
	assert.Equal(t, "2", branches[0].To)
	assert.Equal(t, VoltageSource, branches[0].Kind)
}
