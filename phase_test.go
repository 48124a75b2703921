package gridlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "go", Go.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}

func TestPhase_Complement(t *testing.T) {
	assert.Equal(t, Go, Stop.Complement())
	assert.Equal(t, Stop, Go.Complement())
}

func TestParsePhase(t *testing.T) {
	for input, want := range map[string]Phase{
		"stop": Stop, "RED": Stop, " red ": Stop,
		"go": Go, "Green": Go,
	} {
		got, err := ParsePhase(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParsePhase("amber")
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestPhase_YAML(t *testing.T) {
	var doc struct {
		Phases []Phase `yaml:"phases"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("phases: [red, go, GREEN, stop]"), &doc))
	assert.Equal(t, []Phase{Stop, Go, Go, Stop}, doc.Phases)

	out, err := yaml.Marshal(map[string]Phase{"p": Go})
	require.NoError(t, err)
	assert.Equal(t, "p: go\n", string(out))

	err = yaml.Unmarshal([]byte("phases: [blue]"), &doc)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	err = yaml.Unmarshal([]byte("phases: [[go]]"), &doc)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestApproach(t *testing.T) {
	assert.Equal(t, [4]Approach{NorthToSouth, SouthToNorth, EastToWest, WestToEast}, Approaches)
	assert.Equal(t, "west_to_east", WestToEast.String())
	assert.True(t, SouthToNorth.NorthSouth())
	assert.False(t, EastToWest.NorthSouth())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "7", IntersectionID(7).String())
}
