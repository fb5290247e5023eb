package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	// When: creating the default state
	state := NewGameState()

	// Then: it holds one empty snapshot and is valid
	require.Len(t, state.History, 1)
	assert.Equal(t, 0, state.CurrentStep)
	assert.Equal(t, Board{}, state.Current())
	assert.NoError(t, state.Validate())
}

func TestParseState(t *testing.T) {
	t.Run("Valid blob", func(t *testing.T) {
		// Given: a persisted blob with two snapshots
		blob := `{"history":[[null,null,null,null,null,null,null,null,null],[null,null,null,null,"X",null,null,null,null]],"currentStep":1}`

		// When: parsing it
		state, err := ParseState([]byte(blob))
		require.NoError(t, err)

		// Then: the state matches the blob
		expectedState := GameState{
			History:     []Board{{}, Board{}.WithMark(4, PlayerX)},
			CurrentStep: 1,
		}

		assert.Equal(t, expectedState, state)
		assert.True(t, IsValidState([]byte(blob)))
	})

	invalid := map[string]string{
		"not json":               `{"history":`,
		"null":                   `null`,
		"empty object":           `{}`,
		"empty history":          `{"history":[],"currentStep":0}`,
		"missing current step":   `{"history":[[null,null,null,null,null,null,null,null,null]]}`,
		"negative current step":  `{"history":[[null,null,null,null,null,null,null,null,null]],"currentStep":-1}`,
		"current step too large": `{"history":[[null,null,null,null,null,null,null,null,null]],"currentStep":1}`,
		"fractional step":        `{"history":[[null,null,null,null,null,null,null,null,null]],"currentStep":0.5}`,
		"short snapshot":         `{"history":[[null,null,null]],"currentStep":0}`,
		"long snapshot":          `{"history":[[null,null,null,null,null,null,null,null,null,null]],"currentStep":0}`,
		"unknown marker":         `{"history":[[null,null,null,null,"Z",null,null,null,null]],"currentStep":0}`,
		"empty string marker":    `{"history":[[null,null,null,null,"",null,null,null,null]],"currentStep":0}`,
		"numeric marker":         `{"history":[[null,null,null,null,1,null,null,null,null]],"currentStep":0}`,
		"history is an object":   `{"history":{"0":[]},"currentStep":0}`,
	}

	for name, blob := range invalid {
		t.Run("Rejects "+name, func(t *testing.T) {
			// When: parsing a malformed blob
			_, err := ParseState([]byte(blob))

			// Then: ErrInvalidState is returned
			require.ErrorIs(t, err, apperror.ErrInvalidState)
			assert.False(t, IsValidState([]byte(blob)))
		})
	}
}

func TestGameState_RoundTrip(t *testing.T) {
	// Given: a state with a rewound cursor
	state := GameState{
		History: []Board{
			{},
			Board{}.WithMark(0, PlayerX),
			Board{}.WithMark(0, PlayerX).WithMark(8, PlayerO),
		},
		CurrentStep: 1,
	}

	// When: encoding and decoding it
	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded GameState
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	// Then: the decoded state is equal to the original
	assert.Equal(t, state, decoded)
	assert.JSONEq(t, `{
		"history": [
			[null,null,null,null,null,null,null,null,null],
			["X",null,null,null,null,null,null,null,null],
			["X",null,null,null,null,null,null,null,"O"]
		],
		"currentStep": 1
	}`, string(data))
}

func TestGameState_Validate(t *testing.T) {
	t.Run("Empty history", func(t *testing.T) {
		err := GameState{}.Validate()
		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		state := GameState{History: []Board{{Mark("?")}}}

		err := state.Validate()
		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})
}
