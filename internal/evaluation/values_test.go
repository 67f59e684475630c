package evaluation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tok, ok := ParseToken(" Yes ")
	assert.True(t, ok)
	assert.Equal(t, Yes, tok)

	tok, ok = ParseToken("no")
	assert.True(t, ok)
	assert.Equal(t, No, tok)

	_, ok = ParseToken("da")
	assert.False(t, ok)
}

func TestTokenBoolMapping(t *testing.T) {
	assert.True(t, Yes.Bool())
	assert.False(t, No.Bool())
	assert.Equal(t, Yes, TokenOf(true))
	assert.Equal(t, No, TokenOf(false))
}

func TestValuesUnmarshalCoerces(t *testing.T) {
	var v Values
	err := json.Unmarshal([]byte(`{
		"age": 30,
		"weight": "65",
		"height": 170.5,
		"smoker": "YES",
		"first_name": "  Ana ",
		"profession": "",
		"pregnancy_weeks": null
	}`), &v)
	require.NoError(t, err)

	assert.Equal(t, 30, v["age"])
	assert.Equal(t, 65.0, v["weight"])
	assert.Equal(t, 170.5, v["height"])
	assert.Equal(t, Yes, v["smoker"])
	assert.Equal(t, "Ana", v["first_name"])
	assert.NotContains(t, v, "profession")
	assert.NotContains(t, v, "pregnancy_weeks")
}

func TestValuesUnmarshalRejects(t *testing.T) {
	var v Values
	err := json.Unmarshal([]byte(`{"favourite_colour": "blue"}`), &v)
	assert.ErrorIs(t, err, ErrUnknownField)

	err = json.Unmarshal([]byte(`{"age": 30.5}`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = json.Unmarshal([]byte(`{"age": 1e20}`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = json.Unmarshal([]byte(`{"weight": "heavy"}`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = json.Unmarshal([]byte(`{"stroke": "perhaps"}`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValuesJSONRoundTrip(t *testing.T) {
	in := completeValues()
	in["smoker"] = Yes
	in["cigarettes_per_day"] = 12

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Values
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
