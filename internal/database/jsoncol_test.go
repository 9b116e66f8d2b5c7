package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalJSON(t *testing.T) {
	data, err := MarshalOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = MarshalOptional(map[string]interface{}{"glasses": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"glasses":3}`, string(data))

	var decoded map[string]interface{}
	require.NoError(t, UnmarshalOptional(nil, &decoded))
	assert.Nil(t, decoded)

	require.NoError(t, UnmarshalOptional(data, &decoded))
	assert.Equal(t, float64(3), decoded["glasses"])

	err = UnmarshalOptional([]byte("{"), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseJSON)
}
