package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"łatwy", "średni"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["łatwy","średni"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringList_Scan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["Podhale","Jura"]`))
	assert.Equal(t, StringList{"Podhale", "Jura"}, l)

	require.NoError(t, l.Scan([]byte(`["góry"]`)))
	assert.Equal(t, StringList{"góry"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan(""))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan("null"))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not json"))
}

func TestStringList_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(StringList(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = json.Marshal(StringList{"rower"})
	require.NoError(t, err)
	assert.Equal(t, `["rower"]`, string(b))
}
