package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	SlotIndex int    `json:"slotIndex" codec:"slotIndex"`
	ID        int    `json:"id" codec:"id"`
	Name      string `json:"name" codec:"name"`
}

func TestCodecs(t *testing.T) {
	in := []entry{{SlotIndex: 0, ID: 1, Name: "Flour"}, {SlotIndex: 4, ID: 2, Name: "Egg"}}

	for _, name := range []string{NameJSON, NameMsgpack} {
		t.Run(name, func(t *testing.T) {
			c, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out []entry
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := JSON{}.Marshal(entry{SlotIndex: 2, ID: 7, Name: "Milk"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"slotIndex":2,"id":7,"name":"Milk"}`, string(data))
}

func TestUnmarshalGarbage(t *testing.T) {
	var out []entry
	assert.Error(t, JSON{}.Unmarshal([]byte("{not json"), &out))
	assert.Error(t, Msgpack{}.Unmarshal([]byte{0xc1}, &out))
}

func TestLookup(t *testing.T) {
	c, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, NameJSON, c.Name())

	_, err = Lookup("protobuf")
	assert.ErrorIs(t, err, ErrUnsupported)
}
