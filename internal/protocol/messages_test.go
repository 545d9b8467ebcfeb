package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env, err := Encode(TypeSit, Sit{Seat: 2, BuyIn: 500})
	require.NoError(t, err)
	require.Equal(t, TypeSit, env.Type)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	var sit Sit
	require.NoError(t, DecodePayload(decoded, &sit))
	require.Equal(t, 2, sit.Seat)
	require.Equal(t, 500, sit.BuyIn)
}

func TestEncodeWithNilPayloadHasNoPayloadField(t *testing.T) {
	env, err := Encode(TypeStartHand, nil)
	require.NoError(t, err)
	require.Empty(t, env.Payload)
}

func TestDecodePayloadRejectsEmptyPayload(t *testing.T) {
	var a Action
	err := DecodePayload(Envelope{Type: TypeAction}, &a)
	require.Error(t, err)
}
