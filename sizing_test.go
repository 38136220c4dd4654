package squash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroReader never ends; it models a decoder producing unbounded output.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestDecodeSizeHint(t *testing.T) {
	require.Equal(t, minDecodeAlloc, decodeSizeHint(0))
	require.Equal(t, minDecodeAlloc, decodeSizeHint(200))
	require.Equal(t, 4096, decodeSizeHint(1024))
	require.Equal(t, 400000, decodeSizeHint(100000))
}

func TestReadBounded_ExactFit(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 2048)
	out, err := readBounded(bytes.NewReader(payload), 2048)
	require.NoError(t, err)
	require.Equal(t, payload, out)
	require.Equal(t, 2048, cap(out), "an exact hint must not trigger growth")
}

func TestReadBounded_OneByteOver(t *testing.T) {
	payload := bytes.Repeat([]byte{0xCD}, 2049)
	out, err := readBounded(bytes.NewReader(payload), 2048)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestReadBounded_GrowsPreservingContent(t *testing.T) {
	payload := make([]byte, 100<<10)
	for i := range payload {
		payload[i] = byte(i)
	}
	out, err := readBounded(bytes.NewReader(payload), minDecodeAlloc)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestReadBounded_ShortInputBelowHint(t *testing.T) {
	out, err := readBounded(bytes.NewReader([]byte("tiny")), 0)
	require.NoError(t, err)
	require.Equal(t, []byte("tiny"), out)
}

func TestReadBounded_GivesUpAfterRetryBudget(t *testing.T) {
	_, err := readBounded(zeroReader{}, minDecodeAlloc)
	require.Error(t, err)
	require.True(t, IsBufferTooSmall(err))
}
