package squash

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testPayloads covers the shapes that stress codecs differently: empty,
// tiny, highly repetitive, and incompressible random data.
func testPayloads(t *testing.T) map[string][]byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 128<<10)
	_, err := rng.Read(random)
	require.NoError(t, err)

	return map[string][]byte{
		"empty":      {},
		"tiny":       []byte("a"),
		"text":       []byte("Hello World"),
		"repetitive": bytes.Repeat([]byte("squash all the bytes "), 4096),
		"random":     random,
	}
}

func TestCompress_RoundTripAllAlgorithms(t *testing.T) {
	for _, alg := range Algorithms() {
		for name, payload := range testPayloads(t) {
			compressed, err := Compress(payload, alg, DefaultLevel)
			require.NoError(t, err, "%s/%s compress", alg, name)
			require.NotEmpty(t, compressed, "%s/%s produced empty container", alg, name)

			restored, err := Decompress(compressed, alg)
			require.NoError(t, err, "%s/%s decompress", alg, name)
			require.Equal(t, payload, restored, "%s/%s round trip", alg, name)
		}
	}
}

func TestCompress_RoundTripEveryLevel(t *testing.T) {
	payload := bytes.Repeat([]byte("level sweep payload. "), 512)
	for _, alg := range Algorithms() {
		for level := MinLevel; level <= MaxLevel; level++ {
			compressed, err := Compress(payload, alg, level)
			require.NoError(t, err, "%s level %d", alg, level)

			restored, err := Decompress(compressed, alg)
			require.NoError(t, err, "%s level %d", alg, level)
			require.Equal(t, payload, restored, "%s level %d", alg, level)
		}
	}
}

func TestCompress_HelloWorldLevel5(t *testing.T) {
	payload := []byte("Hello World")
	require.Len(t, payload, 11)

	for _, alg := range Algorithms() {
		compressed, err := Compress(payload, alg, 5)
		require.NoError(t, err, "%s", alg)
		require.NotEmpty(t, compressed, "%s", alg)

		restored, err := Decompress(compressed, alg)
		require.NoError(t, err, "%s", alg)
		require.Equal(t, payload, restored, "%s", alg)
	}
}

func TestCompress_RejectsInvalidLevel(t *testing.T) {
	for _, alg := range Algorithms() {
		for _, level := range []Level{-1, 0, 11, 100} {
			_, err := Compress([]byte("data"), alg, level)
			require.Error(t, err, "%s level %d", alg, level)
			require.True(t, IsInvalidArgument(err), "%s level %d: %v", alg, level, err)
		}
	}
}

func TestCompress_UnsupportedAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{0, 42, 255} {
		_, err := Compress([]byte("data"), alg, DefaultLevel)
		require.Error(t, err)
		require.True(t, IsInvalidArgument(err), "%v", err)

		_, err = Decompress([]byte("data"), alg)
		require.Error(t, err)
		require.True(t, IsInvalidArgument(err), "%v", err)
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	for _, alg := range Algorithms() {
		_, err := Decompress(nil, alg)
		require.Error(t, err, "%s", alg)
		require.True(t, IsInvalidArgument(err), "%s: %v", alg, err)
	}
}

func TestCompressor_DefaultLevel(t *testing.T) {
	c, err := New(Zstd)
	require.NoError(t, err)
	require.Equal(t, Zstd, c.Algorithm())
	require.Equal(t, DefaultLevel, c.Level())
}

func TestCompressor_WithLevel(t *testing.T) {
	c, err := New(Zlib, WithLevel(9))
	require.NoError(t, err)
	require.Equal(t, Level(9), c.Level())

	payload := []byte("compressor object round trip")
	compressed, err := c.Compress(payload)
	require.NoError(t, err)
	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestCompressor_RejectsBadConfig(t *testing.T) {
	_, err := New(Algorithm(99))
	require.True(t, IsInvalidArgument(err))

	_, err = New(Zstd, WithLevel(0))
	require.True(t, IsInvalidArgument(err))
}

func TestCompress_OutputsAreIndependent(t *testing.T) {
	// Buffer ownership transfers to the caller: mutating one result must
	// not affect a later operation.
	payload := []byte("ownership check payload")
	first, err := Compress(payload, Zlib, DefaultLevel)
	require.NoError(t, err)
	clone := append([]byte(nil), first...)

	second, err := Compress(payload, Zlib, DefaultLevel)
	require.NoError(t, err)
	for i := range first {
		first[i] = 0xAA
	}
	require.Equal(t, clone, second)
}
