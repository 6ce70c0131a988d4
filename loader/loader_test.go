package loader_test

import (
	"bytes"
	"testing"

	"github.com/halfdan-ek/urcasm/loader"
	"github.com/halfdan-ek/urcasm/resolve"
	"github.com/halfdan-ek/urcasm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	src := "LOD R1 .data\nJMP .end\nHLT\n.data\nDW 42\n.end\nHLT\n"
	toks := token.NewLexer(src).Tokenize()
	prog, errs := resolve.Parse(toks, src)
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())

	img := loader.FromProgram(prog)

	var buf bytes.Buffer
	require.NoError(t, loader.Save(&buf, img))

	got, err := loader.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, img.Headers, got.Headers)
	assert.Equal(t, img.Memory, got.Memory)
	require.Len(t, got.Instructions, len(img.Instructions))
	for i := range img.Instructions {
		assert.Equal(t, img.Instructions[i], got.Instructions[i])
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := loader.Load(bytes.NewReader([]byte("not-an-image-at-all")))
	assert.Error(t, err)
}
