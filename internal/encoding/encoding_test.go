package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/encoding"
)

func TestToUTF8_Passthrough(t *testing.T) {
	// Valid UTF-8 with French characters should pass through unchanged.
	input := "Libellé;Montant\nCafé;12,50\nDépôt;-3,00\n"
	r, err := encoding.ToUTF8(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestToUTF8_Latin1(t *testing.T) {
	// Windows-1252 encoded "Libellé;Montant\n" (é = 0xE9).
	latin1Bytes := []byte{
		'L', 'i', 'b', 'e', 'l', 'l', 0xE9, ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', '\n',
	}

	r, err := encoding.ToUTF8(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Libellé;Montant\n", string(got))
}

func TestToUTF8_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Libellé;Montant\n")

	r, err := encoding.ToUTF8(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Libellé;Montant\n", string(got))
}

func TestToUTF8_UTF16LE(t *testing.T) {
	// UTF-16LE with BOM.
	input := []byte{0xFF, 0xFE}
	for _, r := range "Date;Montant\n" {
		input = append(input, byte(r), 0x00)
	}

	r, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date;Montant\n", string(got))
}
