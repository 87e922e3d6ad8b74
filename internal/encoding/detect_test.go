package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfontes/ohm/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date;Type;Category;Amount\n12-08-2026;revenue;ventas electrónica;1.250,00\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "eletrónica" with ó as Windows-1252 0xF3.
	input := []byte{
		'e', 'l', 'e', 't', 'r', 0xF3, 'n', 'i', 'c', 'a', ';', '5', '0', '0', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "eletrónica;500\n", string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := []byte("Date;Amount\n")
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "A;1\n" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'A', 0x00, ';', 0x00, '1', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "A;1\n", string(got))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
