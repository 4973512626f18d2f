package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))

	s, err := GetSimpleText(r, "Enter something", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", s)
	require.Contains(t, out.String(), "Enter something")
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	s, err := GetSimpleText(r, "p", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", s)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer

	n, err := GetInt(bufio.NewReader(strings.NewReader("42\n")), "p", &out)
	require.NoError(t, err)
	require.Equal(t, 42, n)

	_, err = GetInt(bufio.NewReader(strings.NewReader("forty-two\n")), "p", &out)
	require.Error(t, err)
}

func TestGetCommaList(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(" graphs , trees ,, \n"))

	items, err := GetCommaList(r, "p", &out)
	require.NoError(t, err)
	require.Equal(t, []string{"graphs", "trees"}, items)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret1"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("secret1"), pw)
	require.Contains(t, out.String(), "Enter password")
}
