package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  joe@ucla.edu \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Email?", &out)
	require.NoError(t, err)
	assert.Equal(t, "joe@ucla.edu", got)
	assert.Equal(t, "Email?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret", nil)
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubPassword(t, "", errors.New("boom"))
	var out bytes.Buffer
	_, err := GetPassword(&out)
	assert.EqualError(t, err, "boom")
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	oldRead, oldFd := readPassword, stdinFd
	readPassword = func(int) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
	stdinFd = func() int { return 0 }
	t.Cleanup(func() { readPassword, stdinFd = oldRead, oldFd })
}
