package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt(" 42 ").Value)
	assert.True(t, ParseInt("-7").Ok())
	assert.False(t, ParseInt("4x").Ok())
	assert.False(t, ParseInt("").Ok())
}

func TestPrompterReadInt(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("x\n\n12\n"), out)

	n, err := p.ReadInt("Count: ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "Count: Invalid. Count: Invalid. Count: ", out.String())
}

func TestPrompterReadString(t *testing.T) {
	p := NewPrompter(strings.NewReader("  Mirpur 10 \r\n"), &bytes.Buffer{})

	s, err := p.ReadString("Where: ")
	require.NoError(t, err)
	assert.Equal(t, "Mirpur 10", s)
}

func TestPrompterInputClosed(t *testing.T) {
	p := NewPrompter(strings.NewReader("x\n"), &bytes.Buffer{})

	_, err := p.ReadInt("Count: ")
	assert.ErrorIs(t, err, ErrInputClosed)

	_, err = p.ReadString("Where: ")
	assert.ErrorIs(t, err, ErrInputClosed)

	assert.ErrorIs(t, p.Pause(), ErrInputClosed)
}

func TestPrompterPause(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("anything\n"), out)

	require.NoError(t, p.Pause())
	assert.Equal(t, "\nPress Enter to continue...\n", out.String())
}

func TestPrompterLongLines(t *testing.T) {
	long := strings.Repeat("7", 70000)
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader(long+"\n5\n"+long+"\nlast"), out)

	n, err := p.ReadInt("Count: ")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Count: Invalid. Count: ", out.String())

	s, err := p.ReadString("Where: ")
	require.NoError(t, err)
	assert.Len(t, s, 70000)

	s, err = p.ReadString("Where: ")
	require.NoError(t, err)
	assert.Equal(t, "last", s)

	_, err = p.ReadString("Where: ")
	assert.ErrorIs(t, err, ErrInputClosed)
}
