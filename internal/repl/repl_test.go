package repl

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/vchandela/btree/btree"
)

func newTestCli(input string) (*Cli, *bytes.Buffer) {
	var out bytes.Buffer
	tree := btree.New[int64](btree.WithDegree(2))
	scanner := bufio.NewScanner(strings.NewReader(input))
	return NewCli(scanner, &out, tree, zerolog.Nop()), &out
}

func TestInsertAndGet(t *testing.T) {
	c, out := newTestCli("")

	assert.True(t, c.Execute("INSERT 1 2 3 4"))
	assert.Contains(t, out.String(), "[[1] 2 [3 4]]")

	out.Reset()
	c.Execute("get 4")
	assert.Equal(t, "4 found at index 1 of a leaf node\n", out.String())

	out.Reset()
	c.Execute("GET 2")
	assert.Equal(t, "2 found at index 0 of a internal node\n", out.String())

	out.Reset()
	c.Execute("GET 9")
	assert.Equal(t, "Key not found.\n", out.String())
}

func TestSetAliasAndDuplicates(t *testing.T) {
	c, out := newTestCli("")
	c.Execute("SET 7")
	out.Reset()

	c.Execute("SET 7")
	assert.Contains(t, out.String(), "Key 7 already exists.")
}

func TestDelete(t *testing.T) {
	c, out := newTestCli("")
	c.Execute("INSERT 1 2 3 4 5 6")
	out.Reset()

	c.Execute("DEL 2 42")
	assert.Equal(t, "Key 42 not found.\n[[1 3] 4 [5 6]]\n", out.String())
}

func TestRangeStatsCheckClear(t *testing.T) {
	c, out := newTestCli("")
	c.Execute("INSERT 10 20 30 40 50")

	out.Reset()
	c.Execute("RANGE 15 45")
	assert.Equal(t, "[20 30 40]\n", out.String())

	out.Reset()
	c.Execute("STATS")
	assert.Equal(t, "keys=5 height=2 nodes=3 degree=2\n", out.String())

	out.Reset()
	c.Execute("CHECK")
	assert.Equal(t, "OK\n", out.String())

	out.Reset()
	c.Execute("CLEAR")
	c.Execute("STATS")
	assert.Equal(t, "OK\nkeys=0 height=1 nodes=1 degree=2\n", out.String())
}

func TestShow(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	c, out := newTestCli("")
	c.Execute("INSERT 1 2 3 4")
	out.Reset()

	c.Execute("SHOW")
	assert.Equal(t, "L0  [ 2 ]\nL1  [ 1 ] [ 3 4 ]\n", out.String())
}

func TestBadInput(t *testing.T) {
	c, out := newTestCli("")

	tests := []struct {
		line string
		want string
	}{
		{"FLY 1", "Unknown command \"fly\"\n"},
		{"INSERT", "Usage: INSERT <key>...\n"},
		{"DEL", "Usage: DEL <key>...\n"},
		{"GET 1 2", "Usage: GET <key>\n"},
		{"RANGE 1", "Usage: RANGE <lo> <hi>\n"},
		{"INSERT one", "Invalid key \"one\": keys are 64-bit integers\n"},
	}
	for _, tt := range tests {
		out.Reset()
		assert.True(t, c.Execute(tt.line))
		assert.Equal(t, tt.want, out.String(), tt.line)
	}

	out.Reset()
	assert.True(t, c.Execute(`INSERT "1`))
	assert.Contains(t, out.String(), "Cannot parse input")
	assert.Equal(t, 0, c.tree.Len())

	out.Reset()
	assert.True(t, c.Execute("   "))
	assert.Empty(t, out.String())
}

func TestStartStopsOnExit(t *testing.T) {
	c, out := newTestCli("INSERT 5\nEXIT\nINSERT 6\n")
	c.Start()

	assert.Contains(t, out.String(), "B-Tree CLI")
	assert.Contains(t, out.String(), "[5]")
	assert.True(t, c.tree.Has(5))
	assert.False(t, c.tree.Has(6), "commands after EXIT must not run")
}

func TestStartStopsAtEndOfInput(t *testing.T) {
	c, _ := newTestCli("INSERT 5\nINSERT 6")
	c.Start()

	assert.Equal(t, 2, c.tree.Len())
}
