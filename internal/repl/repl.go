// Package repl is an interactive shell over an int64 B-tree.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"github.com/vchandela/btree/btree"
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	log        zerolog.Logger
	mu         sync.Mutex // the tree itself has no locking
	tree       *btree.Btree[int64]
	visualizer *btree.Visualizer[int64]
}

func NewCli(s *bufio.Scanner, out io.Writer, t *btree.Btree[int64], log zerolog.Logger) *Cli {
	v := &btree.Visualizer[int64]{
		Tree: t,
	}
	return &Cli{scanner: s, out: out, log: log, tree: t, visualizer: v}
}

// Start reads commands until EXIT or the end of input.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.Execute(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
	if err := c.scanner.Err(); err != nil {
		c.log.Error().Err(err).Msg("reading input")
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  INSERT <key>...    Insert keys into the B-Tree (alias SET)
  DEL <key>...       Remove keys from the B-Tree
  GET <key>          Look a key up and report where it lives
  RANGE <lo> <hi>    List keys in [lo, hi)
  SHOW               Draw the tree level by level
  STATS              Print size, height and node count
  CHECK              Verify every structural invariant
  CLEAR              Remove all keys
  HELP               Show this message
  EXIT               Terminate this session`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// Execute runs a single command line and reports whether the session should
// continue.
func (c *Cli) Execute(line string) bool {
	fields, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(c.out, "Cannot parse input: %v\n", err)
		return true
	}
	if len(fields) < 1 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "insert", "set":
		c.processInsertCommand(fields[1:])
	case "del", "delete":
		c.processDeleteCommand(fields[1:])
	case "get", "search":
		c.processGetCommand(fields[1:])
	case "range":
		c.processRangeCommand(fields[1:])
	case "show":
		fmt.Fprintln(c.out, c.visualizer.Visualize())
	case "stats":
		fmt.Fprintf(c.out, "keys=%d height=%d nodes=%d degree=%d\n",
			c.tree.Len(), c.tree.Height(), c.tree.Nodes(), c.tree.Degree())
	case "check":
		if err := c.tree.Verify(); err != nil {
			fmt.Fprintln(c.out, err)
			return true
		}
		fmt.Fprintln(c.out, "OK")
	case "clear":
		c.tree.Clear()
		fmt.Fprintln(c.out, "OK")
	case "help":
		c.printHelp()
	case "exit", "quit":
		return false
	}
	return true
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: INSERT <key>...")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	for _, k := range keys {
		inserted, err := c.tree.Insert(k)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Int64("key", k).Msg("insert failed")
			fmt.Fprintf(c.out, "Cannot insert %d: %v\n", k, err)
			return
		case !inserted:
			fmt.Fprintf(c.out, "Key %d already exists.\n", k)
		}
	}
	fmt.Fprintln(c.out, c.tree)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>...")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	for _, k := range keys {
		if !c.tree.Delete(k) {
			fmt.Fprintf(c.out, "Key %d not found.\n", k)
		}
	}
	fmt.Fprintln(c.out, c.tree)
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	pos, found := c.tree.Search(keys[0])
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	kind := "internal"
	if pos.Leaf() {
		kind = "leaf"
	}
	fmt.Fprintf(c.out, "%d found at index %d of a %s node\n", pos.Key(), pos.Index(), kind)
}

func (c *Cli) processRangeCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: RANGE <lo> <hi>")
		return
	}
	bounds, ok := c.parseKeys(args)
	if !ok {
		return
	}
	var b strings.Builder
	c.tree.AscendRange(bounds[0], bounds[1], func(k int64) bool {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(k, 10))
		return true
	})
	fmt.Fprintf(c.out, "[%s]\n", b.String())
}

func (c *Cli) parseKeys(args []string) ([]int64, bool) {
	keys := make([]int64, 0, len(args))
	for _, a := range args {
		k, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid key %q: keys are 64-bit integers\n", a)
			return nil, false
		}
		keys = append(keys, k)
	}
	return keys, true
}
