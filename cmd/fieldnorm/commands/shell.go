package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/forta-toolkit/fieldnorm-go/pkg/extract"
	"github.com/forta-toolkit/fieldnorm-go/pkg/fieldpath"
	"github.com/forta-toolkit/fieldnorm-go/pkg/normalize"
)

// Shell is an interactive session over a set of decoded records.
type Shell struct {
	records []any
	current int
	out     io.Writer
	rl      *readline.Instance
}

// NewShell creates a shell writing to out. Run attaches a terminal; Exec
// can be used directly for scripted input.
func NewShell(records []any, out io.Writer) *Shell {
	return &Shell{records: records, out: out}
}

// Run reads commands from the terminal until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.rl = rl
	s.out = rl.Stdout()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			rl.Close()
		case <-done:
		}
	}()

	s.printHelp()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}
		if s.Exec(line) {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "get", "g":
		s.cmdGet(args)
	case "keys", "k":
		s.cmdKeys(args)
	case "record", "rec":
		s.cmdRecord(args)
	case "hex", "int", "bytes", "keccak256":
		s.cmdCoerce(extract.Type(cmd), args)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) prompt() string {
	return fmt.Sprintf("record[%d/%d]> ", s.current, len(s.records))
}

func (s *Shell) record() any {
	if s.current < len(s.records) {
		return s.records[s.current]
	}
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  get <path> [type]   - Resolve a field path on the current record
                        (type: raw, hex, bytes, int, uint64, keccak256)
  keys [path]         - List the keys of the current record or a nested value
  record [n]          - Show or select the current record
  hex <value>         - Normalize a literal to a hex string
  int <value>         - Coerce a literal to an integer
  bytes <value>       - Coerce a literal to bytes
  keccak256 <value>   - Hash a literal with Keccak-256
  quit                - Exit`)
}

func (s *Shell) cmdGet(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.out, "Usage: get <path> [type]")
		return
	}
	p, err := fieldpath.Parse(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	t := extract.TypeRaw
	if len(args) == 2 {
		if t, err = extract.ParseType(args[1]); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
	}

	v := normalize.GetField(s.record(), p, nil, nil)
	out, err := extract.Coerce(v, t, true)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, FormatValue(out))
}

func (s *Shell) cmdKeys(args []string) {
	v := s.record()
	if len(args) > 0 {
		p, err := fieldpath.Parse(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		v = normalize.GetField(v, p, nil, nil)
	}

	keys := containerKeys(v)
	if keys == nil {
		fmt.Fprintln(s.out, "(not a container)")
		return
	}
	for _, k := range keys {
		fmt.Fprintln(s.out, k)
	}
}

func (s *Shell) cmdRecord(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Record %d of %d\n", s.current, len(s.records))
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= len(s.records) {
		fmt.Fprintf(s.out, "Error: record must be between 0 and %d\n", len(s.records)-1)
		return
	}
	s.current = n
	if s.rl != nil {
		s.rl.SetPrompt(s.prompt())
	}
	fmt.Fprintf(s.out, "Selected record %d\n", n)
}

func (s *Shell) cmdCoerce(t extract.Type, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "Usage: %s <value>\n", t)
		return
	}
	out, err := extract.Coerce(literal(args[0]), t, true)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, FormatValue(out))
}

// literal interprets a typed-in value: decimal digits are integers,
// everything else is text.
func literal(arg string) any {
	if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return n
	}
	return arg
}

// containerKeys lists map keys (sorted) or slice indexes of v; nil when v
// is not a container.
func containerKeys(v any) []string {
	switch c := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case map[any]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, fmt.Sprint(k))
		}
		sort.Strings(keys)
		return keys
	case []any:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = fmt.Sprintf("[%d]", i)
		}
		return keys
	}
	return nil
}
