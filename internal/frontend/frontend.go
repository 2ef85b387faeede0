// Package frontend reads a whitespace separated stream of updates and queries,
// validates them and dispatches them to a sqrtrank index.
//
// The stream starts with "n q" followed by n initial values, then up to q
// operations. Tokens are whitespace separated and may span lines:
//
//	U idx val    set the value at idx to val
//	Q L R k      print the k-th smallest value among indices [L, R]
package frontend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	sqrtrank "github.com/AlexWan0/go-sqrtrank"
)

// maxLineBytes bounds a single input line; all n initial values may sit
// on one line.
const maxLineBytes = 64 << 20

// Config controls the front end.
type Config struct {
	// Prompt prints the interactive banner and prompts.
	Prompt bool
	// Options are passed to the index when it is built.
	Options []sqrtrank.Option
	Logger  *zap.Logger
}

// Frontend processes one command stream.
type Frontend struct {
	cfg     Config
	lines   *bufio.Scanner
	pending []string
	out     *bufio.Writer
	werr    error
	logger  *zap.Logger

	index sqrtrank.OrderStatistics[int64]
	num   int
}

// New returns a Frontend reading from in and writing results to out.
func New(in io.Reader, out io.Writer, cfg Config) *Frontend {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lines := bufio.NewScanner(in)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Frontend{
		cfg:    cfg,
		lines:  lines,
		out:    bufio.NewWriter(out),
		logger: logger,
	}
}

// Index returns the index built by Run, or nil if the header was rejected.
func (f *Frontend) Index() sqrtrank.OrderStatistics[int64] {
	return f.index
}

func (f *Frontend) printf(format string, args ...interface{}) {
	if f.werr != nil {
		return
	}
	_, f.werr = fmt.Fprintf(f.out, format, args...)
}

func (f *Frontend) prompt(format string, args ...interface{}) {
	if f.cfg.Prompt {
		f.printf(format, args...)
	}
}

func (f *Frontend) flush() error {
	if f.werr != nil {
		return errors.Wrap(f.werr, "write output")
	}
	if err := f.out.Flush(); err != nil {
		return errors.Wrap(err, "flush output")
	}
	return nil
}

// nextToken returns the next whitespace separated token, reading lines as needed.
func (f *Frontend) nextToken() (string, bool) {
	for len(f.pending) == 0 {
		if !f.lines.Scan() {
			return "", false
		}
		f.pending = strings.Fields(f.lines.Text())
	}
	tok := f.pending[0]
	f.pending = f.pending[1:]
	return tok, true
}

// unread puts tok back in front of the remaining tokens of the current line.
func (f *Frontend) unread(tok string) {
	f.pending = append([]string{tok}, f.pending...)
}

// discardLine drops whatever is left of the current line.
func (f *Frontend) discardLine() {
	f.pending = nil
}

func (f *Frontend) nextInt() (int64, bool) {
	tok, ok := f.nextToken()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	return v, err == nil
}

// Run processes the whole stream. Malformed input is reported on the output
// stream; the returned error is reserved for I/O failures and cancellation.
func (f *Frontend) Run(ctx context.Context) error {
	err := f.run(ctx)
	if ferr := f.flush(); err == nil {
		err = ferr
	}
	if err == nil {
		if serr := f.lines.Err(); serr != nil {
			err = errors.Wrap(serr, "read input")
		}
	}
	return err
}

func (f *Frontend) run(ctx context.Context) error {
	f.prompt("=== Range k-th Ranked Student Score (interactive) ===\n")
	f.prompt("You will first enter: n q\n")
	f.prompt("Then enter n integers (initial scores for roll 1..n) on one or more lines.\n")
	f.prompt("Then enter q operations, each on its own line:\n")
	f.prompt("  U idx val    -- update student at roll idx to score val\n")
	f.prompt("  Q L R k      -- query k-th smallest score in roll range [L,R]\n")
	f.prompt("\nExample input (paste after entering n q and array):\n")
	f.prompt("Q 1 5 2\nU 3 12\nQ 1 5 2\nQ 4 8 3\nQ 1 8 5\n\n")
	f.prompt("Enter n and q: ")
	if err := f.flush(); err != nil {
		return err
	}

	n, ok1 := f.nextInt()
	q, ok2 := f.nextInt()
	if !ok1 || !ok2 {
		f.printf("Invalid input. Exiting.\n")
		return nil
	}
	if n <= 0 {
		f.printf("n out of range. Exiting.\n")
		return nil
	}

	f.prompt("Enter %d initial scores (space separated or newline separated):\n", n)
	if err := f.flush(); err != nil {
		return err
	}
	vals := make([]int64, 0, min(n, 1<<16))
	for i := int64(0); i < n; i++ {
		v, ok := f.nextInt()
		if !ok {
			f.printf("Insufficient initial values. Exiting.\n")
			return nil
		}
		vals = append(vals, v)
	}

	f.num = len(vals)
	f.index = sqrtrank.NewSynchronized(sqrtrank.New(vals, f.cfg.Options...))
	f.logger.Info("index built", zap.Int("n", f.num), zap.Int64("ops", q), zap.Int("distinct", f.index.Dim()))

	f.prompt("\nNow enter %d operations (one per line):\n", q)
	if err := f.flush(); err != nil {
		return err
	}
	for done := int64(0); done < q; {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, ok := f.nextToken()
		if !ok {
			break
		}
		done++
		f.dispatch(tok)
		if err := f.flush(); err != nil {
			return err
		}
	}
	f.prompt("\nAll operations processed. Exiting.\n")
	return nil
}

// dispatch executes one operation. The first byte of tok selects the
// operation; anything glued to it is read as the first argument.
func (f *Frontend) dispatch(tok string) {
	op := tok[0]
	if rest := tok[1:]; rest != "" {
		f.unread(rest)
	}
	switch op {
	case 'U':
		f.update()
	case 'Q':
		f.query()
	default:
		f.logger.Debug("unknown operation", zap.String("op", string(op)))
		f.discardLine()
		f.printf("Unknown operation '%c' ignored\n", op)
	}
}

// readInts reads want integer arguments, which may continue on later lines.
// A token that is not an integer stays in the stream and is read as the
// next operation.
func (f *Frontend) readInts(want int) ([]int64, bool) {
	out := make([]int64, want)
	for i := range out {
		tok, ok := f.nextToken()
		if !ok {
			return nil, false
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			f.unread(tok)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (f *Frontend) update() {
	xs, ok := f.readInts(2)
	if !ok {
		f.printf("Bad update input, skipping\n")
		return
	}
	idx, val := xs[0], xs[1]
	if idx < 1 || idx > int64(f.num) {
		f.printf("Update idx out of range, skipping\n")
		return
	}
	if err := f.index.Update(int(idx), val); err != nil {
		f.logger.Error("update failed", zap.Int64("idx", idx), zap.Error(err))
		f.printf("Update idx out of range, skipping\n")
		return
	}
	f.printf("Updated roll %d to %d\n", idx, val)
}

func (f *Frontend) query() {
	xs, ok := f.readInts(3)
	if !ok {
		f.printf("Bad query input, skipping\n")
		return
	}
	l, r, k := xs[0], xs[1], xs[2]
	if l < 1 {
		l = 1
	}
	if r > int64(f.num) {
		r = int64(f.num)
	}
	if l > r || k <= 0 || k > r-l+1 {
		f.printf("Not found\n")
		return
	}
	v, found := f.index.Kth(int(l), int(r), int(k))
	if !found {
		f.printf("Not found\n")
		return
	}
	f.printf("Answer: %d\n", v)
}
