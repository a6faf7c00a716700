package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/rediscache"
)

// cliTxn is a Transaction backed by command-line input. Report copies the
// payload because the adapter's view is only valid during the call.
type cliTxn struct {
	key    []byte
	size   uint64
	offset uint64
	buf    *rediscache.BlockBuffer

	outcome rediscache.Outcome
	data    []byte
	n       uint64
}

func (t *cliTxn) CacheKey() []byte                  { return t.key }
func (t *cliTxn) BufferInfo() (size, offset uint64) { return t.size, t.offset }

func (t *cliTxn) OutgoingBuffer() rediscache.Buffer {
	if t.buf == nil {
		return nil
	}
	return t.buf
}

func (t *cliTxn) Report(o rediscache.Outcome, data []byte, n uint64) int {
	t.outcome = o
	t.data = append(t.data[:0], data...)
	t.n = n
	return 0
}

// withSession opens a session, runs fn and always closes it.
func withSession(a *app, fn func(ctx context.Context, s *session) error) error {
	ctx := context.Background()
	s, err := openSession(ctx, a)
	if err != nil {
		return err
	}
	defer s.close(ctx)
	return fn(ctx, s)
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Activate the adapter and report whether the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(a, func(_ context.Context, s *session) error {
				if s.adapter == nil {
					return errDisabled
				}
				fmt.Fprintln(cmd.OutOrStdout(), "PONG")
				return nil
			})
		},
	}
}

func newLookupCmd(a *app) *cobra.Command {
	var offset, size uint64
	cmd := &cobra.Command{
		Use:   "lookup <key>",
		Short: "Send one lookup event; size 0 only checks existence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(a, func(ctx context.Context, s *session) error {
				txn := &cliTxn{key: []byte(args[0]), size: size, offset: offset}
				if _, err := s.dispatch(ctx, rediscache.EventLookup, txn); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", txn.outcome, txn.n)
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&offset, "offset", 0, "window offset")
	cmd.Flags().Uint64Var(&size, "size", 0, "window size (0 = existence check)")
	return cmd
}

func newReadCmd(a *app) *cobra.Command {
	var offset, chunk uint64
	cmd := &cobra.Command{
		Use:   "read <key>",
		Short: "Stream a value to stdout with read events of --chunk bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk == 0 {
				return fmt.Errorf("--chunk must be positive")
			}
			return withSession(a, func(ctx context.Context, s *session) error {
				w := bufio.NewWriter(cmd.OutOrStdout())
				defer w.Flush()

				txn := &cliTxn{key: []byte(args[0]), size: chunk, offset: offset}
				for {
					if _, err := s.dispatch(ctx, rediscache.EventRead, txn); err != nil {
						return err
					}
					if _, err := w.Write(txn.data); err != nil {
						return err
					}
					if txn.outcome != rediscache.ReadReady {
						return nil
					}
					txn.offset += txn.n
				}
			})
		},
	}
	cmd.Flags().Uint64Var(&offset, "offset", 0, "start offset")
	cmd.Flags().Uint64Var(&chunk, "chunk", 32*1024, "bytes requested per read event")
	return cmd
}

func newWriteCmd(a *app) *cobra.Command {
	var block int
	cmd := &cobra.Command{
		Use:   "write <key> [file]",
		Short: "Append a file (or stdin) to the stored value with one write event",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if block <= 0 {
				return fmt.Errorf("--block must be positive")
			}
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}
			buf, err := readBlocks(src, block)
			if err != nil {
				return err
			}
			return withSession(a, func(ctx context.Context, s *session) error {
				txn := &cliTxn{key: []byte(args[0]), buf: buf}
				if _, err := s.dispatch(ctx, rediscache.EventWrite, txn); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", txn.outcome, txn.n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&block, "block", 4096, "block size of the scatter buffer")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Send one delete event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(a, func(ctx context.Context, s *session) error {
				txn := &cliTxn{key: []byte(args[0])}
				if _, err := s.dispatch(ctx, rediscache.EventDelete, txn); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), txn.outcome)
				return nil
			})
		},
	}
}

// readBlocks splits r into a scatter buffer of blocks of at most size bytes.
func readBlocks(r io.Reader, size int) (*rediscache.BlockBuffer, error) {
	buf := rediscache.NewBlockBuffer()
	chunk := make([]byte, size)
	for {
		n, err := io.ReadFull(r, chunk)
		if n > 0 {
			_, _ = buf.Write(chunk[:n])
		}
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return buf, nil
		default:
			return nil, err
		}
	}
}
