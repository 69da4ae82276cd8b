// Package fsusage reads per-dataset filesystem usage by shelling out to
// zfs(8) and parsing its machine-readable list output.
package fsusage

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Usage is the space accounting for one dataset, in bytes.
type Usage struct {
	Dataset string
	Used    uint64
	Avail   uint64
}

// Reader lists filesystem usage for all datasets.
type Reader interface {
	List(ctx context.Context) ([]Usage, error)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CmdReader reads dataset usage via `zfs list`.
type CmdReader struct {
	logger *zap.Logger
	run    runFunc
}

var _ Reader = (*CmdReader)(nil)

// NewCmdReader returns a Reader backed by the zfs command.
func NewCmdReader(logger *zap.Logger) *CmdReader {
	return &CmdReader{
		logger: logger,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// List returns usage for every dataset. The -Hp flags give tab-separated
// exact byte values with no header. A line that does not parse fails the
// whole read: usage snapshots are all-or-nothing.
func (r *CmdReader) List(ctx context.Context) ([]Usage, error) {
	out, err := r.run(ctx, "zfs", "list", "-Hp", "-o", "name,used,avail")
	if err != nil {
		return nil, fmt.Errorf("zfs list: %w", err)
	}

	var usages []Usage
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(string(line), "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("zfs list: unexpected line %q", line)
		}
		used, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("zfs list: bad used value %q: %w", fields[1], err)
		}
		avail, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("zfs list: bad avail value %q: %w", fields[2], err)
		}
		usages = append(usages, Usage{Dataset: fields[0], Used: used, Avail: avail})
	}
	return usages, nil
}
