package kstat

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// runFunc executes a command and returns its stdout. Swappable in tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CmdReader reads kernel statistics via the kstat(8) command.
type CmdReader struct {
	logger *zap.Logger
	run    runFunc
}

var _ Reader = (*CmdReader)(nil)

// NewCmdReader returns a Reader backed by the kstat command.
func NewCmdReader(logger *zap.Logger) *CmdReader {
	return &CmdReader{logger: logger, run: runCommand}
}

// Read invokes kstat -p with filters built from q and parses the output.
// Lines that do not parse are skipped individually; only a failed command
// invocation is an error.
func (r *CmdReader) Read(ctx context.Context, q Query) ([]Record, error) {
	args := []string{"-p"}
	if q.Class != "" {
		args = append(args, "-c", q.Class)
	}
	if q.Module != "" {
		args = append(args, "-m", q.Module)
	}
	if q.Name != "" {
		args = append(args, "-n", q.Name)
	}

	out, err := r.run(ctx, "kstat", args...)
	if err != nil {
		return nil, fmt.Errorf("kstat %s: %w", strings.Join(args, " "), err)
	}
	return r.parse(out, q.Class), nil
}

// parse turns kstat -p output into records. Each line has the form
//
//	module:instance:name:statistic<TAB>value
//
// and consecutive lines for one module:instance:name triple are grouped
// into a single Record. The class is not present in -p output, so it is
// carried over from the query filter.
func (r *CmdReader) parse(out []byte, class string) []Record {
	var (
		records []Record
		index   = make(map[string]int)
	)
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		key, value, ok := strings.Cut(string(line), "\t")
		if !ok {
			r.logger.Debug("skipping unparseable kstat line", zap.ByteString("line", line))
			continue
		}
		parts := strings.SplitN(key, ":", 4)
		if len(parts) != 4 || parts[3] == "" {
			r.logger.Debug("skipping malformed kstat key", zap.String("key", key))
			continue
		}
		instance, err := strconv.Atoi(parts[1])
		if err != nil {
			r.logger.Debug("skipping kstat key with bad instance", zap.String("key", key))
			continue
		}

		triple := parts[0] + ":" + parts[1] + ":" + parts[2]
		i, ok := index[triple]
		if !ok {
			i = len(records)
			index[triple] = i
			records = append(records, Record{
				Module:   parts[0],
				Instance: instance,
				Name:     parts[2],
				Class:    class,
				Fields:   make(map[string]string),
			})
		}
		records[i].Fields[parts[3]] = strings.TrimSpace(value)
	}
	return records
}
