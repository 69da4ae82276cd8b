// Package ntpd queries the local NTP daemon for its system variables and
// peer table via ntpq(8). A daemon that is not running is a legitimate
// state reported through Status.Available, not an error.
package ntpd

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Peer is one row of the daemon's peer table.
type Peer struct {
	Remote string
	RefID  string
	// State is the tally code: "*" system peer, "+" candidate,
	// "-" outlier, "#" backup, " " rejected.
	State   string
	Stratum float64
	When    float64
	Poll    float64
	Reach   float64
	// Delay, Offset and Jitter are in milliseconds, as reported by ntpq.
	Delay  float64
	Offset float64
	Jitter float64
}

// Status is a point-in-time snapshot of the daemon.
type Status struct {
	Available bool
	// Vars holds the system variables from `ntpq -c rv` (frequency,
	// offset, sys_jitter, stratum, ...), raw and unconverted.
	Vars  map[string]string
	Peers []Peer
}

// Float returns a system variable parsed as float64.
func (s Status) Float(key string) (float64, bool) {
	raw, ok := s.Vars[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Reader queries the time daemon.
type Reader interface {
	Status(ctx context.Context) (Status, error)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CmdReader queries the daemon through the ntpq command.
type CmdReader struct {
	logger *zap.Logger
	host   string
	port   int
	run    runFunc
}

var _ Reader = (*CmdReader)(nil)

// NewCmdReader returns a Reader that queries the daemon at host:port.
func NewCmdReader(logger *zap.Logger, host string, port int) *CmdReader {
	return &CmdReader{
		logger: logger,
		host:   host,
		port:   port,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Status queries system variables and the peer table. A failed ntpq
// invocation means the daemon is not answering and yields an unavailable
// status with a nil error; malformed output from a running daemon is an
// error.
func (r *CmdReader) Status(ctx context.Context) (Status, error) {
	hostArg := fmt.Sprintf("%s:%d", r.host, r.port)

	rv, err := r.run(ctx, "ntpq", "-c", "rv", hostArg)
	if err != nil {
		r.logger.Debug("ntpq query failed, reporting daemon unavailable", zap.Error(err))
		return Status{Available: false}, nil
	}
	vars := parseVars(string(rv))

	pn, err := r.run(ctx, "ntpq", "-pn", hostArg)
	if err != nil {
		r.logger.Debug("ntpq peer query failed, reporting daemon unavailable", zap.Error(err))
		return Status{Available: false}, nil
	}
	peers, err := parsePeers(string(pn))
	if err != nil {
		return Status{}, fmt.Errorf("parsing ntpq peer table: %w", err)
	}

	return Status{Available: true, Vars: vars, Peers: peers}, nil
}

// parseVars splits `ntpq -c rv` output into key=value pairs. Entries are
// comma-separated and may span lines; bare flags (leap_none, sync_ntp)
// are ignored.
func parseVars(out string) map[string]string {
	vars := make(map[string]string)
	for _, entry := range strings.FieldsFunc(out, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		key, value, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = strings.Trim(value, `"`)
	}
	return vars
}

// parsePeers parses the fixed-width peer billboard from `ntpq -pn`. The
// first column carries the tally code glued to the remote address.
func parsePeers(out string) ([]Peer, error) {
	var peers []Peer
	for i, line := range strings.Split(out, "\n") {
		if i < 2 || strings.TrimSpace(line) == "" {
			// Header row and separator.
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 10 {
			return nil, fmt.Errorf("peer line %q: want 10 columns, got %d", line, len(fields))
		}

		p := Peer{RefID: fields[1], State: " "}
		remote := fields[0]
		if strings.IndexByte("*+-#~x.", remote[0]) >= 0 {
			p.State = remote[:1]
			remote = remote[1:]
		}
		p.Remote = remote

		numeric := []struct {
			dst *float64
			raw string
		}{
			{&p.Stratum, fields[2]},
			{&p.When, fields[4]},
			{&p.Poll, fields[5]},
			{&p.Reach, fields[6]},
			{&p.Delay, fields[7]},
			{&p.Offset, fields[8]},
			{&p.Jitter, fields[9]},
		}
		for _, n := range numeric {
			v, err := parsePeerNumber(n.raw)
			if err != nil {
				return nil, fmt.Errorf("peer line %q: %w", line, err)
			}
			*n.dst = v
		}
		peers = append(peers, p)
	}
	return peers, nil
}

// parsePeerNumber handles the billboard's "-" placeholder and the m/h/d
// suffixes ntpq uses for large poll intervals.
func parsePeerNumber(raw string) (float64, error) {
	if raw == "-" {
		return 0, nil
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(raw, "m"):
		mult, raw = 60, raw[:len(raw)-1]
	case strings.HasSuffix(raw, "h"):
		mult, raw = 3600, raw[:len(raw)-1]
	case strings.HasSuffix(raw, "d"):
		mult, raw = 86400, raw[:len(raw)-1]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return v * mult, nil
}
