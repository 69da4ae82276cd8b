// Package zones resolves scrape targets against the live zone registry
// via zoneadm(8).
package zones

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zonemon/agent/internal/errdefs"
)

// Zone is the instance metadata needed to scope a collection pass.
type Zone struct {
	// ID is the numeric zone id; kernel statistics for tcp and cpu caps
	// are keyed by it.
	ID    int
	UUID  string
	Name  string
	Brand string
	// Dataset is the zone's root dataset, e.g. "zones/<uuid>".
	Dataset string
}

// Registry looks up running zones.
type Registry interface {
	// Resolve returns the zone for id, or an errdefs.NotFoundError.
	Resolve(ctx context.Context, id string) (Zone, error)
	// List returns all non-global zones.
	List(ctx context.Context) ([]Zone, error)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CmdRegistry reads the zone table from `zoneadm list -cp`.
type CmdRegistry struct {
	logger *zap.Logger
	run    runFunc
}

var _ Registry = (*CmdRegistry)(nil)

// NewCmdRegistry returns a Registry backed by the zoneadm command.
func NewCmdRegistry(logger *zap.Logger) *CmdRegistry {
	return &CmdRegistry{
		logger: logger,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Resolve looks up a zone by UUID. A syntactically invalid identifier is
// not found by definition and short-circuits without a registry read.
func (r *CmdRegistry) Resolve(ctx context.Context, id string) (Zone, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Zone{}, errdefs.NotFound(id)
	}

	all, err := r.List(ctx)
	if err != nil {
		return Zone{}, err
	}
	for _, z := range all {
		if z.UUID == id || z.Name == id {
			return z, nil
		}
	}
	return Zone{}, errdefs.NotFound(id)
}

// List parses `zoneadm list -cp` output. Each line is
//
//	zoneid:zonename:state:zonepath:uuid:brand:ip-type
//
// The global zone is excluded; malformed lines are skipped with a log.
func (r *CmdRegistry) List(ctx context.Context) ([]Zone, error) {
	out, err := r.run(ctx, "zoneadm", "list", "-cp")
	if err != nil {
		return nil, fmt.Errorf("zoneadm list: %w", err)
	}

	var result []Zone
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(string(line), ":")
		if len(fields) < 7 {
			r.logger.Debug("skipping malformed zoneadm line", zap.ByteString("line", line))
			continue
		}
		name := fields[1]
		if name == "global" {
			continue
		}
		zoneID, err := strconv.Atoi(fields[0])
		if err != nil {
			r.logger.Debug("skipping zoneadm line with bad zone id", zap.ByteString("line", line))
			continue
		}
		id := fields[4]
		if id == "" {
			// Some brands leave the uuid column empty; the zonename
			// is the uuid on this platform.
			id = name
		}
		result = append(result, Zone{
			ID:      zoneID,
			UUID:    id,
			Name:    name,
			Brand:   fields[5],
			Dataset: strings.TrimPrefix(fields[3], "/"),
		})
	}
	return result, nil
}
