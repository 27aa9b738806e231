package analysis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"graph-stats-backend/graph"
)

// ProcessPeeler is an exact strategy that delegates to a cooperating
// external peeling binary over a line-oriented text protocol: one
// "<source> <target>" line per visible edge on stdin, and
// "Core_<k> = <id...>" result lines on stdout. Diagnostic lines without
// the Core prefix are skipped. The timeout bounds the whole exchange so a
// hung process cannot hang the caller indefinitely.
type ProcessPeeler struct {
	binary  string
	timeout time.Duration
}

// NewProcessPeeler creates a peeler backed by the given binary.
func NewProcessPeeler(binary string, timeout time.Duration) *ProcessPeeler {
	return &ProcessPeeler{binary: binary, timeout: timeout}
}

// Peel streams the visible edges to the external process and parses its
// core partition. An empty view yields an empty mapping without spawning
// the process.
func (p *ProcessPeeler) Peel(v *graph.View) (map[int][]int64, error) {
	ids := v.Vertices()
	if len(ids) == 0 {
		return map[int][]int64{}, nil
	}
	edges := v.Edges()
	if len(edges) == 0 {
		// The protocol carries nothing for an edge-less view; every
		// visible vertex is trivially in the 0-core.
		return map[int][]int64{0: ids}, nil
	}

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.binary, "-t", "core", "-o", "core")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeelingProcess, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeelingProcess, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start %s: %v", ErrPeelingProcess, p.binary, err)
	}

	// Feed edges concurrently so a process that interleaves reading and
	// writing cannot deadlock against us.
	writeErr := make(chan error, 1)
	go func() {
		defer stdin.Close()
		w := bufio.NewWriter(stdin)
		for _, e := range edges {
			if _, err := fmt.Fprintf(w, "%d %d\n", e.Source, e.Target); err != nil {
				writeErr <- err
				return
			}
		}
		writeErr <- w.Flush()
	}()

	result, parseErr := parseCorePartition(stdout)
	waitErr := cmd.Wait()
	if err := <-writeErr; err != nil {
		log.Debug().Err(err).Msg("Edge stream write aborted")
	}
	if parseErr != nil {
		return nil, parseErr
	}
	// A non-zero exit or a timeout kill must fail the whole request even
	// when some Core lines were already parsed: a truncated partition
	// would silently mislabel every unreported vertex as core 0.
	if waitErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeelingProcess, waitErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeelingProcess, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: process produced no output", ErrPeelingProcess)
	}

	// The protocol only carries vertices that occur on edges; visible
	// isolated vertices belong in the 0-core bucket.
	seen := make(map[int64]bool)
	for _, vs := range result {
		for _, id := range vs {
			seen[id] = true
		}
	}
	for _, id := range ids {
		if !seen[id] {
			result[0] = append(result[0], id)
		}
	}
	return result, nil
}

// parseCorePartition reads result lines of the form
// "Core_<k> = <id1> <id2> ...", skipping any other diagnostic output.
func parseCorePartition(r io.Reader) (map[int][]int64, error) {
	result := make(map[int][]int64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Core") {
			continue
		}
		left, right, found := strings.Cut(line, " = ")
		if !found {
			return nil, fmt.Errorf("%w: malformed core line %q", ErrPeelingProcess, line)
		}
		k, err := strconv.Atoi(left[strings.LastIndex(left, "_")+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed core number in %q", ErrPeelingProcess, line)
		}
		for _, field := range strings.Fields(right) {
			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed vertex id %q in core %d", ErrPeelingProcess, field, k)
			}
			result[k] = append(result[k], id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeelingProcess, err)
	}
	return result, nil
}
