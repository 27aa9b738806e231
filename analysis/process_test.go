package analysis

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"graph-stats-backend/graph"
)

func TestParseCorePartition(t *testing.T) {
	output := strings.NewReader(
		"reading edges\n" +
			"Core_1 = 0 4\n" +
			"some diagnostic line\n" +
			"Core_2 = 1 2 3\n")

	partition, err := parseCorePartition(output)
	require.NoError(t, err)
	require.Equal(t, map[int][]int64{
		1: {0, 4},
		2: {1, 2, 3},
	}, partition)
}

func TestParseCorePartitionMalformed(t *testing.T) {
	cases := map[string]string{
		"missing separator": "Core_1 0 4\n",
		"bad core number":   "Core_x = 0 4\n",
		"bad vertex id":     "Core_1 = 0 four\n",
	}
	for name, output := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCorePartition(strings.NewReader(output))
			require.ErrorIs(t, err, ErrPeelingProcess)
		})
	}
}

// fakePeelingBinary writes a shell script that swallows the edge stream
// and prints a fixed core partition, standing in for the real peeling
// binary.
func fakePeelingBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "graph_peeling.sh")
	script := "#!/bin/sh\ncat > /dev/null\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestProcessPeeler(t *testing.T) {
	bin := fakePeelingBinary(t,
		"echo 'peeling diagnostic'\n"+
			"echo 'Core_1 = 0 1 2 3 4'\n")

	partition, err := NewProcessPeeler(bin, 30*time.Second).Peel(pathGraph(t).FullView())
	require.NoError(t, err)
	sortBuckets(partition)
	require.Equal(t, map[int][]int64{1: {0, 1, 2, 3, 4}}, partition)
}

func TestProcessPeelerAddsIsolatedVertices(t *testing.T) {
	// Vertex 4 is filtered to degree 0, so the edge stream never
	// mentions it; it must land in the 0-core bucket.
	g := pathGraph(t)
	v := g.Induce([]int64{0, 1, 2, 3, 4}, []int{0, 1, 2})

	bin := fakePeelingBinary(t, "echo 'Core_1 = 0 1 2 3'\n")
	partition, err := NewProcessPeeler(bin, 30*time.Second).Peel(v)
	require.NoError(t, err)
	sortBuckets(partition)
	require.Equal(t, map[int][]int64{
		0: {4},
		1: {0, 1, 2, 3},
	}, partition)
}

func TestProcessPeelerPartialOutputFails(t *testing.T) {
	// A process that dies after emitting some Core lines must fail the
	// request rather than hand back a truncated partition.
	bin := fakePeelingBinary(t,
		"echo 'Core_1 = 0 1'\n"+
			"exit 1\n")

	_, err := NewProcessPeeler(bin, 30*time.Second).Peel(pathGraph(t).FullView())
	require.ErrorIs(t, err, ErrPeelingProcess)
}

func TestProcessPeelerEdgelessView(t *testing.T) {
	// No edges means nothing to stream; the partition is all 0-core and
	// no process is spawned, so a bogus binary path must not matter.
	g := graph.NewGraph(3)
	partition, err := NewProcessPeeler("/nonexistent/peeling.bin", time.Second).Peel(g.FullView())
	require.NoError(t, err)
	require.Equal(t, map[int][]int64{0: {0, 1, 2}}, partition)
}

func TestProcessPeelerNoOutput(t *testing.T) {
	bin := fakePeelingBinary(t, "")
	_, err := NewProcessPeeler(bin, 30*time.Second).Peel(pathGraph(t).FullView())
	require.ErrorIs(t, err, ErrPeelingProcess)
}

func TestProcessPeelerEmptyGraph(t *testing.T) {
	// No process is spawned for an empty graph, so a bogus binary path
	// must not matter.
	g := graph.NewGraph(0)
	partition, err := NewProcessPeeler("/nonexistent/peeling.bin", time.Second).Peel(g.FullView())
	require.NoError(t, err)
	require.Empty(t, partition)
}
