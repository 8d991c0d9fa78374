package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEpisode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe(Episode{Strategy: "lockfree", Descents: 10, Expansions: 7, CASRetries: 2, Nodes: 8, Duration: 5 * time.Millisecond})
	m.Observe(Episode{Strategy: "lockfree", Descents: 5, Expansions: 1, Nodes: 2, Duration: time.Millisecond})

	assert.Equal(t, 15.0, testutil.ToFloat64(m.descents.WithLabelValues("lockfree")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.expansions.WithLabelValues("lockfree")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.casRetries))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("lockfree")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilSearchIsNoop(t *testing.T) {
	var m *Search
	m.Observe(Episode{Strategy: "sequential"})
}
