package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters of one finished search episode
type Episode struct {
	Strategy         string
	Descents         uint64
	Expansions       uint64
	CASRetries       uint64
	InstallConflicts uint64
	ClaimConflicts   uint64
	IdleWorkers      uint64
	Nodes            int
	Duration         time.Duration
}

// Search metrics, registered once per registry
type Search struct {
	searches         *prometheus.CounterVec
	descents         *prometheus.CounterVec
	expansions       *prometheus.CounterVec
	casRetries       prometheus.Counter
	installConflicts prometheus.Counter
	claimConflicts   prometheus.Counter
	idleWorkers      prometheus.Counter
	duration         *prometheus.HistogramVec
	treeNodes        *prometheus.HistogramVec
}

// Register the search metrics with 'reg'
func New(reg prometheus.Registerer) *Search {
	factory := promauto.With(reg)
	return &Search{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "searches_total",
			Help:      "Number of finished search episodes",
		}, []string{"strategy"}),
		descents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "descents_total",
			Help:      "Number of root-to-leaf descents",
		}, []string{"strategy"}),
		expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "expansions_total",
			Help:      "Number of branches expanded into child nodes",
		}, []string{"strategy"}),
		casRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "score_cas_retries_total",
			Help:      "Failed compare-and-swap attempts on packed branch scores",
		}),
		installConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "child_install_conflicts_total",
			Help:      "Child nodes built but discarded because another worker installed one first",
		}),
		claimConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "claim_conflicts_total",
			Help:      "Root branch claims that found the branch already held by another worker",
		}),
		idleWorkers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "idle_workers_total",
			Help:      "Workers that exited early because no root branch was left to claim",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of a search episode",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"strategy"}),
		treeNodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "tree_nodes",
			Help:      "Number of nodes in the tree at the end of a search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"strategy"}),
	}
}

func (s *Search) Observe(e Episode) {
	if s == nil {
		return
	}
	s.searches.WithLabelValues(e.Strategy).Inc()
	s.descents.WithLabelValues(e.Strategy).Add(float64(e.Descents))
	s.expansions.WithLabelValues(e.Strategy).Add(float64(e.Expansions))
	s.casRetries.Add(float64(e.CASRetries))
	s.installConflicts.Add(float64(e.InstallConflicts))
	s.claimConflicts.Add(float64(e.ClaimConflicts))
	s.idleWorkers.Add(float64(e.IdleWorkers))
	s.duration.WithLabelValues(e.Strategy).Observe(e.Duration.Seconds())
	s.treeNodes.WithLabelValues(e.Strategy).Observe(float64(e.Nodes))
}
