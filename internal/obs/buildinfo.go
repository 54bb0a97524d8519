package obs

import "github.com/prometheus/client_golang/prometheus"

// Set with -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// newBuildInfo is a constant 1 gauge labelled with version and commit.
func newBuildInfo() prometheus.Collector {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "seedctl build information.",
		},
		[]string{"version", "commit"},
	)
	g.WithLabelValues(Version, Commit).Set(1)
	return g
}
