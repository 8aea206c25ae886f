// Package metrics exposes the timing counters of §6 EXTERNAL
// INTERFACES (fcg_const_time, fcg_colour_time, fcg_update_time,
// fcg_cst_alloc_time, fcg_dims_scale_time, scaling_cst_sol_time,
// skew_time, mip_time, num_lp_calls) as Prometheus instruments,
// grounded on the prometheus/client_golang dependency the pack already
// carries (jhkimqd-chaos-utils wires the API-client side of the same
// library; this package wires the instrumentation side).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/plutofcg/prog"
)

// Registry bundles every scheduler metric under one struct so callers
// register once and pass the struct down instead of package globals.
type Registry struct {
	FCGConstTime      prometheus.Histogram
	FCGColourTime     prometheus.Histogram
	FCGUpdateTime     prometheus.Histogram
	FCGCstAllocTime   prometheus.Histogram
	FCGDimsScaleTime  prometheus.Histogram
	ScalingCstSolTime prometheus.Histogram
	SkewTime          prometheus.Histogram
	MIPTime           prometheus.Histogram

	NumLPCalls    prometheus.Counter
	ColouredDims  prometheus.Gauge
	CurrentColour prometheus.Gauge
}

// NewRegistry builds a Registry and registers every instrument against
// reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	hist := func(name, help string) prometheus.Histogram {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plutofcg",
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(h)
		return h
	}

	r := &Registry{
		FCGConstTime:      hist("fcg_const_seconds", "time spent constructing the FCG"),
		FCGColourTime:     hist("fcg_colour_seconds", "time spent colouring one SCC"),
		FCGUpdateTime:     hist("fcg_update_seconds", "time spent mutating the FCG between SCCs"),
		FCGCstAllocTime:   hist("fcg_cst_alloc_seconds", "time spent allocating constraint templates"),
		FCGDimsScaleTime:  hist("fcg_dims_scale_seconds", "time spent in scale_shift_permutations"),
		ScalingCstSolTime: hist("scaling_cst_sol_seconds", "time spent solving the scale-shift LP"),
		SkewTime:          hist("skew_seconds", "time spent in the introduce_skew post-pass"),
		MIPTime:           hist("mip_seconds", "time spent in MIP-backed LP calls"),
		NumLPCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plutofcg",
			Name:      "num_lp_calls_total",
			Help:      "total number of LP oracle invocations",
		}),
		ColouredDims: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plutofcg",
			Name:      "coloured_dims",
			Help:      "number of colours fully realized as schedule hyperplanes",
		}),
		CurrentColour: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plutofcg",
			Name:      "current_colour",
			Help:      "colour round currently being processed",
		}),
	}
	reg.MustRegister(r.NumLPCalls, r.ColouredDims, r.CurrentColour)
	return r
}

// Observe copies the accumulated prog.Timing snapshot into the
// registry's histograms/counters, called once after a scheduling run
// completes (the driver accumulates nanosecond totals in-process; this
// package only needs the final tally, not a sample per call).
func (r *Registry) Observe(t prog.Timing) {
	const nanosPerSecond = 1e9
	r.FCGConstTime.Observe(float64(t.FCGConstTime) / nanosPerSecond)
	r.FCGColourTime.Observe(float64(t.FCGColourTime) / nanosPerSecond)
	r.FCGUpdateTime.Observe(float64(t.FCGUpdateTime) / nanosPerSecond)
	r.FCGCstAllocTime.Observe(float64(t.FCGCstAllocTime) / nanosPerSecond)
	r.FCGDimsScaleTime.Observe(float64(t.FCGDimsScaleTime) / nanosPerSecond)
	r.ScalingCstSolTime.Observe(float64(t.ScalingCstSolTime) / nanosPerSecond)
	r.SkewTime.Observe(float64(t.SkewTime) / nanosPerSecond)
	r.MIPTime.Observe(float64(t.MIPTime) / nanosPerSecond)
	r.NumLPCalls.Add(float64(t.NumLPCalls))
}
