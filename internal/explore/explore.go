// Package explore scans a contiguous range of internal seeds for a fixed
// choice vector, running the full generation pipeline at each seed and
// keeping the seeds whose chosen metric matches a target condition. It is the
// "find me a seed where..." tool: because generation is pure given a seed,
// every hit's seed code replays to exactly the game the scan measured.
package explore

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/pipeline"
)

// MaxRange bounds one request's seed range. Each seed is a full pipeline
// run, so unbounded ranges would be an easy denial of service through the
// API surface.
const MaxRange = 1 << 16

// TargetOp compares a computed metric against the request's target values.
type TargetOp string

const (
	OpEqual        TargetOp = "eq"
	OpGreater      TargetOp = "gt"
	OpGreaterEqual TargetOp = "ge"
	OpLess         TargetOp = "lt"
	OpLessEqual    TargetOp = "le"
	OpBetween      TargetOp = "between"
	OpOutside      TargetOp = "outside"
)

// Metric names the per-specification quantity a scan evaluates.
const (
	MetricDifficultyMean = "difficulty_mean"
	MetricWarningCount   = "warning_count"
	MetricEntityCount    = "entity_count"
	MetricNodeCount      = "node_count"
)

// Request describes one scan.
type Request struct {
	Choices   choices.ChoiceVector `json:"choices"`
	SeedStart uint32               `json:"seed_start"`
	SeedEnd   uint32               `json:"seed_end"` // inclusive
	Metric    string               `json:"metric"`
	TargetOp  TargetOp             `json:"target_op"`
	TargetVal float64              `json:"target_val"`
	// TargetVal2 is the upper bound for "between" and "outside".
	TargetVal2 float64 `json:"target_val2,omitempty"`
	Tolerance  float64 `json:"tolerance,omitempty"` // defaults to 1e-9
	Limit      int     `json:"limit,omitempty"`
	TimeoutMs  int     `json:"timeout_ms,omitempty"`
}

// Hit is one matching seed. SeedCode is the replay handle for the exact
// specification the scan measured.
type Hit struct {
	Seed     uint32  `json:"seed"`
	SeedCode string  `json:"seed_code"`
	Metric   float64 `json:"metric"`
}

// Summary aggregates a finished scan.
type Summary struct {
	TotalEvaluated uint64  `json:"total_evaluated"`
	HitsFound      int     `json:"hits_found"`
	MinMetric      float64 `json:"min_metric"`
	MaxMetric      float64 `json:"max_metric"`
	MeanMetric     float64 `json:"mean_metric"`
	TimedOut       bool    `json:"timed_out,omitempty"`
}

// Result is the complete scan outcome. Hits are sorted by seed regardless of
// worker completion order.
type Result struct {
	Hits    []Hit   `json:"hits"`
	Summary Summary `json:"summary"`
	Echo    Request `json:"echo"`
}

type job struct {
	start, end uint64 // inclusive, widened so end+1 cannot wrap
}

// evaluator applies the target condition with tolerance.
type evaluator struct {
	op        TargetOp
	val1      float64
	val2      float64
	tolerance float64
}

func (e evaluator) matches(metric float64) bool {
	switch e.op {
	case OpEqual:
		return abs(metric-e.val1) <= e.tolerance
	case OpGreater:
		return metric > e.val1+e.tolerance
	case OpGreaterEqual:
		return metric >= e.val1-e.tolerance
	case OpLess:
		return metric < e.val1-e.tolerance
	case OpLessEqual:
		return metric <= e.val1+e.tolerance
	case OpBetween:
		return metric >= e.val1-e.tolerance && metric <= e.val2+e.tolerance
	case OpOutside:
		return metric < e.val1-e.tolerance || metric > e.val2+e.tolerance
	default:
		return false
	}
}

func validOp(op TargetOp) bool {
	switch op {
	case OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpBetween, OpOutside:
		return true
	}
	return false
}

// metricFor maps a metric name to its extractor over one pipeline result.
func metricFor(name string) (func(pipeline.Result) float64, error) {
	switch name {
	case MetricDifficultyMean:
		return func(res pipeline.Result) float64 {
			curve := res.Spec.Difficulty.Curve
			if len(curve) == 0 {
				return 0
			}
			sum := 0.0
			for _, v := range curve {
				sum += v
			}
			return sum / float64(len(curve))
		}, nil
	case MetricWarningCount:
		return func(res pipeline.Result) float64 {
			return float64(len(res.Report.Warnings))
		}, nil
	case MetricEntityCount:
		return func(res pipeline.Result) float64 {
			return float64(len(res.Spec.Entities))
		}, nil
	case MetricNodeCount:
		return func(res pipeline.Result) float64 {
			return float64(len(res.Spec.Narrative.Nodes))
		}, nil
	default:
		return nil, ErrUnknownMetric
	}
}

// Scanner fans a seed range out over a worker pool.
type Scanner struct {
	workerCount int
}

func NewScanner() *Scanner {
	return &Scanner{workerCount: runtime.GOMAXPROCS(0)}
}

// Scan runs the request to completion or timeout. The choice vector is
// normalized once up front so every worker generates from identical inputs.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	if req.SeedEnd < req.SeedStart {
		return nil, ErrBadRange
	}
	if uint64(req.SeedEnd)-uint64(req.SeedStart)+1 > MaxRange {
		return nil, ErrRangeTooLarge
	}
	if !validOp(req.TargetOp) {
		return nil, ErrUnknownOp
	}
	metric, err := metricFor(req.Metric)
	if err != nil {
		return nil, err
	}

	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = 1e-9
	}
	eval := evaluator{op: req.TargetOp, val1: req.TargetVal, val2: req.TargetVal2, tolerance: tolerance}

	cv := req.Choices.Normalize()

	jobs := make(chan job, s.workerCount*2)
	hits := make(chan Hit, 256)

	var evaluated uint64
	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(ctx, jobs, hits, cv, metric, eval, &evaluated)
		}()
	}

	go generateJobs(ctx, jobs, uint64(req.SeedStart), uint64(req.SeedEnd))

	go func() {
		wg.Wait()
		close(hits)
	}()

	result := collect(ctx, hits, req.Limit)
	result.Summary.TotalEvaluated = atomic.LoadUint64(&evaluated)
	result.Echo = req
	return result, nil
}

// Batches stay small because each seed costs a full generation run.
const batchSize = 64

func generateJobs(ctx context.Context, jobs chan<- job, start, end uint64) {
	defer close(jobs)
	for current := start; current <= end; {
		batchEnd := current + batchSize - 1
		if batchEnd > end {
			batchEnd = end
		}
		select {
		case jobs <- job{start: current, end: batchEnd}:
			current = batchEnd + 1
		case <-ctx.Done():
			return
		}
	}
}

func runWorker(
	ctx context.Context,
	jobs <-chan job,
	hits chan<- Hit,
	cv choices.ChoiceVector,
	metric func(pipeline.Result) float64,
	eval evaluator,
	evaluated *uint64,
) {
	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			for seed := j.start; seed <= j.end; seed++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				res := pipeline.GenerateWithSeed(cv, uint32(seed))
				atomic.AddUint64(evaluated, 1)

				m := metric(res)
				if !eval.matches(m) {
					continue
				}
				select {
				case hits <- Hit{Seed: uint32(seed), SeedCode: res.Spec.SeedCode, Metric: m}:
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// collect drains the hit channel until the workers close it, tracking metric
// aggregates over every hit but keeping at most limit of them.
func collect(ctx context.Context, hits <-chan Hit, limit int) *Result {
	var kept []Hit
	var count int
	var min, max, sum float64

	for hit := range hits {
		count++
		if count == 1 {
			min, max = hit.Metric, hit.Metric
		} else {
			if hit.Metric < min {
				min = hit.Metric
			}
			if hit.Metric > max {
				max = hit.Metric
			}
		}
		sum += hit.Metric

		if limit <= 0 || len(kept) < limit {
			kept = append(kept, hit)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Seed < kept[j].Seed })

	summary := Summary{
		HitsFound: count,
		TimedOut:  ctx.Err() != nil,
	}
	if count > 0 {
		summary.MinMetric = min
		summary.MaxMetric = max
		summary.MeanMetric = sum / float64(count)
	}

	return &Result{Hits: kept, Summary: summary}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
