// Package compare builds sample envelopes of every message generation and measures
// how many bytes the compute budget costs in each.
package compare

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
	"github.com/cavemanloverboy/versioned-tx-simd/config"
	"github.com/cavemanloverboy/versioned-tx-simd/hash"
	"github.com/cavemanloverboy/versioned-tx-simd/log"
	"github.com/cavemanloverboy/versioned-tx-simd/message"
	"github.com/cavemanloverboy/versioned-tx-simd/metrics"
)

// Generation names a message generation.
type Generation string

const (
	V0 Generation = "v0"
	V1 Generation = "v1"
	V2 Generation = "v2"
	V3 Generation = "v3"
)

// Generations lists every generation in report order.
var Generations = []Generation{V0, V1, V2, V3}

// Scenario is a named set of budget parameters.
type Scenario struct {
	Name   string
	Params budget.BudgetParameters
}

// Scenario names.
const (
	Noop       = "noop"
	LimitPrice = "limit_price"
	Full       = "full"
)

// Scenarios returns the sample parameter sets in report order: none, unit limit and
// price, and all four. Every present parameter is value.
func Scenarios(value uint32) []Scenario {
	return []Scenario{
		{Name: Noop},
		{Name: LimitPrice, Params: budget.BudgetParameters{
			ComputeUnitLimit: budget.Some(value),
			ComputeUnitPrice: budget.Some(uint64(value)),
		}},
		{Name: Full, Params: budget.BudgetParameters{
			ComputeUnitLimit:        budget.Some(value),
			ComputeUnitPrice:        budget.Some(uint64(value)),
			LoadedAccountsDataLimit: budget.Some(value),
			RequestedHeapBytesLimit: budget.Some(value),
		}},
	}
}

type envelope interface {
	codec.Encodable
	zapcore.ObjectMarshaler
	EstimatedSize() int
	ID() types.Hash32
}

// Compile builds the sample envelope of generation g paying with payer.
func Compile(g Generation, payer types.Pubkey, params budget.BudgetParameters, blockhash types.Hash32) (envelope, error) {
	switch g {
	case V0:
		return message.CompileV0(payer, params, blockhash), nil
	case V1:
		return message.CompileV1(payer, params, blockhash), nil
	case V2:
		return message.CompileV2(payer, params, blockhash), nil
	case V3:
		return message.CompileV3(payer, params, blockhash), nil
	}
	return nil, fmt.Errorf("unknown generation %q", g)
}

// Cell is the measurement of one generation in one scenario.
type Cell struct {
	Generation Generation   `json:"generation" yaml:"generation"`
	Scenario   string       `json:"scenario" yaml:"scenario"`
	Size       int          `json:"size" yaml:"size"`
	ID         types.Hash32 `json:"id" yaml:"id"`
}

// Report holds the measurements of a run ordered by generation, then scenario.
type Report struct {
	RunID       uuid.UUID    `json:"runId" yaml:"runId"`
	GeneratedAt time.Time    `json:"generatedAt" yaml:"generatedAt"`
	Value       uint32       `json:"value" yaml:"value"`
	Payer       types.Pubkey `json:"payer" yaml:"payer"`
	Blockhash   types.Hash32 `json:"blockhash" yaml:"blockhash"`
	Cells       []Cell       `json:"cells" yaml:"cells"`
}

// Size returns the size measured for g in the named scenario.
func (r *Report) Size(g Generation, scenario string) (int, bool) {
	for _, c := range r.Cells {
		if c.Generation == g && c.Scenario == scenario {
			return c.Size, true
		}
	}
	return 0, false
}

// ScenarioNames returns the scenario names in report order.
func (r *Report) ScenarioNames() []string {
	var names []string
	seen := map[string]struct{}{}
	for _, c := range r.Cells {
		if _, ok := seen[c.Scenario]; !ok {
			seen[c.Scenario] = struct{}{}
			names = append(names, c.Scenario)
		}
	}
	return names
}

// Opt configures a Comparator.
type Opt func(*Comparator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Comparator) {
		c.logger = logger
	}
}

// WithClock sets the clock that timestamps reports.
func WithClock(clock clockwork.Clock) Opt {
	return func(c *Comparator) {
		c.clock = clock
	}
}

// WithRegistry registers the comparator metrics on reg.
func WithRegistry(reg prometheus.Registerer) Opt {
	return func(c *Comparator) {
		c.registry = reg
	}
}

// WithWriter sets how Report writes a run.
func WithWriter(w ReportWriter) Opt {
	return func(c *Comparator) {
		c.writer = w
	}
}

// WithCacheSize bounds how many measured cells are kept for later runs.
func WithCacheSize(size int) Opt {
	return func(c *Comparator) {
		c.cacheSize = size
	}
}

// WithRunID fixes the id of every report.
func WithRunID(id uuid.UUID) Opt {
	return func(c *Comparator) {
		c.newID = func() uuid.UUID { return id }
	}
}

// A run measures one cell per generation and scenario.
const defaultCacheSize = 64

type cellKey struct {
	generation Generation
	scenario   string
}

// Comparator measures sample envelopes.
type Comparator struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	registry prometheus.Registerer
	writer   ReportWriter
	newID    func() uuid.UUID

	cacheSize int
	cache     *lru.Cache[cellKey, Cell]
	sizes     *prometheus.GaugeVec
	hits      *prometheus.CounterVec
	encoding  *prometheus.HistogramVec

	value     uint32
	payer     types.Pubkey
	blockhash types.Hash32
}

// New creates a Comparator for cfg.
func New(cfg config.CompareConfig, opts ...Opt) (*Comparator, error) {
	if cfg.Value > 1<<32-1 {
		return nil, fmt.Errorf("value %d does not fit a 32-bit parameter", cfg.Value)
	}
	c := &Comparator{
		logger:    log.NewNop(),
		clock:     clockwork.NewRealClock(),
		registry:  prometheus.NewRegistry(),
		writer:    TableWriter{},
		newID:     uuid.New,
		cacheSize: defaultCacheSize,
		value:     uint32(cfg.Value),
		payer:     PayerFromSeed(cfg.PayerSeed),
		blockhash: types.CalcHash32([]byte(cfg.BlockhashSeed)),
	}
	for _, opt := range opts {
		opt(c)
	}
	cache, err := lru.New[cellKey, Cell](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cell cache: %w", err)
	}
	c.cache = cache
	c.sizes = metrics.NewGauge(c.registry, "encoded_size_bytes", "compare",
		"Encoded size of a sample envelope", []string{"generation", "scenario"})
	c.hits = metrics.NewCounter(c.registry, "cache_hits_total", "compare",
		"Cells served from the cell cache", []string{"generation"})
	c.encoding = metrics.NewHistogramWithBuckets(c.registry, "encode_duration_seconds", "compare",
		"Time to compile and encode a sample envelope", []string{"generation"},
		prometheus.ExponentialBuckets(1e-6, 4, 10))
	return c, nil
}

// PayerFromSeed derives the ed25519 public key of the sample payer.
func PayerFromSeed(seed string) types.Pubkey {
	sum := hash.Sum([]byte(seed))
	priv := ed25519.NewKeyFromSeed(sum[:])
	return types.BytesToPubkey(priv.Public().(ed25519.PublicKey))
}

// Run builds and measures every generation in every scenario concurrently.
func (c *Comparator) Run(ctx context.Context) (*Report, error) {
	scenarios := Scenarios(c.value)
	cells := make([]Cell, len(Generations)*len(scenarios))
	eg, ctx := errgroup.WithContext(ctx)
	for i, g := range Generations {
		for j, s := range scenarios {
			cell := &cells[i*len(scenarios)+j]
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return c.measure(cell, g, s)
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	return &Report{
		RunID:       c.newID(),
		GeneratedAt: c.clock.Now().UTC(),
		Value:       c.value,
		Payer:       c.payer,
		Blockhash:   c.blockhash,
		Cells:       cells,
	}, nil
}

func (c *Comparator) measure(cell *Cell, g Generation, s Scenario) error {
	key := cellKey{generation: g, scenario: s.Name}
	if cached, ok := c.cache.Get(key); ok {
		*cell = cached
		c.hits.WithLabelValues(string(g)).Inc()
		return nil
	}
	start := c.clock.Now()
	msg, err := Compile(g, c.payer, s.Params, c.blockhash)
	if err != nil {
		return err
	}
	buf, err := codec.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", g, s.Name, err)
	}
	c.encoding.WithLabelValues(string(g)).Observe(c.clock.Since(start).Seconds())
	if len(buf) != msg.EstimatedSize() {
		return fmt.Errorf("%s %s: encoded %d bytes, estimated %d", g, s.Name, len(buf), msg.EstimatedSize())
	}
	*cell = Cell{
		Generation: g,
		Scenario:   s.Name,
		Size:       len(buf),
		ID:         types.CalcHash32(buf),
	}
	c.cache.Add(key, *cell)
	c.sizes.WithLabelValues(string(g), s.Name).Set(float64(len(buf)))
	c.logger.Debug("measured envelope",
		zap.String("scenario", s.Name),
		zap.Int("size", len(buf)),
		zap.Object("message", msg),
	)
	return nil
}

// Report runs the comparison and writes the result to w.
func (c *Comparator) Report(ctx context.Context, w io.Writer) error {
	r, err := c.Run(ctx)
	if err != nil {
		return err
	}
	if err := c.writer.WriteReport(w, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	c.logger.Info("comparison complete",
		zap.Stringer("run", r.RunID),
		zap.Int("cells", len(r.Cells)),
		log.ZShortStringer("payer", r.Payer),
	)
	return nil
}
