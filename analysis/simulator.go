package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerodds/internal/randutil"
	"github.com/lox/pokerodds/poker"
)

// ErrInvalidTrials is returned when a simulation is asked for fewer than one trial.
var ErrInvalidTrials = errors.New("invalid trial count")

// cancellation is polled once per this many trials
const checkInterval = 1024

// maxDefaultWorkers caps the default worker count; beyond it returns diminish.
const maxDefaultWorkers = 8

// Simulator estimates equity by Monte Carlo sampling of board run-outs. It owns
// its random generator; a Simulator built WithSeed reproduces its results for
// the same sequence of queries.
type Simulator struct {
	mu      sync.Mutex // guards rng
	rng     *rand.Rand
	workers int
	logger  *log.Logger
	clock   quartz.Clock
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed makes the simulator deterministic.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = randutil.New(seed)
	}
}

// WithRand hands the simulator an existing generator. The simulator takes
// ownership; callers must not use rng afterwards.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithWorkers sets the number of concurrent workers. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used to time queries.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewSimulator returns a simulator with an unseeded generator, one worker per
// CPU (at most 8), a discarding logger and the real clock unless overridden.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		rng:     randutil.NewUnseeded(),
		workers: min(runtime.NumCPU(), maxDefaultWorkers),
		logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the configured worker count.
func (s *Simulator) Workers() int {
	return s.workers
}

// HandVsHand estimates hero's equity against a known villain hand. Exactly
// trials run-outs are sampled from the cards not held by either player or
// already on the board.
func (s *Simulator) HandVsHand(ctx context.Context, hero, villain Combo, board []poker.Card, trials int) (EquityResult, error) {
	if err := validateQuery(hero, board, trials); err != nil {
		return EquityResult{}, err
	}
	if err := validateCombo(villain); err != nil {
		return EquityResult{}, err
	}
	if hero.Cards().Overlaps(villain.Cards()) {
		return EquityResult{}, fmt.Errorf("%w: %s and %s share a card", poker.ErrDuplicateCard, hero, villain)
	}
	if villain.Cards().Overlaps(poker.NewCardSet(board...)) {
		return EquityResult{}, fmt.Errorf("%w: %w: %s is on board %s",
			poker.ErrInvalidBoard, poker.ErrDuplicateCard, villain, poker.FormatCards(board))
	}

	workers := min(s.workers, trials)
	s.logger.Debug("Simulating hand vs hand",
		"hero", hero, "villain", villain, "board", poker.FormatCards(board),
		"trials", trials, "workers", workers)
	start := s.clock.Now()

	dead := hero.Cards() | villain.Cards() | poker.NewCardSet(board...)
	deck := poker.NewDeck(dead)
	seeds := s.fork(workers)
	tallies := make([]EquityResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	perWorker, remainder := trials/workers, trials%workers
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			res, err := runTrials(gctx, randutil.New(seeds[w]), deck, hero, villain, board, n)
			tallies[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, t := range tallies {
		total = total.add(t)
	}
	s.logger.Debug("Simulation complete",
		"trials", total.Trials(), "equity", fmt.Sprintf("%.4f", total.Equity()),
		"elapsed", s.clock.Now().Sub(start))
	return total, nil
}

// HandVsRange estimates hero's equity against every combo of a villain range.
// The range is expanded with hero and board as dead cards, then each surviving
// combo is simulated for max(1, trials/combos) run-outs against its own deck.
// Counts are summed, so the result may hold slightly fewer or more trials than
// requested.
func (s *Simulator) HandVsRange(ctx context.Context, hero Combo, expr string, board []poker.Card, trials int) (EquityResult, error) {
	if err := validateQuery(hero, board, trials); err != nil {
		return EquityResult{}, err
	}

	dead := hero.Cards() | poker.NewCardSet(board...)
	villains, err := ExpandRange(expr, dead)
	if err != nil {
		return EquityResult{}, err
	}
	combos := villains.combos
	perCombo := max(1, trials/len(combos))

	s.logger.Debug("Simulating hand vs range",
		"hero", hero, "range", expr, "board", poker.FormatCards(board),
		"combos", len(combos), "per_combo", perCombo, "workers", s.workers)
	start := s.clock.Now()

	seeds := s.fork(len(combos))
	tallies := make([]EquityResult, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, villain := range combos {
		g.Go(func() error {
			deck := poker.NewDeck(dead | villain.Cards())
			res, err := runTrials(gctx, randutil.New(seeds[i]), deck, hero, villain, board, perCombo)
			tallies[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, t := range tallies {
		total = total.add(t)
	}
	s.logger.Debug("Simulation complete",
		"trials", total.Trials(), "equity", fmt.Sprintf("%.4f", total.Equity()),
		"elapsed", s.clock.Now().Sub(start))
	return total, nil
}

// fork draws one seed per task from the master generator before any task
// starts, so results do not depend on goroutine scheduling.
func (s *Simulator) fork(n int) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return randutil.Fork(s.rng, n)
}

// runTrials plays n run-outs of hero against villain, drawing the missing board
// cards from deck. The deck is a private copy.
func runTrials(ctx context.Context, rng *rand.Rand, deck poker.Deck, hero, villain Combo, board []poker.Card, n int) (EquityResult, error) {
	var res EquityResult
	var heroHand, villainHand [7]poker.Card

	heroHand[0], heroHand[1] = hero.First, hero.Second
	villainHand[0], villainHand[1] = villain.First, villain.Second
	copy(heroHand[2:], board)
	copy(villainHand[2:], board)

	known := 2 + len(board)
	for i := range n {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return EquityResult{}, err
			}
		}

		deck.Draw(rng, heroHand[known:])
		copy(villainHand[known:], heroHand[known:])

		switch poker.Evaluate(heroHand[:]).Compare(poker.Evaluate(villainHand[:])) {
		case 1:
			res.Wins++
		case 0:
			res.Ties++
		default:
			res.Losses++
		}
	}
	return res, nil
}

func validateQuery(hero Combo, board []poker.Card, trials int) error {
	if trials < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTrials, trials)
	}
	if err := validateCombo(hero); err != nil {
		return err
	}
	if err := poker.ValidateBoard(board); err != nil {
		return err
	}
	if hero.Cards().Overlaps(poker.NewCardSet(board...)) {
		return fmt.Errorf("%w: %w: %s is on board %s",
			poker.ErrInvalidBoard, poker.ErrDuplicateCard, hero, poker.FormatCards(board))
	}
	return nil
}

func validateCombo(c Combo) error {
	if c.Cards().Count() != 2 {
		return fmt.Errorf("%w: hand %q must hold two distinct cards", poker.ErrInvalidCard, c)
	}
	return nil
}

var (
	defaultSimulator     *Simulator
	defaultSimulatorOnce sync.Once
)

func getDefaultSimulator() *Simulator {
	defaultSimulatorOnce.Do(func() {
		defaultSimulator = NewSimulator()
	})
	return defaultSimulator
}

// SimulateHandVsHand runs HandVsHand on a shared unseeded simulator.
func SimulateHandVsHand(hero, villain Combo, board []poker.Card, trials int) (EquityResult, error) {
	return getDefaultSimulator().HandVsHand(context.Background(), hero, villain, board, trials)
}

// SimulateHandVsRange runs HandVsRange on a shared unseeded simulator.
func SimulateHandVsRange(hero Combo, expr string, board []poker.Card, trials int) (EquityResult, error) {
	return getDefaultSimulator().HandVsRange(context.Background(), hero, expr, board, trials)
}
