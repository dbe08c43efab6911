// Package season runs a full round-robin season across a league: every
// unordered pair of teams plays K games, with standings and per-player
// aggregates accumulated across the results (spec §4.9). The worker
// pool shape mirrors a classic simulation-engine job/result channel
// pair, with each worker owning its own RNG.
package season

import (
	"errors"
	"math/rand"
	"sort"
	"sync"

	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// DefaultGamesPerMatchup is the legacy default K: how many times each
// unordered pair of teams plays.
const DefaultGamesPerMatchup = 50

// DefaultRetryBound caps how many times a worker resamples a single
// game on a fresh sub-seed after an engine.InvariantError before
// giving up on it.
const DefaultRetryBound = 3

// Progress reports how many of the season's games have completed, for
// callers streaming status (e.g. over a websocket).
type Progress struct {
	Completed int
	Total     int
}

// Result is the accumulated outcome of a full season: final standings
// and per-(player,team) season aggregates.
type Result struct {
	Standings  []types.StandingsRow
	Aggregates map[string]types.SeasonAggregate
}

type matchupJob struct {
	home, away types.Team
}

type gameOutcome struct {
	home, away types.Team
	result     *types.GameResult
	starters   map[string]bool
	sixthMen   map[string]bool
}

// Run simulates every unordered pair of teams gamesPerMatchup times
// using a fixed-size worker pool, then reduces all outcomes into
// standings and season aggregates at a single synchronization barrier.
func Run(lc engine.LeagueContext, teams []types.Team, gamesPerMatchup int, seed int64, workers int, progress chan<- Progress) (Result, error) {
	return RunWithRetryBound(lc, teams, gamesPerMatchup, seed, workers, DefaultRetryBound, progress)
}

// RunWithRetryBound is Run with an explicit cap on how many times a
// worker resamples a game that fails an engine.InvariantError check
// before dropping it from the season (spec §7's non-convergence retry
// policy).
func RunWithRetryBound(lc engine.LeagueContext, teams []types.Team, gamesPerMatchup int, seed int64, workers, retryBound int, progress chan<- Progress) (Result, error) {
	if gamesPerMatchup <= 0 {
		gamesPerMatchup = DefaultGamesPerMatchup
	}
	if workers <= 0 {
		workers = 4
	}
	if retryBound <= 0 {
		retryBound = DefaultRetryBound
	}

	jobs := make(chan matchupJob)
	outcomes := make(chan gameOutcome)

	total := pairCount(len(teams)) * gamesPerMatchup

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(lc, jobs, outcomes, seed+int64(w), retryBound, &wg)
	}

	go func() {
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				for g := 0; g < gamesPerMatchup; g++ {
					jobs <- matchupJob{home: teams[i], away: teams[j]}
				}
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	standings := map[string]*types.StandingsRow{}
	for _, t := range teams {
		standings[t.Name] = &types.StandingsRow{Team: t.Name}
	}
	aggregates := map[string]types.SeasonAggregate{}

	completed := 0
	for o := range outcomes {
		if o.result == nil {
			continue
		}
		applyOutcome(standings, aggregates, o)
		completed++
		if progress != nil {
			select {
			case progress <- Progress{Completed: completed, Total: total}:
			default:
			}
		}
	}

	rows := make([]types.StandingsRow, 0, len(standings))
	for _, row := range standings {
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinPct() != rows[j].WinPct() {
			return rows[i].WinPct() > rows[j].WinPct()
		}
		return rows[i].PointDiff() > rows[j].PointDiff()
	})

	return Result{Standings: rows, Aggregates: aggregates}, nil
}

func worker(lc engine.LeagueContext, jobs <-chan matchupJob, outcomes chan<- gameOutcome, seed int64, retryBound int, wg *sync.WaitGroup) {
	defer wg.Done()
	rng := rand.New(rand.NewSource(seed))

	for job := range jobs {
		result, err := simulateWithRetry(lc, job, rng, retryBound)
		if err != nil {
			outcomes <- gameOutcome{}
			continue
		}
		outcomes <- gameOutcome{
			home:   job.home,
			away:   job.away,
			result: result,
		}
	}
}

// simulateWithRetry resamples a game on a fresh sub-seed drawn from
// the worker's own stream whenever engine.SimulateGame reports an
// engine.InvariantError, up to retryBound attempts.
func simulateWithRetry(lc engine.LeagueContext, job matchupJob, rng *rand.Rand, retryBound int) (*types.GameResult, error) {
	var lastErr error
	for attempt := 0; attempt <= retryBound; attempt++ {
		gameRNG := rng
		if attempt > 0 {
			gameRNG = rand.New(rand.NewSource(rng.Int63()))
		}
		result, err := engine.SimulateGame(lc, job.home, job.away, gameRNG)
		if err == nil {
			return result, nil
		}
		var invErr *engine.InvariantError
		if !errors.As(err, &invErr) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func applyOutcome(standings map[string]*types.StandingsRow, aggregates map[string]types.SeasonAggregate, o gameOutcome) {
	homeRow := standings[o.home.Name]
	awayRow := standings[o.away.Name]

	homeRow.G++
	awayRow.G++
	homeRow.PF += o.result.HomeFinal
	homeRow.PA += o.result.AwayFinal
	awayRow.PF += o.result.AwayFinal
	awayRow.PA += o.result.HomeFinal

	if o.result.HomeFinal > o.result.AwayFinal {
		homeRow.W++
		awayRow.L++
	} else {
		awayRow.W++
		homeRow.L++
	}

	starters, sixth := startersAndSixth(o.result.BoxHome)
	mergeAggregates(aggregates, o.home.Name, o.result.BoxHome, starters, sixth)

	starters, sixth = startersAndSixth(o.result.BoxAway)
	mergeAggregates(aggregates, o.away.Name, o.result.BoxAway, starters, sixth)
}

// startersAndSixth picks the 5 highest-minutes players as starters and
// the highest-scoring bench player as the qualifying sixth man, purely
// from the finished box line (the lineup's own starter designation
// isn't carried through the game result).
func startersAndSixth(lines []types.BoxLine) (map[string]bool, map[string]bool) {
	ordered := make([]types.BoxLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Min > ordered[j].Min })

	starters := map[string]bool{}
	for i := 0; i < len(ordered) && i < 5; i++ {
		if ordered[i].Min > 0 {
			starters[ordered[i].Player] = true
		}
	}

	bestBenchPts := -1
	bestBench := ""
	for _, l := range ordered {
		if starters[l.Player] || l.Min == 0 {
			continue
		}
		if l.Pts > bestBenchPts {
			bestBenchPts = l.Pts
			bestBench = l.Player
		}
	}
	sixth := map[string]bool{}
	if bestBench != "" {
		sixth[bestBench] = true
	}
	return starters, sixth
}

func mergeAggregates(aggregates map[string]types.SeasonAggregate, team string, lines []types.BoxLine, starters, sixth map[string]bool) {
	for _, line := range lines {
		key := team + "|" + line.Player
		agg := aggregates[key]
		agg.Player = line.Player
		agg.Team = team
		agg.AddLine(line, starters[line.Player], sixth[line.Player])
		aggregates[key] = agg
	}
}

func pairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
