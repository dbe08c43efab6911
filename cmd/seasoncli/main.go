// Command seasoncli runs a full league season from a roster JSON file
// and writes the resulting standings, player aggregates, and awards to
// stdout or an output file.
//
// Usage:
//
//	seasoncli -roster roster.json -games 50 -seed 1 -out results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/RamanShrikant/basketball-manager/internal/awards"
	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/internal/rosterio"
	"github.com/RamanShrikant/basketball-manager/internal/season"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

func main() {
	rosterPath := flag.String("roster", "roster.json", "path to the league roster JSON file")
	gamesPerMatchup := flag.Int("games", season.DefaultGamesPerMatchup, "games played between each unordered pair of teams")
	seed := flag.Int64("seed", 1, "base RNG seed; each worker derives seed+worker_index")
	workers := flag.Int("workers", runtime.NumCPU(), "simulation worker pool size")
	retryBound := flag.Int("retry-bound", season.DefaultRetryBound, "max resamples of a game that fails an invariant check")
	outPath := flag.String("out", "", "path to write the results JSON (default: stdout)")
	flag.Parse()

	league, err := rosterio.LoadLeague(*rosterPath)
	if err != nil {
		log.Fatalf("loading roster: %v", err)
	}

	teams := league.Teams()
	if len(teams) < 2 {
		log.Fatalf("league %q carries fewer than two teams", *rosterPath)
	}

	lc := engine.NewLeagueContext(teams)

	progress := make(chan season.Progress, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			fmt.Fprintf(os.Stderr, "\rsimulating games: %d/%d", p.Completed, p.Total)
		}
		fmt.Fprintln(os.Stderr)
	}()

	result, err := season.RunWithRetryBound(lc, teams, *gamesPerMatchup, *seed, *workers, *retryBound, progress)
	close(progress)
	<-done
	if err != nil {
		log.Fatalf("season run failed: %v", err)
	}

	aggregates := make([]types.SeasonAggregate, 0, len(result.Aggregates))
	for _, a := range result.Aggregates {
		aggregates = append(aggregates, a)
	}

	report := engine.ComputeAwards(lc.Percentile, aggregates, teams, result.Standings, league.SeasonYear)

	var finalsMVP awards.Result
	if len(result.Standings) > 0 {
		champion := result.Standings[0].Team
		finalsMVP = engine.ComputeFinalsMVP(aggregates, champion, teams, league.SeasonYear)
	}

	doc := rosterio.ResultsDocument{
		Standings: result.Standings,
		Players:   aggregates,
		Awards:    report,
		FinalsMVP: finalsMVP,
	}

	if *outPath != "" {
		if err := rosterio.SaveResults(*outPath, doc); err != nil {
			log.Fatalf("writing results: %v", err)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("encoding results: %v", err)
	}
}
