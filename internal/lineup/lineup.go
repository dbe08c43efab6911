// Package lineup builds a team's rotation, minutes allocation, and
// starter mapping from a full roster (spec §4.4).
package lineup

import (
	"sort"

	"github.com/RamanShrikant/basketball-manager/internal/rating"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// RotationSize is the number of players given nonzero minutes.
const RotationSize = 10

// SeedMinutes is the floor every rotation player starts with before the
// remaining budget is distributed round-robin.
const SeedMinutes = 12

// BenchMinutesCap is the minutes ceiling a player outside the top-5 by
// minutes may not exceed during hill-climbing.
const BenchMinutesCap = 24

// Lineup is the fully resolved output of the autocomplete algorithm.
type Lineup struct {
	// Starters holds exactly 5 names in positional order {PG,SG,SF,PF,C}.
	Starters [5]string
	// Order lists every roster player: 5 starters, then remaining
	// rotation players sorted by minutes desc, then inactive players.
	Order   []string
	Minutes types.MinutesAllocation
}

type scored struct {
	player types.Player
	score  float64
}

func scorePlayer(p types.Player) float64 {
	return float64(p.Overall) + 0.15*float64(p.Stamina-70)
}

// Build runs the full lineup autocomplete algorithm against a team's
// roster: rotation seeding, minutes distribution, hill-climb
// reallocation, and starter mapping (spec §4.4).
func Build(team types.Team) Lineup {
	rotation := seedRotation(team)
	minutes := seedAndDistributeMinutes(rotation)
	hillClimb(team, rotation, minutes)
	starters := mapStarters(rotation)
	order := orderRoster(team, rotation, starters, minutes)

	return Lineup{Starters: starters, Order: order, Minutes: minutes}
}

// seedRotation picks the RotationSize highest-value players: the
// highest scorer eligible at each of the 5 positions first, then the
// next-highest scorers overall fill out the rest.
func seedRotation(team types.Team) []types.Player {
	all := make([]scored, 0, len(team.Players))
	for _, p := range team.Players {
		all = append(all, scored{player: p, score: scorePlayer(p)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	chosen := map[string]bool{}
	rotation := make([]types.Player, 0, RotationSize)

	for _, pos := range types.AllPositions {
		for _, s := range all {
			if chosen[s.player.Name] {
				continue
			}
			if s.player.CoversPosition(pos) {
				chosen[s.player.Name] = true
				rotation = append(rotation, s.player)
				break
			}
		}
	}

	for _, s := range all {
		if len(rotation) >= RotationSize {
			break
		}
		if chosen[s.player.Name] {
			continue
		}
		chosen[s.player.Name] = true
		rotation = append(rotation, s.player)
	}

	return rotation
}

// seedAndDistributeMinutes gives every rotation player a floor of
// SeedMinutes, then hands out the remaining budget one minute at a time
// in round-robin order, highest score first.
func seedAndDistributeMinutes(rotation []types.Player) types.MinutesAllocation {
	minutes := types.MinutesAllocation{}
	n := len(rotation)
	if n == 0 {
		return minutes
	}

	ordered := make([]types.Player, n)
	copy(ordered, rotation)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scorePlayer(ordered[i]) > scorePlayer(ordered[j])
	})

	for _, p := range ordered {
		minutes[p.Name] = SeedMinutes
	}

	remaining := rating.RegulationMinutes - SeedMinutes*n
	for i := 0; remaining > 0; i++ {
		p := ordered[i%n]
		minutes[p.Name]++
		remaining--
	}

	return minutes
}

// hillClimb repeatedly tries to move a single minute from one rotation
// player to another if doing so raises the team's overall rating,
// honoring the a>12 / b-in-top-5-or-<24 constraints (spec §4.4 step 4).
func hillClimb(team types.Team, rotation []types.Player, minutes types.MinutesAllocation) {
	const maxSweeps = 60
	names := make([]string, len(rotation))
	for i, p := range rotation {
		names[i] = p.Name
	}

	current := rating.Compute(team, minutes).Overall

	for sweep := 0; sweep < maxSweeps; sweep++ {
		improved := false
		top5 := topFiveByMinutes(names, minutes)

		for _, a := range names {
			if minutes[a] <= SeedMinutes {
				continue
			}
			for _, b := range names {
				if a == b {
					continue
				}
				if !top5[b] && minutes[b]+1 > BenchMinutesCap {
					continue
				}

				minutes[a]--
				minutes[b]++
				next := rating.Compute(team, minutes).Overall
				if next > current {
					current = next
					improved = true
					top5 = topFiveByMinutes(names, minutes)
				} else {
					minutes[a]++
					minutes[b]--
				}
			}
		}

		if !improved {
			break
		}
	}
}

func topFiveByMinutes(names []string, minutes types.MinutesAllocation) map[string]bool {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool { return minutes[ordered[i]] > minutes[ordered[j]] })

	top := map[string]bool{}
	for i := 0; i < len(ordered) && i < 5; i++ {
		top[ordered[i]] = true
	}
	return top
}

// mapStarters enumerates 5-subsets of the rotation and permutations onto
// {PG,SG,SF,PF,C}, scoring each valid mapping and keeping the best
// (spec §4.4 step 5). Falls back to the 5 highest-overall rotation
// players in listed position order if no valid mapping exists.
func mapStarters(rotation []types.Player) [5]string {
	var best [5]string
	bestScore := -1.0
	found := false

	n := len(rotation)
	combIdx := make([]int, 0, 5)
	var combine func(start int)
	combine = func(start int) {
		if len(combIdx) == 5 {
			tryPermutations(rotation, combIdx, &best, &bestScore, &found)
			return
		}
		for i := start; i < n; i++ {
			combIdx = append(combIdx, i)
			combine(i + 1)
			combIdx = combIdx[:len(combIdx)-1]
		}
	}
	combine(0)

	if found {
		return best
	}
	return fallbackStarters(rotation)
}

func tryPermutations(rotation []types.Player, idx []int, best *[5]string, bestScore *float64, found *bool) {
	perm := append([]int(nil), idx...)
	permute(perm, 0, func(order []int) {
		var names [5]string
		sumOverall := 0.0
		primaryMatches := 0
		secondaryUses := 0
		valid := true

		for slot, playerIdx := range order {
			p := rotation[playerIdx]
			pos := types.AllPositions[slot]
			switch {
			case p.Pos == pos:
				primaryMatches++
			case p.HasSecondary() && p.SecondaryPos == pos:
				secondaryUses++
			default:
				valid = false
			}
			names[slot] = p.Name
			sumOverall += float64(p.Overall)
		}

		if !valid {
			return
		}

		score := sumOverall/5 + 0.02*float64(primaryMatches) - 0.01*float64(secondaryUses)
		if score > *bestScore {
			*bestScore = score
			*best = names
			*found = true
		}
	})
}

// permute calls visit once for every permutation of a (by recursive
// swapping from position k onward), leaving a restored to its original
// order afterward.
func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

func fallbackStarters(rotation []types.Player) [5]string {
	ordered := make([]types.Player, len(rotation))
	copy(ordered, rotation)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Overall > ordered[j].Overall })

	var starters [5]string
	for i := 0; i < 5 && i < len(ordered); i++ {
		starters[i] = ordered[i].Name
	}
	return starters
}

// orderRoster lists every player on the team: the 5 starters in
// positional order, then the remaining rotation players sorted by
// minutes desc, then every inactive player with 0 minutes.
func orderRoster(team types.Team, rotation []types.Player, starters [5]string, minutes types.MinutesAllocation) []string {
	isStarter := map[string]bool{}
	for _, s := range starters {
		if s != "" {
			isStarter[s] = true
		}
	}

	inRotation := map[string]bool{}
	for _, p := range rotation {
		inRotation[p.Name] = true
	}

	order := make([]string, 0, len(team.Players))
	for _, s := range starters {
		if s != "" {
			order = append(order, s)
		}
	}

	bench := make([]types.Player, 0)
	for _, p := range rotation {
		if !isStarter[p.Name] {
			bench = append(bench, p)
		}
	}
	sort.SliceStable(bench, func(i, j int) bool { return minutes[bench[i].Name] > minutes[bench[j].Name] })
	for _, p := range bench {
		order = append(order, p.Name)
	}

	for _, p := range team.Players {
		if !inRotation[p.Name] {
			order = append(order, p.Name)
		}
	}

	return order
}
