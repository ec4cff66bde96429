package opr

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/okian/scoutrank/internal/domain/model"
)

// maxCondition is the condition number above which the factorized system is
// treated as singular.
const maxCondition = 1e12

// observation is one equation: the sum of the roster's contributions
// equals value.
type observation struct {
	match string
	teams [model.AllianceSize]int
	value float64
}

// observations turns matches into one equation per alliance appearance,
// skipping alliances for which extract reports nothing.
func observations(matches []model.MatchRecord, extract func(own, opp *model.Alliance) (float64, bool)) ([]observation, error) {
	out := make([]observation, 0, 2*len(matches))
	for i := range matches {
		m := &matches[i]
		key := m.Key
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		sides := [2][2]*model.Alliance{{&m.Red, &m.Blue}, {&m.Blue, &m.Red}}
		for _, s := range sides {
			v, ok := extract(s[0], s[1])
			if !ok {
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: match %s", ErrNonFiniteScore, key)
			}
			out = append(out, observation{match: key, teams: s[0].Teams, value: v})
		}
	}
	return out, nil
}

func distinctMatches(obs []observation) int {
	seen := make(map[string]struct{}, len(obs))
	for _, o := range obs {
		seen[o.match] = struct{}{}
	}
	return len(seen)
}

// solve fits per-team contributions to obs by least squares through the
// normal equations (AᵀA + λI)x = Aᵀb.
func (e *Estimator) solve(ctx context.Context, obs []observation) (map[int]float64, error) {
	if n := distinctMatches(obs); n < e.minMatches {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientMatches, n, e.minMatches)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := make(map[int]int)
	for _, o := range obs {
		for _, t := range o.teams {
			index[t] = 0
		}
	}
	teams := make([]int, 0, len(index))
	for t := range index {
		teams = append(teams, t)
	}
	sort.Ints(teams)
	for i, t := range teams {
		index[t] = i
	}

	n := len(teams)
	ata := mat.NewSymDense(n, nil)
	atb := mat.NewVecDense(n, nil)
	for _, o := range obs {
		for _, ti := range o.teams {
			i := index[ti]
			atb.SetVec(i, atb.AtVec(i)+o.value)
			for _, tj := range o.teams {
				if j := index[tj]; j >= i {
					ata.SetSym(i, j, ata.At(i, j)+1)
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		ata.SetSym(i, i, ata.At(i, i)+e.lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(ata); !ok || chol.Cond() > maxCondition {
		return nil, fmt.Errorf("%w: %d teams over %d equations", ErrSingularSystem, n, len(obs))
	}
	x := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(x, atb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolveFailed, err)
	}

	out := make(map[int]float64, n)
	for i, t := range teams {
		v := x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: team %d", ErrSolveFailed, t)
		}
		out[t] = v
	}
	return out, nil
}
