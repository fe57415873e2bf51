package engine

import (
	"sort"
	"strings"

	"video-recommendation-service/internal/models"
)

// ScoredVideo is a candidate with its raw ranking score.
type ScoredVideo struct {
	Video models.Video
	Score float64
}

// Rank orders the candidate videos for a user.
//
// With a non-empty affinity, a candidate scores the sum of tag affinities
// normalized by its tag count, plus the creator affinity at reduced weight.
// With an empty affinity the popularity counts take over. Ties break by
// newest created_at, then by id ascending, so the ordering is fully
// deterministic.
func Rank(cfg Config, aff Affinity, candidates []models.Video, popularity map[string]int) []ScoredVideo {
	scored := make([]ScoredVideo, 0, len(candidates))
	useAffinity := !aff.Empty()

	for _, v := range candidates {
		var score float64
		if useAffinity {
			score = affinityScore(cfg, aff, v)
		} else {
			score = float64(popularity[v.ID])
		}
		scored = append(scored, ScoredVideo{Video: v, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if !scored[i].Video.CreatedAt.Equal(scored[j].Video.CreatedAt) {
			return scored[i].Video.CreatedAt.After(scored[j].Video.CreatedAt)
		}
		return scored[i].Video.ID < scored[j].Video.ID
	})

	return scored
}

func affinityScore(cfg Config, aff Affinity, v models.Video) float64 {
	var score float64
	if len(v.Tags) > 0 {
		var sum float64
		for _, tag := range v.Tags {
			sum += aff.Tags[normalizeTag(tag)]
		}
		score = sum / float64(len(v.Tags))
	}
	if v.CreatorID != "" {
		score += cfg.CreatorWeight * aff.Creators[v.CreatorID]
	}
	return score
}

// NormalizePercent rescales raw scores to 0..100 against the best
// candidate. A non-positive maximum maps everything to zero.
func NormalizePercent(scored []ScoredVideo) []ScoredVideo {
	var max float64
	for _, s := range scored {
		if s.Score > max {
			max = s.Score
		}
	}
	out := make([]ScoredVideo, len(scored))
	for i, s := range scored {
		pct := 0.0
		if max > 0 {
			pct = s.Score / max * 100
		}
		out[i] = ScoredVideo{Video: s.Video, Score: pct}
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
