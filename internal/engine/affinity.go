package engine

import (
	"math"
	"time"

	"video-recommendation-service/internal/models"
)

// Config holds all recommendation engine tuning. A Config value is passed
// explicitly to every computation so tests can run in parallel with their
// own settings.
type Config struct {
	// HalfLife is the time after which an interaction's influence halves.
	HalfLife time.Duration
	// RecencyWindow bounds which interactions count as "current" for
	// seen-video exclusion and the popularity fallback.
	RecencyWindow time.Duration
	// MaxAbsWeight bounds explicit interaction weights at record time.
	MaxAbsWeight float64
	// TypeWeights maps interaction types to their default weight.
	TypeWeights map[string]float64
	// CreatorWeight scales the creator affinity term relative to tags.
	CreatorWeight float64
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		HalfLife:      72 * time.Hour,
		RecencyWindow: 720 * time.Hour,
		MaxAbsWeight:  10,
		TypeWeights: map[string]float64{
			models.InteractionView:  1,
			models.InteractionLike:  3,
			models.InteractionShare: 5,
			models.InteractionSkip:  -2,
		},
		CreatorWeight: 0.5,
	}
}

// Weight returns the effective weight of an interaction: the explicit
// weight when one was recorded, the type default otherwise.
func (c Config) Weight(i models.Interaction) float64 {
	if i.Weight != 0 {
		return i.Weight
	}
	return c.TypeWeights[i.Type]
}

// Affinity is a user's derived preference distribution over tags and
// creators. It is recomputed from the interaction log, never mutated
// directly.
type Affinity struct {
	Tags     map[string]float64
	Creators map[string]float64
}

// Empty reports whether the affinity carries no signal.
func (a Affinity) Empty() bool {
	return len(a.Tags) == 0 && len(a.Creators) == 0
}

// ComputeAffinity derives a user's affinity from their interactions.
// Each interaction contributes its effective weight, decayed exponentially
// by elapsed time since it was recorded, split evenly across the video's
// tags so no single event amplifies beyond its decayed weight. The same
// decayed weight accumulates per creator. Interactions referencing videos
// absent from the catalog are skipped.
//
// The computation is deterministic for a fixed interaction set and clock:
// recomputing with no new interactions yields equal scores.
func ComputeAffinity(cfg Config, interactions []models.Interaction, videos map[string]models.Video, now time.Time) Affinity {
	aff := Affinity{
		Tags:     make(map[string]float64),
		Creators: make(map[string]float64),
	}

	for _, inter := range interactions {
		video, ok := videos[inter.VideoID]
		if !ok {
			continue
		}

		w := cfg.Weight(inter) * decay(cfg.HalfLife, now.Sub(inter.CreatedAt))
		if w == 0 {
			continue
		}

		if len(video.Tags) > 0 {
			perTag := w / float64(len(video.Tags))
			for _, tag := range video.Tags {
				aff.Tags[normalizeTag(tag)] += perTag
			}
		}
		if video.CreatorID != "" {
			aff.Creators[video.CreatorID] += w
		}
	}

	return aff
}

// SeedFromInterests builds a synthetic affinity from a user's declared
// interests, used for cold-start ranking before any interactions exist.
func SeedFromInterests(interests []string) Affinity {
	aff := Affinity{
		Tags:     make(map[string]float64),
		Creators: make(map[string]float64),
	}
	for _, tag := range interests {
		if t := normalizeTag(tag); t != "" {
			aff.Tags[t] = 1
		}
	}
	return aff
}

// decay returns the exponential decay factor for the given elapsed time.
// Future timestamps decay as if they were current.
func decay(halfLife time.Duration, elapsed time.Duration) float64 {
	if halfLife <= 0 {
		return 1
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return math.Exp2(-elapsed.Hours() / halfLife.Hours())
}
