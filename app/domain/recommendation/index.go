package recommendation

import (
	"context"
	"sort"
	"time"

	"streamvibe.tv/read-gateway/app/domain/video"
)

// Neighbor is one entry of a video's precomputed similarity list.
type Neighbor struct {
	VideoID uint
	Score   float64
}

// SimilarityIndex is an immutable snapshot mapping each catalog video to its
// top-N most similar neighbors. Memory is O(catalog × N); queries are O(1)
// per video. Snapshots are swapped wholesale, never mutated.
type SimilarityIndex struct {
	BuiltAt   time.Time
	neighbors map[uint][]Neighbor
	videos    map[uint]*video.Video
}

// NeighborsOf returns the precomputed neighbor list of id, best first.
func (idx *SimilarityIndex) NeighborsOf(id uint) []Neighbor {
	return idx.neighbors[id]
}

// VideoByID returns the snapshot's copy of the video.
func (idx *SimilarityIndex) VideoByID(id uint) (*video.Video, bool) {
	v, ok := idx.videos[id]
	return v, ok
}

// Size returns the number of catalog videos in the snapshot.
func (idx *SimilarityIndex) Size() int {
	return len(idx.videos)
}

// Similarity scores how alike two videos are. The function is symmetric and
// deterministic for a fixed pair: category match 10, each shared tag 5, same
// creator 15, duration proximity up to 5 fading by minute of difference.
func Similarity(a, b *video.Video) float64 {
	score := 0.0
	if a.Category != "" && a.Category == b.Category {
		score += 10
	}
	score += 5 * float64(commonTagCount(a.Tags, b.Tags))
	if a.ChannelID == b.ChannelID {
		score += 15
	}
	durationDiff := a.DurationSeconds - b.DurationSeconds
	if durationDiff < 0 {
		durationDiff = -durationDiff
	}
	if proximity := 5 - float64(durationDiff)/60; proximity > 0 {
		score += proximity
	}
	return score
}

func commonTagCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	n := 0
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			n++
		}
	}
	return n
}

// BuildIndex computes the similarity snapshot for the given catalog, keeping
// only the topN neighbors per video. Candidate pairs are drawn from shared
// category, creator and tag buckets: a pair sharing none of those can score at
// most the duration proximity and never displaces a real neighbor. The
// context cancels the build; a cancelled build leaves no partial snapshot
// behind.
func BuildIndex(ctx context.Context, catalog []*video.Video, topN int) (*SimilarityIndex, error) {
	videos := make(map[uint]*video.Video, len(catalog))
	byCategory := make(map[string][]uint)
	byChannel := make(map[uint][]uint)
	byTag := make(map[string][]uint)

	for _, v := range catalog {
		videos[v.ID] = v
		if v.Category != "" {
			byCategory[v.Category] = append(byCategory[v.Category], v.ID)
		}
		byChannel[v.ChannelID] = append(byChannel[v.ChannelID], v.ID)
		for _, tag := range v.Tags {
			byTag[tag] = append(byTag[tag], v.ID)
		}
	}

	neighbors := make(map[uint][]Neighbor, len(catalog))
	for i, v := range catalog {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		seen := map[uint]struct{}{v.ID: {}}
		candidates := make([]Neighbor, 0, 64)
		collect := func(ids []uint) {
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				candidates = append(candidates, Neighbor{
					VideoID: id,
					Score:   Similarity(v, videos[id]),
				})
			}
		}
		collect(byCategory[v.Category])
		collect(byChannel[v.ChannelID])
		for _, tag := range v.Tags {
			collect(byTag[tag])
		}

		sort.Slice(candidates, func(a, b int) bool {
			if candidates[a].Score != candidates[b].Score {
				return candidates[a].Score > candidates[b].Score
			}
			return candidates[a].VideoID < candidates[b].VideoID
		})
		if len(candidates) > topN {
			candidates = candidates[:topN]
		}
		neighbors[v.ID] = candidates
	}

	return &SimilarityIndex{
		BuiltAt:   time.Now(),
		neighbors: neighbors,
		videos:    videos,
	}, nil
}
