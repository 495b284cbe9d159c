package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/video"
)

func v(id uint, category string, channelID uint, durationSeconds int, tags ...string) *video.Video {
	return &video.Video{
		ID:              id,
		Category:        category,
		ChannelID:       channelID,
		DurationSeconds: durationSeconds,
		Tags:            tags,
	}
}

func TestSimilarityWeights(t *testing.T) {
	base := v(1, "music", 10, 300, "live", "rock")

	// Same category only: 10 plus full duration proximity 5.
	assert.InDelta(t, 15, Similarity(base, v(2, "music", 20, 300)), 0.001)

	// Each shared tag adds 5.
	assert.InDelta(t, 25, Similarity(base, v(2, "music", 20, 300, "live", "rock")), 0.001)

	// Same creator adds 15.
	assert.InDelta(t, 30, Similarity(base, v(2, "music", 10, 300)), 0.001)

	// Duration proximity fades by a point per minute of difference.
	assert.InDelta(t, 13, Similarity(base, v(2, "music", 20, 420)), 0.001)

	// Past five minutes of difference the proximity term is zero, never
	// negative.
	assert.InDelta(t, 10, Similarity(base, v(2, "music", 20, 3000)), 0.001)

	// Nothing in common and a large duration gap scores zero.
	assert.InDelta(t, 0, Similarity(base, v(2, "gaming", 20, 3000)), 0.001)
}

func TestSimilarityIsSymmetric(t *testing.T) {
	a := v(1, "music", 10, 300, "live")
	b := v(2, "music", 11, 150, "live", "acoustic")
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}

func TestSimilarityEmptyCategoryNeverMatches(t *testing.T) {
	a := v(1, "", 10, 300)
	b := v(2, "", 20, 300)
	// Only duration proximity counts.
	assert.InDelta(t, 5, Similarity(a, b), 0.001)
}

func TestBuildIndexRanksAndCapsNeighbors(t *testing.T) {
	catalog := []*video.Video{
		v(1, "music", 10, 300, "live"),
		v(2, "music", 10, 300, "live"), // same creator, tag, category: best match for 1
		v(3, "music", 20, 300, "live"), // tag + category
		v(4, "music", 20, 300),         // category only
		v(5, "gaming", 30, 300),        // unrelated
	}

	idx, err := BuildIndex(context.Background(), catalog, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, idx.Size())

	neighbors := idx.NeighborsOf(1)
	require.Len(t, neighbors, 2)
	assert.Equal(t, uint(2), neighbors[0].VideoID)
	assert.Equal(t, uint(3), neighbors[1].VideoID)
	assert.Greater(t, neighbors[0].Score, neighbors[1].Score)

	// A video never lists itself.
	for _, nb := range neighbors {
		assert.NotEqual(t, uint(1), nb.VideoID)
	}

	// The unrelated video shares no blocking bucket with 1.
	for _, nb := range idx.NeighborsOf(5) {
		assert.NotEqual(t, uint(1), nb.VideoID)
	}
}

func TestBuildIndexIsDeterministic(t *testing.T) {
	catalog := []*video.Video{
		v(1, "music", 10, 300, "live", "rock"),
		v(2, "music", 10, 310, "live"),
		v(3, "music", 11, 290, "rock"),
		v(4, "gaming", 12, 300, "live"),
		v(5, "music", 10, 400),
	}

	first, err := BuildIndex(context.Background(), catalog, 3)
	require.NoError(t, err)
	second, err := BuildIndex(context.Background(), catalog, 3)
	require.NoError(t, err)

	for _, item := range catalog {
		assert.Equal(t, first.NeighborsOf(item.ID), second.NeighborsOf(item.ID))
	}
}

func TestBuildIndexTieBreaksByVideoID(t *testing.T) {
	// Three identical videos: neighbor lists must order ties by ascending id.
	catalog := []*video.Video{
		v(3, "music", 10, 300),
		v(1, "music", 10, 300),
		v(2, "music", 10, 300),
	}

	idx, err := BuildIndex(context.Background(), catalog, 5)
	require.NoError(t, err)
	neighbors := idx.NeighborsOf(3)
	require.Len(t, neighbors, 2)
	assert.Equal(t, uint(1), neighbors[0].VideoID)
	assert.Equal(t, uint(2), neighbors[1].VideoID)
}

func TestBuildIndexHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildIndex(ctx, []*video.Video{v(1, "music", 10, 300)}, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
