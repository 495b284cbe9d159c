package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

const (
	minQueryLength = 2
	maxPageSize    = 50
)

// SearchResult is one cached page of search matches. Matching and ordering
// happen in the store; results only converge with the catalog through the
// short search TTL.
type SearchResult struct {
	Query    string         `json:"query"`
	Category string         `json:"category,omitempty"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	HasNext  bool           `json:"has_next"`
	Items    []*video.Video `json:"items"`
}

type SearchService struct {
	videoRepo video.VideoRepository
	cache     cache.CacheService
}

func NewService(videoRepo video.VideoRepository, cacheService cache.CacheService) *SearchService {
	return &SearchService{
		videoRepo: videoRepo,
		cache:     cacheService,
	}
}

// Search returns one page of videos matching q, optionally restricted to a
// category.
func (s *SearchService) Search(ctx context.Context, q, category string, page, pageSize int) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if len(q) < minQueryLength {
		return nil, fmt.Errorf("%w: query too short", common.ErrInvalid)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", common.ErrInvalid, page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size %d", common.ErrInvalid, pageSize)
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	normalized := strings.ToLower(q)
	key := cache.SearchKey(queryHash(normalized, category, page, pageSize))

	var result SearchResult
	err := s.cache.GetWithFallback(ctx, key, &result, func() (any, error) {
		var items []*video.Video
		var hasNext bool
		err := common.RetryTransient(ctx, func() error {
			storeCtx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
			defer cancel()
			var queryErr error
			items, hasNext, queryErr = s.videoRepo.Search(storeCtx, normalized, category, page, pageSize)
			return queryErr
		})
		if err != nil {
			return nil, err
		}
		return &SearchResult{
			Query:    normalized,
			Category: category,
			Page:     page,
			PageSize: pageSize,
			HasNext:  hasNext,
			Items:    items,
		}, nil
	}, environment_variables.EnvironmentVariables.SEARCH_TTL)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func queryHash(q, category string, page, pageSize int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d", q, category, page, pageSize)))
	return hex.EncodeToString(sum[:8])
}
