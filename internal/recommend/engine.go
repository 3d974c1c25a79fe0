// Package recommend produces ranked video suggestions from interaction
// history. The engine is stateless per call: every request fetches fresh
// state from storage, scores a bounded candidate pool and returns ids.
package recommend

import (
	"log"
	"sort"
	"time"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/store"
)

// candidatePoolSize bounds the recent-videos scan considered per request.
const candidatePoolSize = 50

const (
	categoryWeight        = 3.0
	frequencyWeight       = 0.5
	tagWeight             = 1.0
	popularityCap         = 2.0
	baseScore             = 0.1
	recencyWindowDays     = 15
	likeInteractionWeight = 2

	similarOwnerBonus     = 4.0
	similarCategoryWeight = 2.5
	similarTagWeight      = 1.0
	similarPopularityCap  = 1.5
	similarRecencyDays    = 30

	trendingViewWeight    = 0.7
	trendingRecencyWeight = 0.3
	trendingRecencyDays   = 30
)

type Engine struct {
	storage store.Storage
	views   *store.ViewTracker // optional; nil falls back to lifetime views
	logger  *log.Logger
}

func NewEngine(storage store.Storage, views *store.ViewTracker, logger *log.Logger) *Engine {
	return &Engine{
		storage: storage,
		views:   views,
		logger:  logger,
	}
}

// profile is a user's interest summary built from watch history and likes. A
// like counts double a plain view.
type profile struct {
	categoryFreq map[string]int
	tags         map[string]bool
	viewedIDs    map[int64]bool
	skipped      int
}

func (e *Engine) buildProfile(userID int64) profile {
	p := profile{
		categoryFreq: map[string]int{},
		tags:         map[string]bool{},
		viewedIDs:    map[int64]bool{},
	}

	history, err := e.storage.GetVideoHistoryByUser(userID)
	if err != nil {
		e.logger.Println("Error fetching watch history for profile:", err)
		history = nil
	}
	for _, h := range history {
		p.viewedIDs[h.VideoID] = true
		e.addInteraction(&p, h.VideoID, 1)
	}

	liked, err := e.storage.GetLikedVideosByUser(userID)
	if err != nil {
		e.logger.Println("Error fetching likes for profile:", err)
		liked = nil
	}
	for _, l := range liked {
		e.addInteraction(&p, l.VideoID, likeInteractionWeight)
	}

	if p.skipped > 0 {
		e.logger.Printf("Profile for user %d built with %d items skipped", userID, p.skipped)
	}
	return p
}

// addInteraction folds one history/like item into the profile. Fetch failures
// skip the item; one bad row never aborts the request.
func (e *Engine) addInteraction(p *profile, videoID int64, weight int) {
	video, err := e.storage.GetVideo(videoID)
	if err != nil || video == nil {
		p.skipped++
		return
	}
	for _, c := range video.Categories {
		p.categoryFreq[c] += weight
	}
	for _, t := range video.Tags {
		p.tags[t] = true
	}
}

type scored struct {
	video models.Video
	score float64
}

func rankIDs(candidates []scored, limit int) []int64 {
	// stable sort: ties keep candidate-pool encounter order, which is
	// arbitrary but deterministic per pool
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	ids := []int64{}
	for _, c := range candidates {
		if c.score <= 0 {
			continue
		}
		ids = append(ids, c.video.Id)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	return ids
}

// recencyBonus decays linearly from 1 to 0 over the window.
func recencyBonus(createdAt time.Time, windowDays int) float64 {
	age := time.Since(createdAt)
	window := time.Duration(windowDays) * 24 * time.Hour
	if age < 0 || age >= window {
		return 0
	}
	return 1 - float64(age)/float64(window)
}

func capped(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// GetRecommendations returns the personalized "for you" ranking. Storage
// failures degrade to an empty list; they never propagate to the caller.
func (e *Engine) GetRecommendations(userID int64, limit int) []int64 {
	p := e.buildProfile(userID)

	pool, err := e.storage.GetRecentVideos(candidatePoolSize)
	if err != nil {
		e.logger.Println("Error fetching candidate pool:", err)
		return []int64{}
	}

	candidates := []scored{}
	for _, v := range pool {
		if p.viewedIDs[v.Id] {
			continue
		}
		candidates = append(candidates, scored{video: v, score: e.personalScore(v, p)})
	}
	return rankIDs(candidates, limit)
}

func (e *Engine) personalScore(v models.Video, p profile) float64 {
	score := baseScore
	for _, c := range v.Categories {
		freq, ok := p.categoryFreq[c]
		if !ok {
			continue
		}
		score += categoryWeight + float64(freq)*frequencyWeight
	}
	for _, t := range v.Tags {
		if p.tags[t] {
			score += tagWeight
		}
	}
	score += capped(float64(v.Views)/1000, popularityCap)
	score += recencyBonus(v.Created_At, recencyWindowDays)
	return score
}

// GetSimilarVideos ranks candidates against a source video. userID is
// optional; when present the caller's watch history is excluded from the
// results.
func (e *Engine) GetSimilarVideos(videoID int64, userID *int64, limit int) []int64 {
	source, err := e.storage.GetVideo(videoID)
	if err != nil || source == nil {
		if err != nil {
			e.logger.Println("Error fetching source video:", err)
		}
		return []int64{}
	}

	viewedIDs := map[int64]bool{}
	if userID != nil {
		p := e.buildProfile(*userID)
		viewedIDs = p.viewedIDs
	}

	pool, err := e.storage.GetRecentVideos(candidatePoolSize)
	if err != nil {
		e.logger.Println("Error fetching candidate pool:", err)
		return []int64{}
	}

	sourceCategories := stringSet(source.Categories)
	sourceTags := stringSet(source.Tags)

	candidates := []scored{}
	for _, v := range pool {
		if v.Id == videoID || viewedIDs[v.Id] {
			continue
		}

		score := 0.0
		if v.UserID == source.UserID {
			score += similarOwnerBonus
		}
		for _, c := range v.Categories {
			if sourceCategories[c] {
				score += similarCategoryWeight
			}
		}
		for _, t := range v.Tags {
			if sourceTags[t] {
				score += similarTagWeight
			}
		}
		score += capped(float64(v.Views)/1000, similarPopularityCap)
		score += recencyBonus(v.Created_At, similarRecencyDays)

		candidates = append(candidates, scored{video: v, score: score})
	}
	return rankIDs(candidates, limit)
}

// GetCategoryRecommendations returns trending videos within a category,
// blending windowed view counts with recency.
func (e *Engine) GetCategoryRecommendations(category string, limit int) []models.Video {
	pool, err := e.storage.GetRecentVideos(candidatePoolSize)
	if err != nil {
		e.logger.Println("Error fetching candidate pool:", err)
		return []models.Video{}
	}

	inCategory := []models.Video{}
	maxViews := 0.0
	viewCounts := map[int64]float64{}
	for _, v := range pool {
		if !containsString(v.Categories, category) {
			continue
		}
		inCategory = append(inCategory, v)

		views := float64(v.Views)
		if e.views != nil {
			delta, err := e.views.ViewDelta(v.Id)
			if err == nil {
				views = delta
			}
		}
		viewCounts[v.Id] = views
		if views > maxViews {
			maxViews = views
		}
	}

	candidates := make([]scored, 0, len(inCategory))
	for _, v := range inCategory {
		viewScore := 0.0
		if maxViews > 0 {
			viewScore = viewCounts[v.Id] / maxViews
		}
		score := trendingViewWeight*viewScore + trendingRecencyWeight*recencyBonus(v.Created_At, trendingRecencyDays)
		candidates = append(candidates, scored{video: v, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	videos := []models.Video{}
	for _, c := range candidates {
		videos = append(videos, c.video)
		if limit > 0 && len(videos) >= limit {
			break
		}
	}
	return videos
}

func stringSet(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
