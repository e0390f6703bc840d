package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/models/request_models"
	"foodybuddy/internal/models/response_models"
	"foodybuddy/internal/onboarding"
	"foodybuddy/internal/repositories"
	mem "foodybuddy/pkg/memcache"
	"foodybuddy/pkg/metrics"
	"foodybuddy/pkg/utils"
)

// Sampling temperature for both LLM calls. Not to be confused with the
// weather temperature supplied by the caller.
const llmSamplingTemperature = 0.3

type SuggestionConfig struct {
	DefaultLimit       int
	DefaultTemperature float64
	MaxExpandedDishes  int
	ExpansionCacheTTL  time.Duration
}

type SuggestionServiceInterface interface {
	// Suggest runs expand, parallel embed+search and rank for one request.
	// Any failure along the way fails the whole request.
	Suggest(ctx context.Context, userID string, request request_models.SuggestionRequest) (*response_models.SuggestionsResponse, error)
}

type SuggestionService struct {
	llm        utils.LLMClientInterface
	dishRepo   repositories.DishEmbeddingRepository
	onboarding OnboardingServiceInterface
	catalog    *onboarding.Catalog
	cache      mem.Store
	cfg        SuggestionConfig
	log        *zap.Logger
}

func NewSuggestionService(
	llm utils.LLMClientInterface,
	dishRepo repositories.DishEmbeddingRepository,
	onboardingService OnboardingServiceInterface,
	catalog *onboarding.Catalog,
	cache mem.Store,
	cfg SuggestionConfig,
	log *zap.Logger,
) SuggestionServiceInterface {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.DefaultTemperature == 0 {
		cfg.DefaultTemperature = 30
	}
	if cfg.MaxExpandedDishes <= 0 {
		cfg.MaxExpandedDishes = 10
	}
	return &SuggestionService{
		llm:        llm,
		dishRepo:   dishRepo,
		onboarding: onboardingService,
		catalog:    catalog,
		cache:      cache,
		cfg:        cfg,
		log:        log.Named("suggestion"),
	}
}

func (s *SuggestionService) Suggest(ctx context.Context, userID string, request request_models.SuggestionRequest) (*response_models.SuggestionsResponse, error) {
	query := strings.TrimSpace(request.PartialQuery)
	if query == "" {
		return nil, fmt.Errorf("%w: partial_query is empty", utils.ErrInvalidInput)
	}
	limit := s.cfg.DefaultLimit
	if request.Limit != nil {
		limit = *request.Limit
	}
	if limit < 1 || limit > 100 {
		return nil, fmt.Errorf("%w: limit must be between 1 and 100", utils.ErrInvalidInput)
	}
	temperature := s.cfg.DefaultTemperature
	if request.Temperature != nil {
		temperature = *request.Temperature
	}

	start := time.Now()
	terms, err := s.expand(ctx, query)
	metrics.ObserveStage("expand", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	dishes, answers, err := s.retrieve(ctx, userID, terms, limit)
	metrics.ObserveStage("retrieve", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if len(dishes) == 0 {
		s.log.Info("no dishes matched", zap.String("query", query), zap.Strings("terms", terms))
		return &response_models.SuggestionsResponse{Suggestions: []response_models.FoodSuggestion{}, Total: 0}, nil
	}

	start = time.Now()
	suggestions, err := s.rank(ctx, query, temperature, answers, dishes, limit)
	metrics.ObserveStage("rank", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	s.log.Info("suggestions generated",
		zap.String("user_id", userID),
		zap.Int("terms", len(terms)),
		zap.Int("candidates", len(dishes)),
		zap.Int("suggestions", len(suggestions)),
	)
	return &response_models.SuggestionsResponse{Suggestions: suggestions, Total: len(suggestions)}, nil
}

// expand turns the free text query into dish names. Cache failures are
// logged and treated as misses.
func (s *SuggestionService) expand(ctx context.Context, query string) ([]string, error) {
	key := normalizeQuery(query)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.ExpansionCacheRequests.WithLabelValues("error").Inc()
			s.log.Warn("expansion cache read failed", zap.Error(err))
		case ok:
			var terms []string
			if err := json.Unmarshal([]byte(cached), &terms); err == nil && len(terms) > 0 {
				metrics.ExpansionCacheRequests.WithLabelValues("hit").Inc()
				return terms, nil
			}
		default:
			metrics.ExpansionCacheRequests.WithLabelValues("miss").Inc()
		}
	}

	raw, err := s.llm.GenerateJSON(ctx, expansionSystemPrompt, buildExpansionPrompt(query), llmSamplingTemperature)
	if err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}
	if err := validateJSON(expansionSchema, raw); err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}
	var out struct {
		Foods []string `json:"foods"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: decode expansion: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	terms := dedupeTerms(out.Foods, s.cfg.MaxExpandedDishes)
	if len(terms) == 0 {
		return []string{query}, nil
	}

	if s.cache != nil {
		if payload, err := json.Marshal(terms); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.cfg.ExpansionCacheTTL); err != nil {
				s.log.Warn("expansion cache write failed", zap.Error(err))
			}
		}
	}
	return terms, nil
}

// retrieve embeds and searches every term concurrently while the caller's
// preferences load. The first error cancels the rest.
func (s *SuggestionService) retrieve(ctx context.Context, userID string, terms []string, limit int) ([]db_models.DishMatch, map[string]onboarding.AnswerValue, error) {
	g, gctx := errgroup.WithContext(ctx)

	perTerm := make([][]db_models.DishMatch, len(terms))
	for i, term := range terms {
		g.Go(func() error {
			vec, err := s.llm.GetEmbedding(gctx, term)
			if err != nil {
				return fmt.Errorf("embed %q: %w", term, err)
			}
			hits, err := s.search(gctx, vec, limit)
			if err != nil {
				return err
			}
			perTerm[i] = hits
			return nil
		})
	}

	var answers map[string]onboarding.AnswerValue
	g.Go(func() error {
		a, err := s.onboarding.LoadAnswers(gctx, userID)
		if err != nil {
			return err
		}
		answers = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mergeMatches(perTerm), answers, nil
}

func (s *SuggestionService) search(ctx context.Context, vec pgvector.Vector, limit int) ([]db_models.DishMatch, error) {
	hits, err := s.dishRepo.SearchByVector(ctx, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrVectorSearchFailed, err)
	}
	return hits, nil
}

func (s *SuggestionService) rank(ctx context.Context, query string, temperature float64, answers map[string]onboarding.AnswerValue, dishes []db_models.DishMatch, limit int) ([]response_models.FoodSuggestion, error) {
	prompt := buildRankingPrompt(query, temperature, s.catalog.Describe(answers), dishes)

	raw, err := s.llm.GenerateJSON(ctx, rankingSystemPrompt, prompt, llmSamplingTemperature)
	if err != nil {
		return nil, fmt.Errorf("rank dishes: %w", err)
	}
	if err := validateJSON(rankingSchema, raw); err != nil {
		return nil, fmt.Errorf("rank dishes: %w", err)
	}

	var out rankingOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: decode ranking: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	byName := make(map[string]*db_models.DishMatch, len(dishes))
	for i := range dishes {
		byName[strings.ToLower(strings.TrimSpace(dishes[i].DishName))] = &dishes[i]
	}

	suggestions := make([]response_models.FoodSuggestion, 0, len(out.Suggestions))
	for _, d := range out.Suggestions {
		sug := d.toResponse()
		if src, ok := byName[strings.ToLower(sug.DishName)]; ok {
			fillFromKnowledgeBase(&sug, src)
		}
		suggestions = append(suggestions, sug)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].FinalRankingScore > suggestions[j].FinalRankingScore
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// fillFromKnowledgeBase copies stored facts the model left empty.
func fillFromKnowledgeBase(sug *response_models.FoodSuggestion, src *db_models.DishMatch) {
	if sug.ImageLink == nil && src.ImageLink != nil {
		sug.ImageLink = src.ImageLink
	}
	if sug.NutrientContent == nil && src.NutrientContent != nil {
		sug.NutrientContent = src.NutrientContent
	}
	if sug.Calories == nil {
		sug.Calories = src.Calories
	}
	if sug.Fat == nil {
		sug.Fat = src.Fat
	}
	if sug.Fiber == nil {
		sug.Fiber = src.Fiber
	}
	if sug.Sugar == nil {
		sug.Sugar = src.Sugar
	}
	if sug.Protein == nil {
		sug.Protein = src.Protein
	}
	if len(sug.Ingredients) == 0 && len(src.Ingredients) > 0 {
		sug.Ingredients = append([]string(nil), src.Ingredients...)
	}
}

// mergeMatches flattens per-term hits, keeping one entry per dish id with its
// best similarity, most similar first.
func mergeMatches(perTerm [][]db_models.DishMatch) []db_models.DishMatch {
	index := make(map[string]int)
	var merged []db_models.DishMatch
	for _, hits := range perTerm {
		for _, h := range hits {
			if i, ok := index[h.DishID]; ok {
				if h.Similarity > merged[i].Similarity {
					merged[i].Similarity = h.Similarity
				}
				continue
			}
			index[h.DishID] = len(merged)
			merged = append(merged, h)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Similarity > merged[j].Similarity })
	return merged
}

func dedupeTerms(in []string, max int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
		if len(out) == max {
			break
		}
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
