package service

import (
	"context"
	"sort"
	"strings"

	"github.com/etbank-analytics/bankreviews-backend/internal/config"
	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/repository"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// InsightService derives the analytical read models from stored reviews:
// per-bank KPIs, ranked driver and pain-point themes, qualitative evidence
// snippets, and recommendations. Every result is recomputed from the review
// table on each call.
//
// The driver and pain-point scores weight sentiment purity by rating level
// and by how much of the bank's feedback the theme represents:
//
//	driver score = pct_positive * avg_rating * share_within_bank
//	pain score   = pct_negative * (6 - avg_rating) * share_within_bank
//
// Themes below the configured sample floor never reach the ranking, and the
// synthetic UNKNOWN bucket is reported in theme stats but never ranked.
type InsightService struct {
	statsRepo repository.StatsRepository
	settings  config.InsightSettings
}

// NewInsightService creates a new InsightService.
func NewInsightService(statsRepo repository.StatsRepository, settings config.InsightSettings) *InsightService {
	return &InsightService{
		statsRepo: statsRepo,
		settings:  settings,
	}
}

// BankKPIs returns the headline statistics for every bank.
func (s *InsightService) BankKPIs(ctx context.Context) ([]*models.BankKPI, error) {
	return s.statsRepo.BankKPIs(ctx)
}

// ThemeStats returns the per-(bank, theme) aggregates above the configured
// sample floor, including the UNKNOWN bucket.
func (s *InsightService) ThemeStats(ctx context.Context) ([]*models.ThemeStat, error) {
	return s.statsRepo.ThemeStats(ctx, s.settings.MinThemeSample)
}

// Drivers returns the top-K driver themes per bank, best score first.
func (s *InsightService) Drivers(ctx context.Context) ([]*models.ThemeInsight, error) {
	return s.rankThemes(ctx, models.KindDriver)
}

// PainPoints returns the top-K pain-point themes per bank, worst offender first.
func (s *InsightService) PainPoints(ctx context.Context) ([]*models.ThemeInsight, error) {
	return s.rankThemes(ctx, models.KindPainPoint)
}

// RatingSentiment returns sentiment aggregates per (bank, rating) cell.
func (s *InsightService) RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error) {
	return s.statsRepo.RatingSentiment(ctx)
}

// rankThemes scores every eligible theme for the given kind and keeps the
// top K per bank. Ties break on theme name so rankings are deterministic.
func (s *InsightService) rankThemes(ctx context.Context, kind models.InsightKind) ([]*models.ThemeInsight, error) {
	stats, err := s.statsRepo.ThemeStats(ctx, s.settings.MinThemeSample)
	if err != nil {
		return nil, err
	}

	perBank := make(map[int64][]*models.ThemeInsight)
	var bankOrder []int64

	for _, stat := range stats {
		// Unrated themes carry no rating signal and cannot be scored.
		if stat.Theme == constants.ThemeUnknown || stat.AvgRating == nil {
			continue
		}

		var score float64
		switch kind {
		case models.KindDriver:
			score = stat.PctPositive * *stat.AvgRating * stat.ShareWithinBank
		case models.KindPainPoint:
			score = stat.PctNegative * (float64(constants.MaxRating+1) - *stat.AvgRating) * stat.ShareWithinBank
		}

		if _, ok := perBank[stat.BankID]; !ok {
			bankOrder = append(bankOrder, stat.BankID)
		}
		perBank[stat.BankID] = append(perBank[stat.BankID], &models.ThemeInsight{
			ThemeStat: *stat,
			Kind:      kind,
			Score:     score,
		})
	}

	var ranked []*models.ThemeInsight
	for _, bankID := range bankOrder {
		insights := perBank[bankID]
		sort.SliceStable(insights, func(i, j int) bool {
			if insights[i].Score != insights[j].Score {
				return insights[i].Score > insights[j].Score
			}
			return insights[i].Theme < insights[j].Theme
		})
		if len(insights) > s.settings.TopK {
			insights = insights[:s.settings.TopK]
		}
		ranked = append(ranked, insights...)
	}

	return ranked, nil
}

// Evidence samples review snippets supporting a (bank, theme) insight. For a
// driver the sample prefers POSITIVE reviews, for a pain point NEGATIVE
// ones; when the filtered sample is empty it falls back to the theme's
// reviews regardless of label. Texts are whitespace-collapsed and truncated
// to the configured budget.
func (s *InsightService) Evidence(ctx context.Context, bankID int64, theme string, kind models.InsightKind) ([]*models.EvidenceSnippet, error) {
	var label *string
	switch kind {
	case models.KindDriver:
		positive := constants.SentimentPositive
		label = &positive
	case models.KindPainPoint:
		negative := constants.SentimentNegative
		label = &negative
	}

	snippets, err := s.statsRepo.Evidence(ctx, bankID, theme, label, s.settings.EvidenceLimit)
	if err != nil {
		return nil, err
	}

	if len(snippets) == 0 && label != nil {
		snippets, err = s.statsRepo.Evidence(ctx, bankID, theme, nil, s.settings.EvidenceLimit)
		if err != nil {
			return nil, err
		}
	}

	for _, snippet := range snippets {
		snippet.Text = utils.Snippet(snippet.Text, s.settings.MaxSnippetChars)
	}

	return snippets, nil
}

// recommendationRules maps pain-theme keywords to suggestions. The first
// rule whose keyword appears in the theme name wins, so order matters.
var recommendationRules = []struct {
	keywords   []string
	suggestion string
}{
	{
		keywords:   []string{"STABILITY", "BUG", "CRASH"},
		suggestion: "Prioritize crash fixes and expand pre-release regression testing for the mobile app.",
	},
	{
		keywords:   []string{"LOGIN", "AUTH", "OTP", "PIN", "ACCESS"},
		suggestion: "Streamline login and OTP delivery, and add self-service recovery for locked accounts.",
	},
	{
		keywords:   []string{"PERFORMANCE", "SLOW", "SPEED"},
		suggestion: "Profile and optimize slow screens, targeting transfer and login latency first.",
	},
	{
		keywords:   []string{"TXN", "TRANSFER", "PAYMENT", "TRANSACTION"},
		suggestion: "Harden transfer reliability with automatic retries and clear failure messaging.",
	},
	{
		keywords:   []string{"UX", "UI", "NAV", "DESIGN"},
		suggestion: "Simplify navigation and refresh the UI for the most-used flows.",
	},
	{
		keywords:   []string{"SUPPORT", "SERVICE"},
		suggestion: "Expand in-app support channels and shorten complaint response times.",
	},
}

// fallbackRecommendations pad a bank's list up to the minimum when its pain
// themes map to too few concrete suggestions.
var fallbackRecommendations = []string{
	"Set up weekly review-sentiment monitoring to catch regressions early.",
	"Run targeted user interviews on the lowest-rated flows to validate fixes.",
}

// Recommendations derives two to three actionable suggestions per bank from
// its ranked pain-point themes. Suggestions are deduplicated; banks with no
// rankable pain themes get the generic fallbacks.
func (s *InsightService) Recommendations(ctx context.Context) ([]*models.BankRecommendation, error) {
	painPoints, err := s.PainPoints(ctx)
	if err != nil {
		return nil, err
	}

	perBank := make(map[int64]*models.BankRecommendation)
	var bankOrder []int64

	for _, pain := range painPoints {
		rec, ok := perBank[pain.BankID]
		if !ok {
			rec = &models.BankRecommendation{
				BankID:   pain.BankID,
				BankName: pain.BankName,
			}
			perBank[pain.BankID] = rec
			bankOrder = append(bankOrder, pain.BankID)
		}

		rec.BasedOnThemes = append(rec.BasedOnThemes, pain.Theme)

		if suggestion, ok := suggestForTheme(pain.Theme); ok {
			rec.Recommendations = appendUnique(rec.Recommendations, suggestion)
		}
	}

	var results []*models.BankRecommendation
	for _, bankID := range bankOrder {
		rec := perBank[bankID]
		for _, fallback := range fallbackRecommendations {
			if len(rec.Recommendations) >= constants.MinRecommendations {
				break
			}
			rec.Recommendations = appendUnique(rec.Recommendations, fallback)
		}
		if len(rec.Recommendations) > constants.MaxRecommendations {
			rec.Recommendations = rec.Recommendations[:constants.MaxRecommendations]
		}
		results = append(results, rec)
	}

	return results, nil
}

// suggestForTheme returns the suggestion for the first rule matching the
// theme name.
func suggestForTheme(theme string) (string, bool) {
	upper := strings.ToUpper(theme)
	for _, rule := range recommendationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(upper, keyword) {
				return rule.suggestion, true
			}
		}
	}
	return "", false
}

// appendUnique appends value unless it is already present.
func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
