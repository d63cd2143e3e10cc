package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// Mock implementations for testing

type MockBankRepository struct {
	banks  map[string]*models.Bank
	nextID int64
	failOn map[string]error
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{
		banks:  make(map[string]*models.Bank),
		nextID: 1,
		failOn: make(map[string]error),
	}
}

func (m *MockBankRepository) Create(ctx context.Context, bank *models.Bank) error {
	if err := m.failOn["Create"]; err != nil {
		return err
	}
	key := strings.ToLower(bank.BankName)
	if _, ok := m.banks[key]; ok {
		return utils.NewDuplicateError("Bank", "bank_name", bank.BankName)
	}
	bank.ID = m.nextID
	m.nextID++
	m.banks[key] = bank
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, id int64) (*models.Bank, error) {
	for _, bank := range m.banks {
		if bank.ID == id {
			return bank, nil
		}
	}
	return nil, utils.NewNotFoundError("Bank", id)
}

func (m *MockBankRepository) GetByName(ctx context.Context, name string) (*models.Bank, error) {
	bank, ok := m.banks[strings.ToLower(name)]
	if !ok {
		return nil, utils.NewNotFoundError("Bank", fmt.Sprintf("bank_name=%s", name))
	}
	return bank, nil
}

func (m *MockBankRepository) GetOrCreate(ctx context.Context, name string, appName *string) (*models.Bank, bool, error) {
	if err := m.failOn["GetOrCreate"]; err != nil {
		return nil, false, err
	}
	if bank, err := m.GetByName(ctx, name); err == nil {
		return bank, false, nil
	}
	bank := models.NewBank(name, appName)
	if err := m.Create(ctx, bank); err != nil {
		return nil, false, err
	}
	return bank, true, nil
}

func (m *MockBankRepository) List(ctx context.Context) ([]*models.Bank, error) {
	var banks []*models.Bank
	for _, bank := range m.banks {
		banks = append(banks, bank)
	}
	return banks, nil
}

func (m *MockBankRepository) UpdateAppName(ctx context.Context, id int64, appName *string) error {
	bank, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	bank.AppName = appName
	return nil
}

func (m *MockBankRepository) Delete(ctx context.Context, id int64) error {
	for key, bank := range m.banks {
		if bank.ID == id {
			delete(m.banks, key)
			return nil
		}
	}
	return utils.NewNotFoundError("Bank", id)
}

type MockReviewRepository struct {
	reviews map[string]*models.Review // keyed by hash
	nextID  int64
	failOn  map[string]error
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]*models.Review),
		nextID:  1,
		failOn:  make(map[string]error),
	}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) (bool, error) {
	if err := m.failOn["Create"]; err != nil {
		return false, err
	}
	if _, ok := m.reviews[review.ReviewHash]; ok {
		return false, nil
	}
	review.ID = m.nextID
	m.nextID++
	m.reviews[review.ReviewHash] = review
	return true, nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	for _, review := range m.reviews {
		if review.ID == id {
			return review, nil
		}
	}
	return nil, utils.NewNotFoundError("Review", id)
}

func (m *MockReviewRepository) GetByHash(ctx context.Context, hash string) (*models.Review, error) {
	review, ok := m.reviews[hash]
	if !ok {
		return nil, utils.NewNotFoundError("Review", fmt.Sprintf("review_hash=%s", hash))
	}
	return review, nil
}

func (m *MockReviewRepository) GetIDByHash(ctx context.Context, hash string) (int64, error) {
	review, ok := m.reviews[hash]
	if !ok {
		return 0, utils.NewNotFoundError("Review", fmt.Sprintf("review_hash=%s", hash))
	}
	return review.ID, nil
}

func (m *MockReviewRepository) UpdateEnrichmentByHash(ctx context.Context, hash string, sentimentLabel *string, sentimentScore *float64, themePrimary *string) (bool, error) {
	if err := m.failOn["UpdateEnrichmentByHash"]; err != nil {
		return false, err
	}
	review, ok := m.reviews[hash]
	if !ok {
		return false, nil
	}
	review.SentimentLabel = sentimentLabel
	review.SentimentScore = sentimentScore
	review.ThemePrimary = themePrimary
	return true, nil
}

func (m *MockReviewRepository) ListByBank(ctx context.Context, bankID int64, page, pageSize int) ([]*models.Review, int, error) {
	var reviews []*models.Review
	for _, review := range m.reviews {
		if review.BankID == bankID {
			reviews = append(reviews, review)
		}
	}
	return reviews, len(reviews), nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	for hash, review := range m.reviews {
		if review.ID == id {
			delete(m.reviews, hash)
			return nil
		}
	}
	return utils.NewNotFoundError("Review", id)
}

type MockThemeRepository struct {
	themes map[string]*models.Theme
	links  map[string]bool // "reviewID:themeID"
	nextID int64
	failOn map[string]error
}

func NewMockThemeRepository() *MockThemeRepository {
	return &MockThemeRepository{
		themes: make(map[string]*models.Theme),
		links:  make(map[string]bool),
		nextID: 1,
		failOn: make(map[string]error),
	}
}

func (m *MockThemeRepository) Create(ctx context.Context, theme *models.Theme) error {
	if _, ok := m.themes[theme.Name]; ok {
		return utils.NewDuplicateError("Theme", "theme_name", theme.Name)
	}
	theme.ID = m.nextID
	m.nextID++
	m.themes[theme.Name] = theme
	return nil
}

func (m *MockThemeRepository) GetByID(ctx context.Context, id int64) (*models.Theme, error) {
	for _, theme := range m.themes {
		if theme.ID == id {
			return theme, nil
		}
	}
	return nil, utils.NewNotFoundError("Theme", id)
}

func (m *MockThemeRepository) GetByName(ctx context.Context, name string) (*models.Theme, error) {
	theme, ok := m.themes[name]
	if !ok {
		return nil, utils.NewNotFoundError("Theme", fmt.Sprintf("theme_name=%s", name))
	}
	return theme, nil
}

func (m *MockThemeRepository) GetOrCreate(ctx context.Context, name string) (*models.Theme, bool, error) {
	if err := m.failOn["GetOrCreate"]; err != nil {
		return nil, false, err
	}
	if theme, err := m.GetByName(ctx, name); err == nil {
		return theme, false, nil
	}
	theme := &models.Theme{Name: name}
	if err := m.Create(ctx, theme); err != nil {
		return nil, false, err
	}
	return theme, true, nil
}

func (m *MockThemeRepository) List(ctx context.Context) ([]*models.Theme, error) {
	var themes []*models.Theme
	for _, theme := range m.themes {
		themes = append(themes, theme)
	}
	return themes, nil
}

func (m *MockThemeRepository) Delete(ctx context.Context, id int64) error {
	for name, theme := range m.themes {
		if theme.ID == id {
			delete(m.themes, name)
			return nil
		}
	}
	return utils.NewNotFoundError("Theme", id)
}

func (m *MockThemeRepository) LinkReview(ctx context.Context, reviewID, themeID int64) (bool, error) {
	if err := m.failOn["LinkReview"]; err != nil {
		return false, err
	}
	key := fmt.Sprintf("%d:%d", reviewID, themeID)
	if m.links[key] {
		return false, nil
	}
	m.links[key] = true
	return true, nil
}

func (m *MockThemeRepository) GetThemesForReview(ctx context.Context, reviewID int64) ([]*models.Theme, error) {
	var themes []*models.Theme
	for _, theme := range m.themes {
		if m.links[fmt.Sprintf("%d:%d", reviewID, theme.ID)] {
			themes = append(themes, theme)
		}
	}
	return themes, nil
}

type MockStatsRepository struct {
	kpis       []*models.BankKPI
	themeStats []*models.ThemeStat
	evidence   map[string][]*models.EvidenceSnippet // "bankID:theme:label"
	rating     []*models.RatingSentimentStat
	counts     []*models.BankReviewCount
	avgRatings []*models.BankAvgRating
	failOn     map[string]error
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{
		evidence: make(map[string][]*models.EvidenceSnippet),
		failOn:   make(map[string]error),
	}
}

func evidenceKey(bankID int64, theme string, label *string) string {
	l := ""
	if label != nil {
		l = *label
	}
	return fmt.Sprintf("%d:%s:%s", bankID, theme, l)
}

func (m *MockStatsRepository) BankKPIs(ctx context.Context) ([]*models.BankKPI, error) {
	if err := m.failOn["BankKPIs"]; err != nil {
		return nil, err
	}
	return m.kpis, nil
}

func (m *MockStatsRepository) ThemeStats(ctx context.Context, minSample int) ([]*models.ThemeStat, error) {
	if err := m.failOn["ThemeStats"]; err != nil {
		return nil, err
	}
	var stats []*models.ThemeStat
	for _, stat := range m.themeStats {
		if stat.N >= minSample {
			stats = append(stats, stat)
		}
	}
	return stats, nil
}

func (m *MockStatsRepository) Evidence(ctx context.Context, bankID int64, theme string, sentimentLabel *string, limit int) ([]*models.EvidenceSnippet, error) {
	if err := m.failOn["Evidence"]; err != nil {
		return nil, err
	}
	snippets := m.evidence[evidenceKey(bankID, theme, sentimentLabel)]
	if len(snippets) > limit {
		snippets = snippets[:limit]
	}
	return snippets, nil
}

func (m *MockStatsRepository) RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error) {
	return m.rating, nil
}

func (m *MockStatsRepository) ReviewCountsPerBank(ctx context.Context) ([]*models.BankReviewCount, error) {
	if err := m.failOn["ReviewCountsPerBank"]; err != nil {
		return nil, err
	}
	return m.counts, nil
}

func (m *MockStatsRepository) AvgRatingPerBank(ctx context.Context) ([]*models.BankAvgRating, error) {
	if err := m.failOn["AvgRatingPerBank"]; err != nil {
		return nil, err
	}
	return m.avgRatings, nil
}

type MockVerificationRepository struct {
	orphans  []*models.EnrichmentOrphan
	coverage *models.CoverageReport
	nextID   int64
	failOn   map[string]error
}

func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{
		nextID: 1,
		failOn: make(map[string]error),
	}
}

func (m *MockVerificationRepository) Coverage(ctx context.Context) (*models.CoverageReport, error) {
	if err := m.failOn["Coverage"]; err != nil {
		return nil, err
	}
	if m.coverage == nil {
		return &models.CoverageReport{}, nil
	}
	return m.coverage, nil
}

func (m *MockVerificationRepository) RecordOrphan(ctx context.Context, orphan *models.EnrichmentOrphan) error {
	if err := m.failOn["RecordOrphan"]; err != nil {
		return err
	}
	orphan.ID = m.nextID
	m.nextID++
	m.orphans = append(m.orphans, orphan)
	return nil
}

func (m *MockVerificationRepository) ListOrphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error) {
	var matched []*models.EnrichmentOrphan
	for _, orphan := range m.orphans {
		if batchID == "" || orphan.BatchID == batchID {
			matched = append(matched, orphan)
		}
	}
	return matched, len(matched), nil
}

func (m *MockVerificationRepository) CountOrphans(ctx context.Context) (int, error) {
	return len(m.orphans), nil
}
