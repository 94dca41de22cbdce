package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/marketdata"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
)

const (
	settingRefreshToken     = "marketdata.refresh_token"
	settingSecuritiesSynced = "marketdata.securities_synced_at"

	// idTokenLifetime is how long an exchanged ID token is reused before a
	// fresh exchange; the remote tokens live 24h, so stay well inside that.
	idTokenLifetime = 12 * time.Hour

	// prefetchConcurrency bounds the parallel chart requests during a
	// portfolio-wide prefetch.
	prefetchConcurrency = 4
)

// MarketdataService owns the local caches around the thin market-data
// client: the listed-securities reference, the OHLCV price cache, and the
// encrypted refresh token.
type MarketdataService struct {
	client       *marketdata.Client
	securityRepo *repository.SecurityRepository
	priceRepo    *repository.PriceRepository
	settingsRepo *repository.SettingsRepository
	fernetKey    *fernet.Key

	mu             sync.Mutex
	idToken        string
	idTokenExpires time.Time
}

// NewMarketdataService creates a new MarketdataService with the provided
// client, repositories and fernet key for token encryption at rest.
func NewMarketdataService(
	client *marketdata.Client,
	securityRepo *repository.SecurityRepository,
	priceRepo *repository.PriceRepository,
	settingsRepo *repository.SettingsRepository,
	fernetKey *fernet.Key,
) *MarketdataService {
	return &MarketdataService{
		client:       client,
		securityRepo: securityRepo,
		priceRepo:    priceRepo,
		settingsRepo: settingsRepo,
		fernetKey:    fernetKey,
	}
}

// SetRefreshToken stores the long-lived API refresh token, encrypted.
func (s *MarketdataService) SetRefreshToken(token string) error {
	encrypted, err := fernet.EncryptAndSign([]byte(token), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}
	return s.settingsRepo.SetSetting(settingRefreshToken, string(encrypted))
}

// refreshToken loads and decrypts the stored refresh token.
func (s *MarketdataService) refreshToken() (string, error) {
	stored, err := s.settingsRepo.GetSetting(settingRefreshToken)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", apperrors.ErrTokenNotConfigured
	}
	if err != nil {
		return "", err
	}

	decrypted := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.fernetKey})
	if decrypted == nil {
		return "", fmt.Errorf("failed to decrypt refresh token")
	}
	return string(decrypted), nil
}

// currentIDToken returns a usable ID token, exchanging the refresh token
// when the cached one has expired.
func (s *MarketdataService) currentIDToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idToken != "" && time.Now().Before(s.idTokenExpires) {
		return s.idToken, nil
	}

	refresh, err := s.refreshToken()
	if err != nil {
		return "", err
	}

	idToken, err := s.client.RefreshIDToken(refresh)
	if err != nil {
		return "", err
	}

	s.idToken = idToken
	s.idTokenExpires = time.Now().Add(idTokenLifetime)
	return idToken, nil
}

// GetChartSeries returns daily prices for a code within the range,
// cache-through: cached days are served locally, a miss fetches the whole
// range from the remote API and stores it.
func (s *MarketdataService) GetChartSeries(code string, market model.Market, startDate, endDate time.Time) ([]model.OHLCV, error) {
	if endDate.Before(startDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	cached, err := s.priceRepo.GetPrices(code, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	idToken, err := s.currentIDToken()
	if err != nil {
		return nil, err
	}

	series, err := s.client.FetchChartSeries(idToken, code, market.Symbol(), startDate, endDate)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.SavePrices(code, series); err != nil {
		// The fetch succeeded; a cache write failure should not lose it.
		log.Warn().Err(err).Str("code", code).Msg("failed to cache chart series")
	}

	return series, nil
}

// PrefetchCharts warms the price cache for every distinct code in the given
// records, bounded-concurrently. It returns the number of distinct codes in
// the batch; individual failures abort it.
func (s *MarketdataService) PrefetchCharts(ctx context.Context, records []model.StockRecord, startDate, endDate time.Time) (int, error) {
	type target struct {
		code   string
		market model.Market
	}

	seen := make(map[string]bool)
	targets := []target{}
	for i := range records {
		if seen[records[i].Code] {
			continue
		}
		seen[records[i].Code] = true
		targets = append(targets, target{code: records[i].Code, market: records[i].Market})
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for _, t := range targets {
		g.Go(func() error {
			_, err := s.GetChartSeries(t.code, t.market, startDate, endDate)
			return err
		})
	}
	return len(targets), g.Wait()
}

// RefreshSecurities replaces the listed-securities cache with a fresh
// listing from the remote API.
func (s *MarketdataService) RefreshSecurities() error {
	idToken, err := s.currentIDToken()
	if err != nil {
		return err
	}

	securities, err := s.client.FetchListedSecurities(idToken)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.securityRepo.ReplaceSecurities(securities, now); err != nil {
		return err
	}
	if err := s.settingsRepo.SetSetting(settingSecuritiesSynced, now.Format(time.RFC3339)); err != nil {
		return err
	}

	log.Info().Int("count", len(securities)).Msg("listed securities cache refreshed")
	return nil
}

// GetSecurities returns the cached listed securities.
func (s *MarketdataService) GetSecurities() ([]model.SecurityInfo, error) {
	return s.securityRepo.GetAllSecurities()
}

// LookupSecurity resolves one code against the cached listing; the entry
// form uses it to fill in name and market.
func (s *MarketdataService) LookupSecurity(code string) (model.SecurityInfo, error) {
	return s.securityRepo.GetSecurityByCode(code)
}

// GetConfig reports the integration state without exposing the token.
func (s *MarketdataService) GetConfig() (model.MarketDataConfig, error) {
	cfg := model.MarketDataConfig{}

	_, err := s.settingsRepo.GetSetting(settingRefreshToken)
	if err == nil {
		cfg.Configured = true
	} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
		return model.MarketDataConfig{}, err
	}

	if syncedAt, err := s.settingsRepo.GetSettingTime(settingSecuritiesSynced); err == nil {
		cfg.LastRefreshedAt = &syncedAt
	}

	count, err := s.securityRepo.CountSecurities()
	if err != nil {
		return model.MarketDataConfig{}, err
	}
	cfg.SecurityCount = count

	return cfg, nil
}
