package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"muscu/internal/catalog"
	"muscu/internal/core"
	"muscu/internal/events"
	applog "muscu/internal/log"
	"muscu/internal/store"
)

// Persisted setting keys. Prices are stored per category as
// PriceKeyPrefix + category ID, in euros with a '.' decimal separator.
const (
	PriceKeyPrefix         = "price."
	KeyStartDate           = "start_date"
	KeyEndDate             = "end_date"
	KeyOnboardingCompleted = "onboarding_completed"
)

// PriceKey returns the settings key holding the price of categoryID.
func PriceKey(categoryID string) string {
	return PriceKeyPrefix + categoryID
}

// Settings is the decoded view of everything the user configured.
// Unset or unreadable values decode to their zero value.
type Settings struct {
	Prices              map[string]core.Money
	StartDate           core.Date
	EndDate             core.Date
	OnboardingCompleted bool
}

// Price returns the price of categoryID, zero when unset.
func (s Settings) Price(categoryID string) core.Money {
	return s.Prices[categoryID]
}

// Period returns the tracking window as seen from today.
func (s Settings) Period(today core.Date) core.TrackingPeriod {
	return core.NewTrackingPeriod(s.StartDate, s.EndDate, today)
}

type SettingsService struct {
	store   store.SettingsStore
	catalog *catalog.Catalog
	bus     *events.Bus
	logger  *applog.Logger
}

func NewSettingsService(settings store.SettingsStore, cat *catalog.Catalog, bus *events.Bus) *SettingsService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &SettingsService{
		store:   settings,
		catalog: cat,
		bus:     bus,
		logger:  applog.Default().WithComponent(applog.ComponentSettings),
	}
}

// Load reads every setting. Malformed values are logged and treated as
// unset rather than failing the whole read.
func (s *SettingsService) Load(ctx context.Context) (Settings, error) {
	out := Settings{Prices: make(map[string]core.Money)}

	for _, cat := range s.catalog.PricedCategories() {
		raw, ok, err := s.store.GetSetting(ctx, PriceKey(cat.ID))
		if err != nil {
			return Settings{}, err
		}
		if !ok {
			continue
		}
		out.Prices[cat.ID] = core.ParsePrice(raw)
	}

	var err error
	if out.StartDate, err = s.loadDate(ctx, KeyStartDate); err != nil {
		return Settings{}, err
	}
	if out.EndDate, err = s.loadDate(ctx, KeyEndDate); err != nil {
		return Settings{}, err
	}

	raw, ok, err := s.store.GetSetting(ctx, KeyOnboardingCompleted)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		done, perr := strconv.ParseBool(raw)
		if perr != nil {
			s.logger.WarnContext(ctx, "Ignoring malformed onboarding flag",
				applog.NewFields().
					WithOperation(applog.OpLoad).
					WithSetting(KeyOnboardingCompleted, raw).
					ToSlice()...)
		}
		out.OnboardingCompleted = done
	}
	return out, nil
}

func (s *SettingsService) loadDate(ctx context.Context, key string) (core.Date, error) {
	raw, ok, err := s.store.GetSetting(ctx, key)
	if err != nil || !ok || raw == "" {
		return core.Date{}, err
	}
	d, perr := core.ParseDate(raw)
	if perr != nil {
		s.logger.WarnContext(ctx, "Ignoring malformed date setting",
			applog.NewFields().
				WithOperation(applog.OpLoad).
				WithSetting(key, raw).
				ToSlice()...)
		return core.Date{}, nil
	}
	return d, nil
}

// SetCategoryPrice stores a price typed by the user. Text that is not a
// non-negative number is stored as zero.
func (s *SettingsService) SetCategoryPrice(ctx context.Context, categoryID, raw string) (core.Money, error) {
	cents, perr := core.ParseDecimalToCents(raw)
	if perr != nil {
		s.logger.WarnContext(ctx, "Price is not a valid amount, storing zero",
			applog.FieldCategory, categoryID,
			applog.FieldValue, raw)
		cents = 0
	}
	price := core.Money{Cents: cents}
	if err := s.SetCategoryPriceAmount(ctx, categoryID, price); err != nil {
		return core.Money{}, err
	}
	return price, nil
}

// SetCategoryPriceAmount stores price for a paid category.
func (s *SettingsService) SetCategoryPriceAmount(ctx context.Context, categoryID string, price core.Money) error {
	if err := s.checkPrice(categoryID, price); err != nil {
		return err
	}

	key := PriceKey(categoryID)
	if err := s.set(ctx, key, price.Decimal()); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Category price updated",
		applog.FieldCategory, categoryID,
		applog.FieldCents, price.Cents)
	return nil
}

func (s *SettingsService) checkPrice(categoryID string, price core.Money) error {
	cat, ok := s.catalog.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownCategory, categoryID)
	}
	if cat.Free {
		return fmt.Errorf("%w: %q", core.ErrFreeCategory, categoryID)
	}
	return price.Validate()
}

// ResetPrices sets every paid category's price back to zero.
func (s *SettingsService) ResetPrices(ctx context.Context) error {
	for _, cat := range s.catalog.PricedCategories() {
		if err := s.set(ctx, PriceKey(cat.ID), core.Money{}.Decimal()); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "Prices reset")
	return nil
}

// UpdateStartDate stores the subscription start and derives the end date
// from it. A previously set end date is overwritten.
func (s *SettingsService) UpdateStartDate(ctx context.Context, start core.Date) (core.Date, error) {
	if err := start.Validate(); err != nil {
		return core.Date{}, err
	}
	end := start.SubscriptionEnd()
	if err := s.set(ctx, KeyStartDate, start.String()); err != nil {
		return core.Date{}, err
	}
	if err := s.set(ctx, KeyEndDate, end.String()); err != nil {
		return core.Date{}, err
	}
	s.logger.InfoContext(ctx, "Tracking period updated",
		"start", start.String(),
		"end", end.String())
	return end, nil
}

// UpdateEndDate overrides the end of the tracking window.
func (s *SettingsService) UpdateEndDate(ctx context.Context, end core.Date) error {
	if err := end.Validate(); err != nil {
		return err
	}
	if err := s.set(ctx, KeyEndDate, end.String()); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Tracking period end updated", "end", end.String())
	return nil
}

// CompleteOnboarding records the initial setup in one go. Prices for
// categories missing from prices are left as they are. Nothing is saved
// unless every price and the start date are valid.
func (s *SettingsService) CompleteOnboarding(ctx context.Context, start core.Date, prices map[string]core.Money) error {
	if err := start.Validate(); err != nil {
		return err
	}
	ids := make([]string, 0, len(prices))
	for id, price := range prices {
		if err := s.checkPrice(id, price); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := s.SetCategoryPriceAmount(ctx, id, prices[id]); err != nil {
			return err
		}
	}
	if _, err := s.UpdateStartDate(ctx, start); err != nil {
		return err
	}
	if err := s.set(ctx, KeyOnboardingCompleted, strconv.FormatBool(true)); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Onboarding completed", "start", start.String())
	return nil
}

func (s *SettingsService) set(ctx context.Context, key, value string) error {
	if err := s.store.SetSetting(ctx, key, value); err != nil {
		slog.ErrorContext(ctx, "Failed to persist setting",
			applog.NewFields().
				WithOperation(applog.OpUpdate).
				WithSetting(key, value).
				WithError(err).
				ToSlice()...)
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewSettingsEvent(key))
	}
	return nil
}
