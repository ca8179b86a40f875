package briefing

import (
	"context"
	"fmt"
	"time"
)

// Frequency is how often a digest is sent.
type Frequency string

// Supported frequencies.
const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencySignificant Frequency = "significant_changes_only"
)

// Minimum gaps between digests.
const (
	dailyGap  = 20 * time.Hour
	weeklyGap = 6 * 24 * time.Hour
)

// ParseFrequency validates a frequency name.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyDaily, FrequencyWeekly, FrequencySignificant:
		return f, nil
	default:
		return "", fmt.Errorf("unknown brief frequency %q (want daily, weekly or significant_changes_only)", s)
	}
}

// ShouldSend reports whether a digest is due. A digest that was never sent is
// always due; significant-changes-only digests are never sent on a schedule.
func ShouldSend(freq Frequency, lastSent *time.Time, now time.Time) bool {
	if lastSent == nil {
		return true
	}
	elapsed := now.Sub(*lastSent)
	switch freq {
	case FrequencyDaily:
		return elapsed > dailyGap
	case FrequencyWeekly:
		return elapsed > weeklyGap
	default:
		return false
	}
}

// SettingsStore persists the digest bookkeeping.
type SettingsStore interface {
	GetSetting(ctx context.Context, name string, dst any) (bool, error)
	SetSetting(ctx context.Context, name string, value any) error
}

// Setting names.
const (
	SettingLastSent  = "last_brief_sent"
	SettingFrequency = "brief_frequency"
)

// Due reads the stored frequency (daily when unset) and last-sent time and
// applies ShouldSend.
func Due(ctx context.Context, store SettingsStore, now time.Time) (bool, error) {
	freq := string(FrequencyDaily)
	if _, err := store.GetSetting(ctx, SettingFrequency, &freq); err != nil {
		return false, err
	}

	var last time.Time
	found, err := store.GetSetting(ctx, SettingLastSent, &last)
	if err != nil {
		return false, err
	}
	if !found {
		return ShouldSend(Frequency(freq), nil, now), nil
	}
	return ShouldSend(Frequency(freq), &last, now), nil
}

// MarkSent records that a digest went out at now.
func MarkSent(ctx context.Context, store SettingsStore, now time.Time) error {
	return store.SetSetting(ctx, SettingLastSent, now.UTC())
}
