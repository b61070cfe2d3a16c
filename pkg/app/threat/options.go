package threat

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	DefaultBruteForceWindow     = 15 * time.Minute
	DefaultAuthThreshold        = 50
	DefaultAdminThreshold       = 100
	DefaultThreshold            = 300
	DefaultStuffingWindow       = time.Hour
	DefaultStuffingThreshold    = 20
	DefaultEventTallyWindow     = time.Hour
	DefaultPromoteAfter         = 3
	DefaultBaselineMaxAge       = 24 * time.Hour
	DefaultBaselineLookback     = 30 * 24 * time.Hour
	DefaultBaselineLookbackMax  = 200
	DefaultBaselineCacheSize    = 10000
	DefaultUnusualHourTolerance = 2
	DefaultCleanupInterval      = time.Hour
	DefaultMaxScanBytes         = 64 << 10
	DefaultStorageTimeout       = 2 * time.Second
	DefaultBreakerMaxFailures   = 5
	DefaultBreakerTimeout       = 30 * time.Second
)

var (
	ErrInvalidThreshold = errors.New("threat thresholds must be greater than zero")
	ErrInvalidWindow    = errors.New("threat windows must be greater than zero")
)

type Options struct {
	BruteForceWindow     time.Duration `mapstructure:"brute_force_window"`
	AuthThreshold        int           `mapstructure:"auth_threshold"`
	AdminThreshold       int           `mapstructure:"admin_threshold"`
	DefaultThreshold     int           `mapstructure:"default_threshold"`
	AuthPathPrefixes     []string      `mapstructure:"auth_path_prefixes"`
	AdminPathPrefixes    []string      `mapstructure:"admin_path_prefixes"`
	StuffingWindow       time.Duration `mapstructure:"stuffing_window"`
	StuffingThreshold    int           `mapstructure:"stuffing_threshold"`
	AdminIdentityMarkers []string      `mapstructure:"admin_identity_markers"`
	EventTallyWindow     time.Duration `mapstructure:"event_tally_window"`
	PromoteAfter         int           `mapstructure:"promote_after"`
	BaselineMaxAge       time.Duration `mapstructure:"baseline_max_age"`
	BaselineLookback     time.Duration `mapstructure:"baseline_lookback"`
	BaselineLookbackMax  int           `mapstructure:"baseline_lookback_max"`
	BaselineCacheSize    int           `mapstructure:"baseline_cache_size"`
	// UnusualHourTolerance of zero only accepts hours already in the
	// baseline. Unlike the other fields, zero is kept as given; only a
	// negative value falls back to the default.
	UnusualHourTolerance int `mapstructure:"unusual_hour_tolerance"`
	// BlockTTL bounds automatic blocks. Zero keeps them until an
	// administrator lifts them.
	BlockTTL        time.Duration `mapstructure:"block_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxScanBytes    int           `mapstructure:"max_scan_bytes"`

	// StorageTimeout bounds every reputation store and login history call.
	StorageTimeout     time.Duration `mapstructure:"storage_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`

	// Policy overrides the table built from PromoteAfter.
	Policy Policy           `mapstructure:"-"`
	Clock  func() time.Time `mapstructure:"-"`
}

func DefaultOptions() Options {
	return Options{
		BruteForceWindow:     DefaultBruteForceWindow,
		AuthThreshold:        DefaultAuthThreshold,
		AdminThreshold:       DefaultAdminThreshold,
		DefaultThreshold:     DefaultThreshold,
		AuthPathPrefixes:     []string{"/api/auth", "/auth", "/login"},
		AdminPathPrefixes:    []string{"/api/v1/admin", "/api/admin", "/admin"},
		StuffingWindow:       DefaultStuffingWindow,
		StuffingThreshold:    DefaultStuffingThreshold,
		AdminIdentityMarkers: []string{"admin", "root", "superuser"},
		EventTallyWindow:     DefaultEventTallyWindow,
		PromoteAfter:         DefaultPromoteAfter,
		BaselineMaxAge:       DefaultBaselineMaxAge,
		BaselineLookback:     DefaultBaselineLookback,
		BaselineLookbackMax:  DefaultBaselineLookbackMax,
		BaselineCacheSize:    DefaultBaselineCacheSize,
		UnusualHourTolerance: DefaultUnusualHourTolerance,
		CleanupInterval:      DefaultCleanupInterval,
		MaxScanBytes:         DefaultMaxScanBytes,
		StorageTimeout:       DefaultStorageTimeout,
		BreakerMaxFailures:   DefaultBreakerMaxFailures,
		BreakerTimeout:       DefaultBreakerTimeout,
	}
}

// NewOptions decodes the threat settings map on top of the defaults. Values
// coming from the environment arrive as strings and are converted.
func NewOptions(settings map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	if len(settings) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		// replace default slices instead of overwriting them element-wise
		ZeroFields: true,
		Result:     &opts,
	})
	if err != nil {
		return Options{}, fmt.Errorf("failed to build threat settings decoder: %w", err)
	}
	if err := decoder.Decode(settings); err != nil {
		return Options{}, fmt.Errorf("failed to decode threat settings: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) Validate() error {
	for _, n := range []int{o.AuthThreshold, o.AdminThreshold, o.DefaultThreshold, o.StuffingThreshold} {
		if n <= 0 {
			return ErrInvalidThreshold
		}
	}
	for _, d := range []time.Duration{o.BruteForceWindow, o.StuffingWindow, o.EventTallyWindow, o.BaselineMaxAge} {
		if d <= 0 {
			return ErrInvalidWindow
		}
	}
	if o.UnusualHourTolerance < 0 || o.UnusualHourTolerance > 12 {
		return fmt.Errorf("threat unusual_hour_tolerance must be between 0 and 12, got %d", o.UnusualHourTolerance)
	}
	if o.StorageTimeout <= 0 {
		return fmt.Errorf("threat storage_timeout must be positive, got %s", o.StorageTimeout)
	}
	if o.BlockTTL < 0 {
		return fmt.Errorf("threat block_ttl must not be negative, got %s", o.BlockTTL)
	}
	return nil
}

// withDefaults fills zero values left by callers that build Options by hand.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BruteForceWindow <= 0 {
		o.BruteForceWindow = d.BruteForceWindow
	}
	if o.AuthThreshold <= 0 {
		o.AuthThreshold = d.AuthThreshold
	}
	if o.AdminThreshold <= 0 {
		o.AdminThreshold = d.AdminThreshold
	}
	if o.DefaultThreshold <= 0 {
		o.DefaultThreshold = d.DefaultThreshold
	}
	if o.AuthPathPrefixes == nil {
		o.AuthPathPrefixes = d.AuthPathPrefixes
	}
	if o.AdminPathPrefixes == nil {
		o.AdminPathPrefixes = d.AdminPathPrefixes
	}
	if o.StuffingWindow <= 0 {
		o.StuffingWindow = d.StuffingWindow
	}
	if o.StuffingThreshold <= 0 {
		o.StuffingThreshold = d.StuffingThreshold
	}
	if o.AdminIdentityMarkers == nil {
		o.AdminIdentityMarkers = d.AdminIdentityMarkers
	}
	if o.EventTallyWindow <= 0 {
		o.EventTallyWindow = d.EventTallyWindow
	}
	if o.PromoteAfter <= 0 {
		o.PromoteAfter = d.PromoteAfter
	}
	if o.BaselineMaxAge <= 0 {
		o.BaselineMaxAge = d.BaselineMaxAge
	}
	if o.BaselineLookback <= 0 {
		o.BaselineLookback = d.BaselineLookback
	}
	if o.BaselineLookbackMax <= 0 {
		o.BaselineLookbackMax = d.BaselineLookbackMax
	}
	if o.BaselineCacheSize <= 0 {
		o.BaselineCacheSize = d.BaselineCacheSize
	}
	if o.UnusualHourTolerance < 0 {
		o.UnusualHourTolerance = d.UnusualHourTolerance
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = d.CleanupInterval
	}
	if o.MaxScanBytes <= 0 {
		o.MaxScanBytes = d.MaxScanBytes
	}
	if o.StorageTimeout <= 0 {
		o.StorageTimeout = d.StorageTimeout
	}
	if o.BreakerMaxFailures == 0 {
		o.BreakerMaxFailures = d.BreakerMaxFailures
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = d.BreakerTimeout
	}
	if o.Policy == nil {
		o.Policy = DefaultPolicy(o.PromoteAfter)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}
