package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=cfc_rewards_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultJWTIssuer = "cfc-rewards"
const defaultTokenTTL = 24 * time.Hour
const defaultAdminChannelID = "CFCAdmin"
const defaultAdminChannelKey = "CFCAdminKey001"
const defaultPublicBaseURL = "http://localhost:5173"
const defaultExpiryCron = "@hourly"
const defaultAuthRatePerSecond = 5
const defaultAuthRateBurst = 10

type Config struct {
	DatabaseDSN       string
	MigrationsDir     string
	HTTPAddr          string
	JWTSecret         string
	JWTIssuer         string
	TokenTTL          time.Duration
	AdminChannelID    string
	AdminChannelKey   string
	PublicBaseURL     string
	RedisAddr         string
	RedisPassword     string
	ExpiryCron        string
	AuthRatePerSecond int
	AuthRateBurst     int
	LogLevel          string
	Program           domain.ProgramRules
}

// programFile mirrors the optional YAML overlay for program rules.
type programFile struct {
	Program struct {
		SubscriptionPrice      *string `yaml:"subscription_price"`
		PlanType               *string `yaml:"plan_type"`
		PlanDurationDays       *int    `yaml:"plan_duration_days"`
		DirectBonus            *string `yaml:"direct_bonus"`
		IndirectBonus          *string `yaml:"indirect_bonus"`
		MinReferralsToWithdraw *int    `yaml:"min_referrals_to_withdraw"`
		MinWithdrawalAmount    *string `yaml:"min_withdrawal_amount"`
		ReferralCodePrefix     *string `yaml:"referral_code_prefix"`
		RequireKYCForWithdraw  *bool   `yaml:"require_kyc_for_withdraw"`
	} `yaml:"program"`
}

func Load() (Config, error) {
	conn := envOr("DATABASE_DSN", defaultConnectionString)

	tokenTTL := defaultTokenTTL
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	ratePerSecond, err := envInt("AUTH_RATE_PER_SECOND", defaultAuthRatePerSecond)
	if err != nil {
		return Config{}, err
	}
	rateBurst, err := envInt("AUTH_RATE_BURST", defaultAuthRateBurst)
	if err != nil {
		return Config{}, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	program := domain.DefaultProgramRules()
	if path := strings.TrimSpace(os.Getenv("CFC_CONFIG_FILE")); path != "" {
		program, err = loadProgramFile(path, program)
		if err != nil {
			return Config{}, err
		}
	}

	return Config{
		DatabaseDSN:       normalizeConnectionString(conn),
		MigrationsDir:     envOr("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		HTTPAddr:          envOr("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:         jwtSecret,
		JWTIssuer:         envOr("JWT_ISSUER", defaultJWTIssuer),
		TokenTTL:          tokenTTL,
		AdminChannelID:    envOr("ADMIN_CHANNEL_ID", defaultAdminChannelID),
		AdminChannelKey:   envOr("ADMIN_CHANNEL_KEY", defaultAdminChannelKey),
		PublicBaseURL:     strings.TrimRight(envOr("PUBLIC_BASE_URL", defaultPublicBaseURL), "/"),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		ExpiryCron:        envOr("EXPIRY_CRON", defaultExpiryCron),
		AuthRatePerSecond: ratePerSecond,
		AuthRateBurst:     rateBurst,
		LogLevel:          envOr("LOG_LEVEL", "info"),
		Program:           program,
	}, nil
}

func loadProgramFile(path string, rules domain.ProgramRules) (domain.ProgramRules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read config file %q: %w", path, err)
	}

	var file programFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return rules, fmt.Errorf("parse config file %q: %w", path, err)
	}

	p := file.Program
	if err := setDecimal(&rules.SubscriptionPrice, p.SubscriptionPrice, "subscription_price"); err != nil {
		return rules, err
	}
	if err := setDecimal(&rules.DirectBonus, p.DirectBonus, "direct_bonus"); err != nil {
		return rules, err
	}
	if err := setDecimal(&rules.IndirectBonus, p.IndirectBonus, "indirect_bonus"); err != nil {
		return rules, err
	}
	if err := setDecimal(&rules.MinWithdrawalAmount, p.MinWithdrawalAmount, "min_withdrawal_amount"); err != nil {
		return rules, err
	}
	if p.PlanType != nil && strings.TrimSpace(*p.PlanType) != "" {
		rules.PlanType = strings.TrimSpace(*p.PlanType)
	}
	if p.PlanDurationDays != nil {
		if *p.PlanDurationDays <= 0 {
			return rules, fmt.Errorf("plan_duration_days must be greater than zero")
		}
		rules.PlanDuration = time.Duration(*p.PlanDurationDays) * 24 * time.Hour
	}
	if p.MinReferralsToWithdraw != nil {
		if *p.MinReferralsToWithdraw < 0 {
			return rules, fmt.Errorf("min_referrals_to_withdraw cannot be negative")
		}
		rules.MinReferralsToWithdraw = *p.MinReferralsToWithdraw
	}
	if p.ReferralCodePrefix != nil && strings.TrimSpace(*p.ReferralCodePrefix) != "" {
		rules.ReferralCodePrefix = strings.ToUpper(strings.TrimSpace(*p.ReferralCodePrefix))
	}
	if p.RequireKYCForWithdraw != nil {
		rules.RequireKYCForWithdraw = *p.RequireKYCForWithdraw
	}

	return rules, nil
}

func setDecimal(target *decimal.Decimal, raw *string, key string) error {
	if raw == nil {
		return nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if value.IsNegative() {
		return fmt.Errorf("%s cannot be negative", key)
	}
	*target = value
	return nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero", key)
	}
	return value, nil
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
