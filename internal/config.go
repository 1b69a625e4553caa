package internal

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/haatos/simple-shop/internal/util"
)

var Config *Configuration

type HoursDuration time.Duration

func NewHoursDuration(hours int64) HoursDuration {
	return HoursDuration(time.Duration(hours) * time.Hour)
}

func (hd HoursDuration) MarshalJSON() ([]byte, error) {
	hours := float64(time.Duration(hd)) / float64(time.Hour)
	return json.Marshal(hours)
}

func (hd *HoursDuration) UnmarshalJSON(data []byte) error {
	var hours float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	*hd = HoursDuration(hours * float64(time.Hour))
	return nil
}

type SecondsDuration time.Duration

func (sd SecondsDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(time.Duration(sd)) / float64(time.Second))
}

func (sd *SecondsDuration) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	*sd = SecondsDuration(seconds * float64(time.Second))
	return nil
}

type Configuration struct {
	// SessionExpiresHours bounds the lifetime of a persisted login. Zero
	// keeps sessions valid until logout.
	SessionExpiresHours HoursDuration   `json:"session_expires_hours"`
	PaymentDelaySeconds SecondsDuration `json:"payment_delay_seconds"`
	CatalogSeedPath     string          `json:"catalog_seed_path"`
	RateLimitPerSecond  float64         `json:"rate_limit_per_second"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		SessionExpiresHours: NewHoursDuration(30 * 24),
		PaymentDelaySeconds: SecondsDuration(2 * time.Second),
		CatalogSeedPath:     DefaultCatalogPath,
		RateLimitPerSecond:  20,
	}
}

func InitializeConfiguration() {
	Config = DefaultConfiguration()

	configFileExists, _ := util.PathExists(ConfigPath)
	if !configFileExists {
		if err := UpdateConfiguration(Config); err != nil {
			log.Fatal(err)
		}
	} else {
		configBytes, err := os.ReadFile(ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := json.Unmarshal(configBytes, &Config); err != nil {
			log.Fatal(err)
		}
	}
}

func UpdateConfiguration(config *Configuration) error {
	b, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return err
	}

	configFile, err := os.Create(ConfigPath)
	if err != nil {
		return err
	}
	defer configFile.Close()

	if _, err := configFile.Write(b); err != nil {
		return err
	}

	Config = config

	return nil
}

func (c *Configuration) SessionLifetime() time.Duration {
	return time.Duration(c.SessionExpiresHours)
}

func (c *Configuration) PaymentDelay() time.Duration {
	return time.Duration(c.PaymentDelaySeconds)
}
