package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        int `yaml:"port"`
	Spreadsheet struct {
		ID      string `yaml:"id"`
		Sheet   string `yaml:"sheet"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"spreadsheet"`
	Firestore struct {
		ProjectID string `yaml:"project_id"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"firestore"`
	Aggregation struct {
		ClientWorkers     int `yaml:"client_workers"`
		GroupFetchWorkers int `yaml:"group_fetch_workers"`
		FetchTimeoutSecs  int `yaml:"fetch_timeout_seconds"`

		// TruncateReportJoinDate aligns the report-count join-date cutoff
		// with the ledger path's UTC-midnight truncation. The upstream
		// system compared raw milliseconds on the report path, so the
		// default keeps that behavior.
		TruncateReportJoinDate bool `yaml:"truncate_report_join_date"`
	} `yaml:"aggregation"`
}

func (c *Config) Validate() error {
	if c.Spreadsheet.ID == "" {
		return errors.New("spreadsheet.id cannot be empty")
	}
	if c.Spreadsheet.Sheet == "" {
		return errors.New("spreadsheet.sheet cannot be empty")
	}
	if c.Firestore.ProjectID == "" {
		return errors.New("firestore.project_id cannot be empty (or set GOOGLE_PROJECT_ID)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1-65535, got %d", c.Port)
	}
	if c.Aggregation.ClientWorkers <= 0 {
		return fmt.Errorf("aggregation.client_workers must be positive, got %d", c.Aggregation.ClientWorkers)
	}
	if c.Aggregation.GroupFetchWorkers <= 0 {
		return fmt.Errorf("aggregation.group_fetch_workers must be positive, got %d", c.Aggregation.GroupFetchWorkers)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Port == 0 {
		c.Port = 5000
	}
	if c.Aggregation.ClientWorkers == 0 {
		c.Aggregation.ClientWorkers = 8
	}
	if c.Aggregation.GroupFetchWorkers == 0 {
		c.Aggregation.GroupFetchWorkers = 4
	}
	if c.Aggregation.FetchTimeoutSecs == 0 {
		c.Aggregation.FetchTimeoutSecs = 30
	}

	// Environment overrides for deploy targets that only carry env vars.
	if v := os.Getenv("GOOGLE_PROJECT_ID"); v != "" {
		c.Firestore.ProjectID = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var p int
		fmt.Sscanf(v, "%d", &p)
		if p > 0 {
			c.Port = p
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
