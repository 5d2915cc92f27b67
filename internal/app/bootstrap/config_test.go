package bootstrap

import (
	"context"
	"slices"
	"testing"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/store/portfolio"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		PortfolioStorage: StorageLocal,
		PortfolioDir:     "./parquet",
		TimeZone:         "America/Sao_Paulo",
		ChartColor:       "#1f77b4",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", func(*AppConfig) {}, false},
		{"unknown storage", func(c *AppConfig) { c.PortfolioStorage = "ftp" }, true},
		{"bad color", func(c *AppConfig) { c.ChartColor = "blue" }, true},
		{"bad time zone", func(c *AppConfig) { c.TimeZone = "Mars/Olympus" }, true},
		{"blank dir", func(c *AppConfig) { c.PortfolioDir = " " }, true},
		{"s3 without bucket", func(c *AppConfig) { c.PortfolioStorage = StorageS3 }, true},
		{"s3 with bucket", func(c *AppConfig) {
			c.PortfolioStorage = StorageS3
			c.PortfolioS3Bucket = "cessionarios"
			c.PortfolioS3Prefix = "parquet/"
		}, false},
		{"s3 prefix with leading slash", func(c *AppConfig) {
			c.PortfolioStorage = StorageS3
			c.PortfolioS3Bucket = "cessionarios"
			c.PortfolioS3Prefix = "/parquet/"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ", nil},
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example, https://b.example ,", []string{"https://a.example", "https://b.example"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConnectDB_Local(t *testing.T) {
	cfg := validConfig()
	cfg.PortfolioDir = t.TempDir()
	cfg.MetricsEnabled = false

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	if _, ok := deps.Source.(*portfolio.LocalSource); !ok {
		t.Errorf("Source = %T, want *portfolio.LocalSource", deps.Source)
	}
	if deps.Metrics != nil {
		t.Error("Metrics should be nil when disabled")
	}
	if err := EnsureSchema(context.Background(), nil, cfg, deps, zap.NewNop()); err != nil {
		t.Errorf("EnsureSchema() error = %v", err)
	}
}

func TestConnectDB_UnknownStorage(t *testing.T) {
	cfg := validConfig()
	cfg.PortfolioStorage = "ftp"
	if _, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Error("ConnectDB() should fail for an unknown backend")
	}
}
