package s3

import (
	"testing"

	"github.com/windoze95/cardapio-api/internal/config"
)

func TestMenuURI(t *testing.T) {
	cfg := &config.Config{EnvVars: config.EnvVars{S3Bucket: "cardapios", MenuS3Key: "trailer/menu.yaml"}}
	if got := MenuURI(cfg); got != "s3://cardapios/trailer/menu.yaml" {
		t.Errorf("MenuURI() = %q", got)
	}
}
