package useragent_test

import (
	"testing"

	"github.com/NeuralTrust/AuthShield/pkg/infra/useragent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chrome119 = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
	chrome120 = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	firefox   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0"
)

func TestParse(t *testing.T) {
	info := useragent.Parse(chrome120, "en-US,en;q=0.9")
	require.NotNil(t, info)
	assert.Equal(t, "Computer", info.Device)
	assert.Equal(t, "en-US", info.Locale)
	assert.Contains(t, info.Browser, "Chrome")

	assert.Nil(t, useragent.Parse("AcmeSync/2.1", ""))
}

func TestFamily_IgnoresVersions(t *testing.T) {
	assert.Equal(t, useragent.Family(chrome119), useragent.Family(chrome120))
	assert.NotEqual(t, useragent.Family(chrome120), useragent.Family(firefox))
}

func TestFamily_FallsBackToRawString(t *testing.T) {
	assert.Equal(t, "acmesync/2.1", useragent.Family("  AcmeSync/2.1 "))
	assert.Equal(t, "", useragent.Family("   "))
}
