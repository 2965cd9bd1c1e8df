package version

import (
	"testing"

	"telejoin/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	bi := Info()
	if bi.Version == "" || bi.Commit == "" || bi.Date == "" {
		t.Fatalf("empty build field: %+v", bi)
	}
}

func TestSetService(t *testing.T) {
	testkit.Swap(t, &service, service)
	SetService("telejoin-api")
	if got := Info().Service; got != "telejoin-api" {
		t.Fatalf("service = %q", got)
	}
	SetService("")
	if got := Info().Service; got != "telejoin-api" {
		t.Fatalf("blank name should be ignored, got %q", got)
	}
}
