package testutils

import (
	"github.com/fgrosse/zaptest"

	. "github.com/onsi/ginkgo"

	"github.com/bkrabach/releasekit/contextutils"
)

// SetupLog routes the fallback logger to the ginkgo writer so structured
// logs show up with failing specs.
func SetupLog() {
	logger := zaptest.LoggerWriter(GinkgoWriter)
	contextutils.SetFallbackLogger(logger.Sugar())
}
