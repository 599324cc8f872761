package log_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/infra-validator/pkg/log"
)

var _ = Describe("InitLog", func() {
	DescribeTable("should build a logger for each supported format",
		func(format string) {
			lvl, err := log.ParseLevel("warn")
			Expect(err).NotTo(HaveOccurred())

			logger, err := log.InitLog(lvl, format)

			Expect(err).NotTo(HaveOccurred())
			Expect(logger.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
			Expect(logger.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
		},
		Entry("default", ""),
		Entry("console", log.FormatConsole),
		Entry("json", log.FormatJSON),
	)

	It("should reject unknown formats and levels", func() {
		lvl, err := log.ParseLevel("info")
		Expect(err).NotTo(HaveOccurred())

		_, err = log.InitLog(lvl, "xml")
		Expect(err).To(HaveOccurred())

		_, err = log.ParseLevel("loud")
		Expect(err).To(HaveOccurred())
	})
})
