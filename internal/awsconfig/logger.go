package awsconfig

import (
	"fmt"

	"github.com/aws/smithy-go/logging"
	"go.uber.org/zap"
)

// newSDKLogger adapts a zap logger to the SDK's logging interface.
func newSDKLogger(logger *zap.Logger) logging.Logger {
	sdk := logger.Named("aws")
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		if classification == logging.Warn {
			sdk.Warn(msg)
			return
		}
		sdk.Debug(msg)
	})
}
