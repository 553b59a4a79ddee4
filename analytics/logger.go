package analytics

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogFileDataCollector struct {
	fileName string
	logger   *zap.Logger
}

func NewLogFileDataCollector(fileName string) (*LogFileDataCollector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = "" // to hide stacktrace info
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	core := zapcore.NewTee(zapcore.NewCore(fileEncoder, writer, zapcore.InfoLevel))
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &LogFileDataCollector{
		fileName: fileName,
		logger:   logger,
	}, nil
}

func (lc *LogFileDataCollector) RecordStepSuccess(workflowId string, workflowName string, stepName string, output any) {
	lc.logger.Info("success", zap.String("workflow", workflowName), zap.String("id", workflowId), zap.String("step", stepName), zap.Any("output", output))
}

func (lc *LogFileDataCollector) RecordStepFailure(workflowId string, workflowName string, stepName string, reason string) {
	lc.logger.Info("failure", zap.String("workflow", workflowName), zap.String("id", workflowId), zap.String("step", stepName), zap.String("reason", reason))
}
