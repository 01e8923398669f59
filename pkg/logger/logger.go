package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Init 初始化全局日志
// env 为 production 时输出 JSON，否则输出带颜色的开发格式
func Init(env string) error {
	var err error
	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log, err = cfg.Build()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)
	return nil
}

// L 获取全局日志实例
func L() *zap.Logger {
	return log
}

// S 获取 Sugared 日志实例
func S() *zap.SugaredLogger {
	return log.Sugar()
}

// Sync 刷新缓冲日志
func Sync() {
	_ = log.Sync()
}
