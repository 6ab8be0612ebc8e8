package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init は zap logger を初期化する
func Init(level, format, outputPath string) {
	var err error
	var logger *zap.Logger
	var zapConfig zap.Config

	// 設定からログレベルを決定する
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	// 設定からエンコード形式を決定する
	encoding := "json"
	if format == "console" {
		encoding = "console"
	}

	// 開発環境向け設定
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// 本番環境向け設定
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.Level = logLevel
	zapConfig.Encoding = encoding
	zapConfig.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		// ファイル出力先が指定されていれば stdout と併用する
		_ = os.MkdirAll(outputPath, os.ModePerm)
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, outputPath+"/app.log")
	}

	logger, err = zapConfig.Build()
	if err != nil {
		panic(err)
	}

	sugar = logger.Sugar()
}

// Info は info レベルのログを記録する
func Info(msg string) {
	sugar.Info(msg)
}

// Infof はフォーマット文字列で info レベルのログを記録する
func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow はキーと値のペアで構造化ログを記録する。
// 複雑なコンテキスト情報を残す場合はこちらを使う。
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

// Warnf はフォーマット文字列で warn レベルのログを記録する
func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

// Error は error レベルのログを error 情報付きで記録する
func Error(msg string, err error) {
	sugar.Errorw(msg, "error", err)
}

// Fatal は fatal レベルのログを記録し、プロセスを終了する
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

// Sync はバッファ済みのログを書き出す。終了前に呼んでおく。
func Sync() {
	_ = sugar.Sync()
}
