package logsvc

import "github.com/trezcool/mahudhurio/core"

// NopLogger discards everything. Fatal does not exit.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func (*NopLogger) Debug(string, ...interface{}) {}
func (*NopLogger) Info(string, ...interface{})  {}
func (*NopLogger) Warn(string, ...interface{})  {}
func (*NopLogger) Error(string, ...interface{}) {}
func (*NopLogger) Fatal(string, ...interface{}) {}
