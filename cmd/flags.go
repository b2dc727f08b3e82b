package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// mustBind ties a flag to a config key; a flag only wins when it was set.
func mustBind(key string, f *pflag.Flag) {
	if f == nil {
		panic(fmt.Sprintf("flag for %q is not defined", key))
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind %q: %v", key, err))
	}
}
