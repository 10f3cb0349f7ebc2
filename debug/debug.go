// Package debug provides env-gated debug logging for regstore internals.
//
// Each area is switched on with an environment variable, e.g.
// REGSTORE_DEBUG_LOCK=1 traces lock acquisition.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lock   bool
	Txn    bool
	Parse  bool
	Backup bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lock = boolEnv("REGSTORE_DEBUG_LOCK")
	d.Txn = boolEnv("REGSTORE_DEBUG_TXN")
	d.Parse = boolEnv("REGSTORE_DEBUG_PARSE")
	d.Backup = boolEnv("REGSTORE_DEBUG_BACKUP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lock() bool {
	return d.Lock
}
func Txn() bool {
	return d.Txn
}
func Parse() bool {
	return d.Parse
}
func Backup() bool {
	return d.Backup
}
