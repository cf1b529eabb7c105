package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sync/atomic"

	"github.com/cornelk/hashmap"
)

const (
	ERROR   = 1
	INFO    = 2
	VERBOSE = 3
	DEBUG   = 7
)

var (
	level   int
	limiter int
	filter  *regexp.Regexp
	counter *hashmap.HashMap
	output  *log.Logger
)

func init() {
	level = INFO
	counter = &hashmap.HashMap{}
	output = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
}

func SetLevel(l int) {
	level = l
}

func SetLimiter(l int) {
	limiter = l
}

// SetOutput redirects all log lines, stdout is kept for benchmark reports.
func SetOutput(w io.Writer) {
	output.SetOutput(w)
}

func SetFilter(pattern string) error {
	if pattern == "" {
		filter = nil
		return nil
	}
	// https://github.com/google/re2/wiki/Syntax
	reg, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	filter = reg
	return nil
}

func Println(v ...interface{}) {
	if level >= INFO {
		output.Println(v...)
	}
}

func Printf(format string, v ...interface{}) {
	printfAtLevel(INFO, "", format, v...)
}

func Errorf(format string, v ...interface{}) {
	if level >= ERROR {
		output.Print("ERROR " + fmt.Sprintf(format, v...))
	}
}

func Verbosef(format string, v ...interface{}) {
	printfAtLevel(VERBOSE, "", format, v...)
}

func Debugf(format string, v ...interface{}) {
	printfAtLevel(DEBUG, "", format, v...)
}

// Limitf logs at VERBOSE level and counts repeats by key, lines with
// different arguments under one key share a single limiter budget.
func Limitf(key string, format string, v ...interface{}) {
	printfAtLevel(VERBOSE, key, format, v...)
}

func printfAtLevel(l int, key, format string, v ...interface{}) {
	if level < l {
		return
	}
	out := filterOutput(format, v...)
	if out == "" {
		return
	}
	if key == "" {
		key = out
	}
	if !limiterAvailable(key) {
		return
	}
	output.Print(out)
}

func limiterAvailable(key string) bool {
	if limiter == 0 {
		return true
	}
	var i int64
	val, _ := counter.GetOrInsert(key, &i)
	count := atomic.AddInt64(val.(*int64), 1)
	return count <= int64(limiter)
}

func filterOutput(format string, v ...interface{}) string {
	out := fmt.Sprintf(format, v...)
	if filter == nil || filter.MatchString(out) {
		return out
	}
	return ""
}
