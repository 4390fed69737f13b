package logger

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

const (
	LOG_ENABLE           = "PCF_HPC_LOGLEVEL"
	LOG_PATH             = "PCF_HPC_LOGPATH"
	LOG_TIMEOUT          = "PCF_HPC_TIMEOUT"
	LOG_FILENAME         = "pcf-hpc.log"
	LOG_DEFAULT_TIMEOUT  = 24
	PCF_DEBUG_LOGGING    = 10
	PCF_INFO_LOGGING     = 20
	PCF_WARNING_LOGGING  = 30
	PCF_ERROR_LOGGING    = 40
	PCF_CRITICAL_LOGGING = 50
)

var (
	Log *log.Logger
)

func init() {
	logPath := os.TempDir()
	if env := os.Getenv(LOG_PATH); len(env) > 0 {
		logPath = env
	}
	timeout := LOG_DEFAULT_TIMEOUT
	if env := os.Getenv(LOG_TIMEOUT); len(env) > 0 {
		if t, err := strconv.Atoi(env); err == nil {
			timeout = t
		}
	}
	Log = log.New(os.Stderr, "", log.LstdFlags)
	if f, err := openLogFile(filepath.Join(logPath, LOG_FILENAME), timeout); err == nil {
		Log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		Log.Printf("logger cannot open file: %v", err)
	}
}

// The first line of the log file is the time it was created. Files
// older than timeout hours are started over.
func openLogFile(logfile string, timeout int) (*os.File, error) {
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("LogWriter: OpenFile: %w", err)
	}
	if stat, serr := f.Stat(); serr == nil {
		if stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
	}
	return f, nil
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	} else {
		return PCF_INFO_LOGGING
	}
}

func getLogLevel(level int) string {
	switch level := level; level {
	case PCF_DEBUG_LOGGING:
		return "DEBUG"
	case PCF_INFO_LOGGING:
		return "INFO"
	case PCF_WARNING_LOGGING:
		return "WARNING"
	case PCF_ERROR_LOGGING:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		Log.Printf("%s %s:\n%s\n", getLogLevel(level), name, spew.Sdump(v))
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		prefix := getLogLevel(level) + " "
		Log.Printf(prefix+format, a...)
	}
}

func DebugObj(name string, v interface{}) {
	logObj(PCF_DEBUG_LOGGING, name, v)
}

func DebugPrintf(format string, a ...interface{}) {
	logPrintf(PCF_DEBUG_LOGGING, format, a...)
}

func InfoObj(name string, v interface{}) {
	logObj(PCF_INFO_LOGGING, name, v)
}

func InfoPrintf(format string, a ...interface{}) {
	logPrintf(PCF_INFO_LOGGING, format, a...)
}

func WarningObj(name string, v interface{}) {
	logObj(PCF_WARNING_LOGGING, name, v)
}

func WarningPrintf(format string, a ...interface{}) {
	logPrintf(PCF_WARNING_LOGGING, format, a...)
}

func ErrorObj(name string, v interface{}) {
	logObj(PCF_ERROR_LOGGING, name, v)
}

func ErrorPrintf(format string, a ...interface{}) {
	logPrintf(PCF_ERROR_LOGGING, format, a...)
}

func CriticalObj(name string, v interface{}) {
	logObj(PCF_CRITICAL_LOGGING, name, v)
}

func CriticalPrintf(format string, a ...interface{}) {
	logPrintf(PCF_CRITICAL_LOGGING, format, a...)
}
