package gridlight

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// ParseLogLevel converts a level name to a LogLevel
func ParseLogLevel(name string) (LogLevel, error) {
	switch name {
	case "error":
		return LogError, nil
	case "warn", "warning":
		return LogWarning, nil
	case "info":
		return LogInfo, nil
	case "debug":
		return LogDebug, nil
	}
	return LogInfo, fmt.Errorf("unknown log level %q", name)
}

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...interface{}) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...interface{}) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// PlainLogFormatter prints the message without a level tag
func PlainLogFormatter(_ LogLevel, format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

// LoggingObserver logs simulation events
type LoggingObserver struct {
	level     LogLevel
	prefix    string
	mutex     sync.RWMutex
	formatter LogFormatter
	out       io.Writer
}

// NewLoggingObserver creates a new logging observer writing to stdout
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		formatter: DefaultLogFormatter,
		out:       os.Stdout,
	}
}

// SetFormatter sets the log formatter
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.formatter = formatter
}

// SetOutput sets the writer log lines go to
func (o *LoggingObserver) SetOutput(out io.Writer) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.out = out
}

// log logs a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...interface{}) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level > o.level {
		return
	}

	prefix := ""
	if o.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", o.prefix)
	}

	message := ""
	if o.formatter != nil {
		message = o.formatter(level, format, args...)
	} else {
		message = fmt.Sprintf(format, args...)
	}

	fmt.Fprintf(o.out, "%s%s\n", prefix, message)
}

// OnCarMoved logs every car that departs an approach
func (o *LoggingObserver) OnCarMoved(event CarMovedEvent) {
	o.log(LogInfo, "Moved one car to intersection %d", int(event.Destination))
}

// OnPhaseChange logs phase changes
func (o *LoggingObserver) OnPhaseChange(event PhaseChangeEvent) {
	o.log(LogDebug, "Intersection %d lights (%s): NS=%s/%s EW=%s/%s",
		int(event.GetIntersection()), event.Policy,
		event.After[NorthToSouth], event.After[SouthToNorth],
		event.After[EastToWest], event.After[WestToEast])
}

// OnExhausted logs the worker that stopped the run
func (o *LoggingObserver) OnExhausted(event ExhaustionEvent) {
	o.log(LogWarning, "No car could move at intersection %d (iteration %d), stopping",
		int(event.GetIntersection()), event.Iteration)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "Error: %v", err)
}

// OnRunStarted logs the start of a run
func (o *LoggingObserver) OnRunStarted(info RunInfo) {
	o.log(LogDebug, "Run %s started: policy=%s intersections=%d cars=%d",
		info.ID, info.Policy, info.Intersections, info.QueuedCars)
}

// OnRunStopped logs the end of a run
func (o *LoggingObserver) OnRunStopped(report *Report) {
	o.log(LogDebug, "Run %s stopped: moved=%d queued=%d elapsed=%s",
		report.RunID, report.CarsMoved, report.QueuedCars, report.Elapsed)
}
