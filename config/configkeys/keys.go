package configkeys

const (
	delimiter = "."

	MemoizePrefix = "memoize"

	MemoizeMaxSize  = MemoizePrefix + delimiter + "max_size"
	MemoizeStrategy = MemoizePrefix + delimiter + "strategy"
	MemoizeTTL      = MemoizePrefix + delimiter + "ttl"

	LogPrefix = "log"

	LogLevel       = LogPrefix + delimiter + "level"
	LogDevelopment = LogPrefix + delimiter + "development"
)
