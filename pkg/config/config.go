package config

// this holds the resolved configuration values from CLI
var (
	SnapshotDir    string // directory containing the session snapshot files
	ScheduleFile   string // csv file with the historical race calendar
	WinnersFile    string // csv file with the historical race winners
	TeamColorsFile string // optional yaml file overriding the team color palette
	CacheTTL       string // expiration for cached sessions (duration string)
	LogLevel       string // sets the log level (zap log level values)
	LogFormat      string // text vs json
	LogConfig      string // path to log config file
	ServerAddr     string // listen addr for the HTTP API server
)
