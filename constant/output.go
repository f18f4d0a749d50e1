package constant

// Artifact names below the output directory.
const (
	JSONFile       = "proxies.json"
	PrettyJSONFile = "proxies_pretty.json"
	SQLiteFile     = "proxies.sqlite3"
	TXTDir         = "proxies"
	AnonymousDir   = "proxies_anonymous"
	AllTXTFile     = "all.txt"

	ProxyTable   = "proxies"
	StagingTable = "temp_proxies"
)
