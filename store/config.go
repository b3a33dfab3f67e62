package store

// Config holds configuration for the Store.
type Config struct {
	// TableName is the name of the ratings table.
	// Default: "prod_toonami_ratings"
	TableName string

	// NightIndex is the index keyed on RATINGS_OCCURRED_ON.
	// Empty means the base table, whose partition key is RATINGS_OCCURRED_ON.
	// Default: ""
	NightIndex string

	// YearIndex is the GSI keyed on YEAR.
	// Default: "YEAR_ACCESS"
	YearIndex string

	// ShowIndex is the GSI keyed on SHOW.
	// Default: "SHOW_ACCESS"
	ShowIndex string

	// ConsistentRead requests strongly consistent reads. Only honoured when
	// querying the base table; GSIs reject consistent reads.
	// Default: false
	ConsistentRead bool
}

const (
	defaultTableName = "prod_toonami_ratings"
	defaultYearIndex = "YEAR_ACCESS"
	defaultShowIndex = "SHOW_ACCESS"
)

// DefaultConfig returns the production table layout.
func DefaultConfig() Config {
	return Config{
		TableName: defaultTableName,
		YearIndex: defaultYearIndex,
		ShowIndex: defaultShowIndex,
	}
}

// validate fills in defaults for unset values.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = defaultTableName
	}
	if c.YearIndex == "" {
		c.YearIndex = defaultYearIndex
	}
	if c.ShowIndex == "" {
		c.ShowIndex = defaultShowIndex
	}
}
